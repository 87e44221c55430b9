package world

import (
	"github.com/vovakirdan/aether-knight/internal/config"
)

// SpawnHazards is the hazard timer callback: it creates one batch of
// lightning in the configured mode.
func (w *World) SpawnHazards() {
	h := w.cfg.Hazard
	if h.Mode == config.HazardClassic {
		for i := 0; i < h.ClassicCount; i++ {
			w.Hazards = append(w.Hazards, &Hazard{
				X:       w.rng.Float64() * (w.cfg.Arena.Width - h.Width),
				Width:   h.Width,
				Classic: true,
				Life:    h.ClassicLife,
			})
		}
	} else {
		for _, lane := range w.pickLanes() {
			w.Hazards = append(w.Hazards, &Hazard{
				X:     float64(lane) * h.Width,
				Width: h.Width,
				Phase: HazardWarn,
				Timer: h.WarnDuration,
			})
		}
	}
	w.emit(EventHazardBatch, "")
}

// SafeLanes returns the lanes that overlap the band around the knight's
// current center. They are never struck.
func (w *World) SafeLanes() []int {
	h := w.cfg.Hazard
	cx := w.Player.Body.CenterX()
	lo, hi := cx-h.SafeMargin, cx+h.SafeMargin

	var safe []int
	for i := 0; i < w.laneCount(); i++ {
		left := float64(i) * h.Width
		if left < hi && left+h.Width > lo {
			safe = append(safe, i)
		}
	}
	return safe
}

func (w *World) laneCount() int {
	return int(w.cfg.Arena.Width / w.cfg.Hazard.Width)
}

// pickLanes draws up to LaneCount distinct lanes outside the safe band.
func (w *World) pickLanes() []int {
	safe := make(map[int]bool)
	for _, i := range w.SafeLanes() {
		safe[i] = true
	}

	var candidates []int
	for i := 0; i < w.laneCount(); i++ {
		if !safe[i] {
			candidates = append(candidates, i)
		}
	}

	w.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	n := w.cfg.Hazard.LaneCount
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}

// stepHazards advances every hazard and applies damage inside the active
// window only. Invulnerability suppresses all hazard damage.
func (w *World) stepHazards(dt float64) {
	h := w.cfg.Hazard
	p := &w.Player
	arenaH := w.cfg.Arena.Height

	kept := w.Hazards[:0]
	for _, hz := range w.Hazards {
		hits := hz.Span(arenaH).OverlapsX(p.Body) && !p.Invulnerable()

		if hz.Classic {
			hz.Life--
			if hits && hz.Striking(h.ActiveBelow) {
				p.HP -= w.diff.DamageTaken(h.TickDamage)
			}
		} else {
			switch hz.Phase {
			case HazardWarn:
				hz.Timer -= dt
				if hz.Timer <= 0 {
					hz.Phase = HazardStrike
					hz.Timer = h.StrikeDuration
				}
			case HazardStrike:
				if hits {
					p.HP -= w.diff.DamageTaken(h.StrikeDPS * min(dt, hz.Timer))
				}
				hz.Timer -= dt
				if hz.Timer <= 0 {
					hz.Phase = HazardDone
				}
			}
		}

		if !hz.Expired() {
			kept = append(kept, hz)
		}
	}
	for i := len(kept); i < len(w.Hazards); i++ {
		w.Hazards[i] = nil
	}
	w.Hazards = kept
}

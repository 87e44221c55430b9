package aether

import (
	"github.com/vovakirdan/aether-knight/internal/core"
	"github.com/vovakirdan/aether-knight/internal/games/aether/saves"
	"github.com/vovakirdan/aether-knight/internal/games/aether/world"
)

// HUD holds the scalar values shown in the status bar.
type HUD struct {
	HP            float64
	MaxHP         float64
	HPRatio       float64
	Exp           int
	ExpRatio      float64
	Attack        float64
	Score         int
	Level         int
	Wave          int
	Stack         int
	OverdriveLeft float64
	CoreColor     string
	Invulnerable  bool
}

// EnemyView is an enemy as the presentation sees it.
type EnemyView struct {
	Body    core.Box
	HPRatio float64
	Boss    bool
}

// ItemView is a dropped item.
type ItemView struct {
	Body core.Box
	Kind world.ItemKind
}

// HazardView is a lightning bolt or lane.
type HazardView struct {
	X        float64
	Width    float64
	Warning  bool
	Striking bool
}

// Snapshot is a read-only copy of everything a renderer needs.
// Mutating it has no effect on the session.
type Snapshot struct {
	Phase Phase

	ArenaW float64
	ArenaH float64
	FloorY float64

	Player      core.Box
	Facing      int
	Enemies     []EnemyView
	Items       []ItemView
	Hazards     []HazardView
	Afterimages []world.Afterimage

	HUD HUD

	Offers      []Reward
	Cursor      int
	Notice      string
	Slots       []saves.Summary
	Selected    int
	Active      int
	CanContinue bool
	CanBackOut  bool
}

// Snapshot copies the current session state.
func (m *Machine) Snapshot() Snapshot {
	w := m.world
	cfg := w.Config()
	p := w.Player

	s := Snapshot{
		Phase:  m.phase,
		ArenaW: cfg.Arena.Width,
		ArenaH: cfg.Arena.Height,
		FloorY: w.FloorY(),
		Player: p.Body,
		Facing: p.Facing,
		HUD: HUD{
			HP:            p.HP,
			MaxHP:         p.MaxHP,
			HPRatio:       ratio(p.HP, p.MaxHP),
			Exp:           w.Exp,
			ExpRatio:      ratio(float64(w.Exp), float64(cfg.Combat.LevelUpExp)),
			Attack:        p.BaseAttack,
			Score:         w.Score,
			Level:         w.Level,
			Wave:          w.Wave,
			Stack:         w.Overdrive.Stack,
			OverdriveLeft: w.Overdrive.Remaining,
			CoreColor:     w.Overdrive.Color,
			Invulnerable:  p.Invulnerable(),
		},
		Offers:      m.Offers(),
		Cursor:      m.cursor,
		Notice:      m.notice,
		Slots:       append([]saves.Summary(nil), m.summaries...),
		Selected:    m.selected,
		Active:      m.active,
		CanContinue: m.canContinue,
		CanBackOut:  m.phase == PhaseTitle && m.resume != PhaseTitle,
	}

	for _, e := range w.Enemies {
		s.Enemies = append(s.Enemies, EnemyView{Body: e.Body, HPRatio: ratio(e.HP, e.MaxHP), Boss: e.Boss})
	}
	for _, it := range w.Items {
		s.Items = append(s.Items, ItemView{Body: it.Body, Kind: it.Kind})
	}
	for _, h := range w.Hazards {
		striking := h.Striking(cfg.Hazard.ActiveBelow)
		s.Hazards = append(s.Hazards, HazardView{
			X:        h.X,
			Width:    h.Width,
			Warning:  !striking,
			Striking: striking,
		})
	}
	s.Afterimages = append(s.Afterimages, w.Afterimages...)

	return s
}

func ratio(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return core.Clamp01(v / max)
}

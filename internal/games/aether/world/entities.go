package world

import (
	"github.com/vovakirdan/aether-knight/internal/core"
)

// Intents are the held player inputs for one tick.
type Intents struct {
	Left  bool
	Right bool
	Jump  bool
}

// Player is the knight.
type Player struct {
	Body       core.Box
	VX, VY     float64
	Facing     int // -1 left, 1 right
	Grounded   bool
	HP         float64
	MaxHP      float64
	BaseAttack float64
	Invuln     float64 // seconds of damage immunity left
}

// Invulnerable reports whether incoming damage is currently suppressed.
func (p *Player) Invulnerable() bool {
	return p.Invuln > 0
}

// Heal restores hp without exceeding maxHp.
func (p *Player) Heal(amount float64) {
	p.HP = core.ClampF(p.HP+amount, 0, p.MaxHP)
}

// GrantInvulnerability extends the immunity window to at least d seconds.
func (p *Player) GrantInvulnerability(d float64) {
	if d > p.Invuln {
		p.Invuln = d
	}
}

func (p *Player) clampHP() {
	if p.MaxHP < 1 {
		p.MaxHP = 1
	}
	p.HP = core.ClampF(p.HP, 0, p.MaxHP)
	if p.BaseAttack < 0 {
		p.BaseAttack = 0
	}
}

// Enemy is a mob or a boss.
type Enemy struct {
	Body  core.Box
	HP    float64
	MaxHP float64
	Speed float64
	Boss  bool
	Dead  bool
}

// Hit lowers hp and marks the enemy dead once it runs out.
// Side effects of the death happen later, in the sweep.
func (e *Enemy) Hit(damage float64) {
	if e.Dead {
		return
	}
	e.HP -= damage
	if e.HP <= 0 {
		e.Dead = true
	}
}

// ItemKind enumerates the drops.
type ItemKind int

const (
	ItemCore ItemKind = iota
	ItemThunder
	ItemHeal
)

// String returns the in-game name of the drop.
func (k ItemKind) String() string {
	switch k {
	case ItemCore:
		return "CORE"
	case ItemThunder:
		return "THUNDER"
	case ItemHeal:
		return "HEAL"
	default:
		return "UNKNOWN"
	}
}

// Item lies on the floor until picked up.
type Item struct {
	Body core.Box
	Kind ItemKind
}

// HazardPhase is the lifecycle stage of an enhanced lightning lane.
type HazardPhase int

const (
	HazardWarn HazardPhase = iota
	HazardStrike
	HazardDone
)

// Hazard is one lightning bolt or lane.
//
// Classic bolts count Life down once per tick and hurt while
// 0 < Life < active window. Enhanced lanes run warn -> strike on a timer.
type Hazard struct {
	X       float64
	Width   float64
	Classic bool
	Life    int
	Phase   HazardPhase
	Timer   float64
}

// Span returns the hazard's horizontal extent as a full-height box.
func (h *Hazard) Span(arenaH float64) core.Box {
	return core.Box{X: h.X, Y: 0, W: h.Width, H: arenaH}
}

// Striking reports whether the hazard may deal damage right now.
func (h *Hazard) Striking(activeBelow int) bool {
	if h.Classic {
		return h.Life > 0 && h.Life < activeBelow
	}
	return h.Phase == HazardStrike && h.Timer > 0
}

// Expired reports whether the hazard can be removed.
func (h *Hazard) Expired() bool {
	if h.Classic {
		return h.Life <= 0
	}
	return h.Phase == HazardDone
}

// Overdrive is the core stack buff.
type Overdrive struct {
	Stack     int
	Remaining float64
	Color     string
}

// Grant adds one stack and refreshes the duration.
func (o *Overdrive) Grant(duration float64, color string) {
	o.Stack++
	o.Remaining = duration
	o.Color = color
}

// Tick runs the duration down. The stack drops to zero exactly when the
// duration does; nothing decays while the stack is empty.
func (o *Overdrive) Tick(dt float64, idleColor string) {
	if o.Stack <= 0 {
		o.Stack = 0
		o.Remaining = 0
		return
	}
	o.Remaining -= dt
	if o.Remaining <= 0 {
		o.Remaining = 0
		o.Stack = 0
		o.Color = idleColor
	}
}

// Afterimage is a short-lived orbiting particle around the knight.
type Afterimage struct {
	X, Y  float64
	Life  int
	Color string
}

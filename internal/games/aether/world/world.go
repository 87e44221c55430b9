// Package world is the Aether Knight simulation: knight physics, enemy and
// boss spawning, melee resolution, drops, leveling, the overdrive buff and
// lightning hazards. It is deterministic for a given seed and sequence of
// Step calls and knows nothing about screens, saves or phases.
package world

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/aether-knight/internal/config"
	"github.com/vovakirdan/aether-knight/internal/core"
)

// Timer names in the scheduler.
const (
	TimerMobs    = "mobs"
	TimerHazards = "hazards"
)

// EventKind classifies what happened during a tick.
type EventKind int

const (
	EventBossSpawned EventKind = iota
	EventBossCleared
	EventEnemyKilled
	EventLevelUp
	EventItemPicked
	EventHazardBatch
	EventPlayerDied
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventBossSpawned:
		return "boss_spawned"
	case EventBossCleared:
		return "boss_cleared"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventLevelUp:
		return "level_up"
	case EventItemPicked:
		return "item_picked"
	case EventHazardBatch:
		return "hazard_batch"
	case EventPlayerDied:
		return "player_died"
	default:
		return "unknown"
	}
}

// Event is a notable change during a tick. Notice, when set, is the text
// the HUD shows for it.
type Event struct {
	Kind   EventKind
	Notice string
}

// Progress is the persistent part of a run: everything a save slot holds.
type Progress struct {
	Score        int
	Level        int
	Exp          int
	Wave         int
	HP           float64
	MaxHP        float64
	BaseAttack   float64
	CoreStack    int
	CoreDuration float64
	CoreColor    string
}

// World owns all mutable simulation state.
type World struct {
	cfg  config.AetherConfig
	diff *config.DifficultyManager
	rng  *rand.Rand

	Player      Player
	Enemies     []*Enemy
	Items       []*Item
	Hazards     []*Hazard
	Afterimages []Afterimage
	Overdrive   Overdrive

	Score int
	Level int
	Exp   int
	Wave  int

	// Elapsed is simulated play time of the current run in seconds.
	Elapsed float64
	// Ticks counts Step calls in the current run.
	Ticks int

	sched     *Scheduler
	spawnLeft bool
	orbit     float64
	events    []Event
}

// New creates a world with a fresh run.
func New(cfg config.AetherConfig, seed int64) *World {
	w := &World{
		cfg:  cfg,
		diff: config.NewDifficultyManager(cfg.Difficulty),
		rng:  rand.New(rand.NewSource(seed)),
	}

	w.sched = &Scheduler{}
	w.sched.Every(TimerMobs, w.mobInterval, func() { w.SpawnEnemy() })
	w.sched.Every(TimerHazards, w.hazardInterval, func() { w.SpawnHazards() })

	w.Reset()
	return w
}

// Config returns the tuning the world runs with.
func (w *World) Config() config.AetherConfig {
	return w.cfg
}

// Rand exposes the world's deterministic RNG for callers that must share it.
func (w *World) Rand() *rand.Rand {
	return w.rng
}

// Scheduler returns the spawner timers.
func (w *World) Scheduler() *Scheduler {
	return w.sched
}

// FloorY returns the y coordinate of the floor surface.
func (w *World) FloorY() float64 {
	return w.cfg.Arena.Height - w.cfg.Arena.FloorOffset
}

// Reset starts a new run from level 1, wave 1 with base stats.
func (w *World) Reset() {
	pc := w.cfg.Player
	w.Restore(Progress{
		Level:      1,
		Wave:       1,
		HP:         pc.StartHP,
		MaxHP:      pc.StartHP,
		BaseAttack: pc.StartAttack,
		CoreColor:  w.cfg.Overdrive.IdleColor,
	})
}

// Restore replaces the run with the given progress. Transient collections
// are emptied, the knight returns to the start position and timers rewind.
func (w *World) Restore(p Progress) {
	pc := w.cfg.Player

	w.Score, w.Level, w.Exp, w.Wave = p.Score, p.Level, p.Exp, p.Wave

	w.Player = Player{
		Body: core.Box{
			X: (w.cfg.Arena.Width - pc.Width) / 2,
			Y: w.FloorY() - pc.Height,
			W: pc.Width,
			H: pc.Height,
		},
		Facing:     1,
		Grounded:   true,
		HP:         p.HP,
		MaxHP:      p.MaxHP,
		BaseAttack: p.BaseAttack,
	}
	w.Player.clampHP()

	w.Overdrive = Overdrive{Stack: p.CoreStack, Remaining: p.CoreDuration, Color: p.CoreColor}
	if w.Overdrive.Stack <= 0 || w.Overdrive.Remaining <= 0 {
		w.Overdrive = Overdrive{Color: w.cfg.Overdrive.IdleColor}
	}

	w.Enemies = nil
	w.Items = nil
	w.Hazards = nil
	w.Afterimages = nil
	w.events = nil
	w.spawnLeft = true
	w.orbit = 0
	w.Elapsed = 0
	w.Ticks = 0
	w.sched.Restart()
}

// Progress captures the persistent part of the run.
func (w *World) Progress() Progress {
	return Progress{
		Score:        w.Score,
		Level:        w.Level,
		Exp:          w.Exp,
		Wave:         w.Wave,
		HP:           w.Player.HP,
		MaxHP:        w.Player.MaxHP,
		BaseAttack:   w.Player.BaseAttack,
		CoreStack:    w.Overdrive.Stack,
		CoreDuration: w.Overdrive.Remaining,
		CoreColor:    w.Overdrive.Color,
	}
}

// Step advances the run by dt seconds. Physics and melee are per tick;
// timers, buffs and strike damage scale with dt.
//
// Order: spawners, buff decay, physics, combat, pickups, death sweep,
// leveling, hazards, hp clamp.
func (w *World) Step(dt float64, in Intents) []Event {
	w.events = nil
	w.Elapsed += dt
	w.Ticks++

	w.sched.Advance(dt)

	w.Overdrive.Tick(dt, w.cfg.Overdrive.IdleColor)
	w.Player.Invuln = math.Max(0, w.Player.Invuln-dt)

	w.stepPlayer(in)
	w.stepAfterimages()

	w.resolveCombat()
	w.pickupItems()
	w.sweepDead()
	w.levelUp()

	w.stepHazards(dt)

	w.Player.clampHP()
	if w.Player.HP <= 0 {
		w.emit(EventPlayerDied, "")
	}

	return w.events
}

// NextWave advances the wave counter after a boss clear.
func (w *World) NextWave() {
	w.Wave++
}

// BossAlive reports whether a living boss is on the field.
func (w *World) BossAlive() bool {
	for _, e := range w.Enemies {
		if e.Boss && !e.Dead {
			return true
		}
	}
	return false
}

// DamageAll hits every living enemy. Kills are rewarded by the next sweep.
func (w *World) DamageAll(amount float64) {
	for _, e := range w.Enemies {
		e.Hit(amount)
	}
}

// GrantOverdrive adds a core stack for the given duration.
func (w *World) GrantOverdrive(duration float64) {
	w.Overdrive.Grant(duration, w.cfg.Overdrive.ActiveColor)
}

func (w *World) emit(kind EventKind, notice string) {
	w.events = append(w.events, Event{Kind: kind, Notice: notice})
}

func (w *World) mobInterval() float64 {
	s := w.cfg.Spawn
	return w.diff.Interval(s.MobInterval, s.MobIntervalPerWave, s.MobIntervalMin, w.Wave)
}

func (w *World) hazardInterval() float64 {
	h := w.cfg.Hazard
	return w.diff.Interval(h.Interval, h.IntervalPerWave, h.IntervalMin, w.Wave)
}

// stepPlayer applies frame-based movement, gravity and arena bounds.
func (w *World) stepPlayer(in Intents) {
	pc := w.cfg.Player
	p := &w.Player

	switch {
	case in.Left && !in.Right:
		p.VX = -pc.MoveSpeed
		p.Facing = -1
	case in.Right && !in.Left:
		p.VX = pc.MoveSpeed
		p.Facing = 1
	default:
		p.VX *= pc.Friction
	}

	if in.Jump && p.Grounded {
		p.VY = pc.JumpImpulse
		p.Grounded = false
	}

	p.VY += pc.Gravity
	p.Body.X += p.VX
	p.Body.Y += p.VY

	if floor := w.FloorY(); p.Body.Y+p.Body.H >= floor {
		p.Body.Y = floor - p.Body.H
		p.VY = 0
		p.Grounded = true
	}

	p.Body.X = core.ClampF(p.Body.X, 0, w.cfg.Arena.Width-p.Body.W)
}

// stepAfterimages ages the orbit particles and emits 1+stack new ones.
func (w *World) stepAfterimages() {
	kept := w.Afterimages[:0]
	for _, a := range w.Afterimages {
		a.Life--
		if a.Life > 0 {
			kept = append(kept, a)
		}
	}
	w.Afterimages = kept

	oc := w.cfg.Overdrive
	n := 1 + w.Overdrive.Stack
	cx, cy := w.Player.Body.CenterX(), w.Player.Body.CenterY()
	w.orbit += 0.15
	for i := 0; i < n; i++ {
		a := w.orbit + 2*math.Pi*float64(i)/float64(n)
		w.Afterimages = append(w.Afterimages, Afterimage{
			X:     cx + math.Cos(a)*oc.AfterimageRadius,
			Y:     cy + math.Sin(a)*oc.AfterimageRadius,
			Life:  oc.AfterimageLife,
			Color: w.Overdrive.Color,
		})
	}
}

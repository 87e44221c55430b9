package aether

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aether-knight/internal/config"
	"github.com/vovakirdan/aether-knight/internal/core"
	"github.com/vovakirdan/aether-knight/internal/registry"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

// Variant selects the rule set of a registered game.
type Variant int

const (
	VariantEnhanced Variant = iota // lane lightning, checkpoint-only saves
	VariantClassic                 // random bolts, interval autosave
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// startSlot is the slot highlighted when the title screen opens.
var startSlot int

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
// Unknown names fall back to normal.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetStartSlot preselects a save slot on the title screen. 0 keeps the
// stored active slot.
func SetStartSlot(slot int) {
	startSlot = slot
}

// Game adapts a Machine to registry.Game.
type Game struct {
	variant Variant
	machine *Machine
	kv      storage.KV
	logger  *log.Logger
	rt      core.RuntimeConfig
}

// New creates an unstarted game of the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

func init() {
	registry.Register("aether", "lane lightning, checkpoint saves", func() registry.Game {
		return New(VariantEnhanced)
	})
	registry.Register("aether_classic", "random bolts, autosave every 30s", func() registry.Game {
		return New(VariantClassic)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == VariantClassic {
		return "aether_classic"
	}
	return "aether"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "Aether Knight (Classic)"
	}
	return "Aether Knight"
}

// AttachStore implements registry.Persistent.
func (g *Game) AttachStore(kv storage.KV) {
	g.kv = kv
}

// AttachLogger implements registry.Logged.
func (g *Game) AttachLogger(logger *log.Logger) {
	g.logger = logger
}

// Machine returns the session state machine; nil before Reset.
func (g *Game) Machine() *Machine {
	return g.machine
}

// Reset loads the tuning and opens the title screen.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.kv == nil {
		g.kv = storage.NewMemoryKV()
		g.logger.Warn("no save store attached, saves will not persist")
	}

	cfg, err := config.LoadAether(configPath)
	if err != nil {
		g.logger.Warn("using default tuning", "error", err)
	}
	if difficultyPreset != "" {
		config.ApplyAetherPreset(&cfg, difficultyPreset)
	}
	if g.variant == VariantClassic {
		cfg = config.ClassicVariant(cfg)
	}

	g.machine = NewMachine(cfg, g.kv, rt.Seed, g.logger.WithPrefix(g.ID()))
	if startSlot > 0 {
		g.machine.SelectSlot(startSlot)
	}
}

// Step advances the session by one frame. The frame's measured delta is
// used when present, otherwise one tick at the runtime tick rate.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	dt := in.DT
	if dt <= 0 {
		dt = g.rt.FrameInterval().Seconds()
	}

	events := g.machine.Update(in, core.ClampDelta(dt))

	res := core.StepResult{State: g.State()}
	for _, ev := range events {
		res.Events = append(res.Events, ev.Kind.String())
	}
	return res
}

// State returns the platform-facing state.
func (g *Game) State() core.GameState {
	if g.machine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.machine.world.Score,
		Level:    g.machine.world.Level,
		Wave:     g.machine.world.Wave,
		GameOver: g.machine.phase == PhaseGameOver,
		Paused:   g.machine.phase == PhasePause,
		Phase:    g.machine.phase.String(),
	}
}

package core

import "time"

// Minimum playable terminal size. The arena needs two HUD rows, a floor
// row and enough columns for the reward overlay.
const (
	MinScreenW = 40
	MinScreenH = 12
)

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 picks one from the clock
}

// DefaultConfig returns an 80x24 terminal ticking at 60 Hz.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Normalize fills zero or out-of-range fields. A zero seed is replaced
// with one derived from now.
func (c RuntimeConfig) Normalize(now time.Time) RuntimeConfig {
	def := DefaultConfig()
	if c.TickRate <= 0 {
		c.TickRate = def.TickRate
	}
	if c.ScreenW <= 0 {
		c.ScreenW = def.ScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = def.ScreenH
	}
	c.ScreenW = Max(c.ScreenW, MinScreenW)
	c.ScreenH = Max(c.ScreenH, MinScreenH)
	if c.Seed == 0 {
		c.Seed = now.UnixNano()
	}
	return c
}

// FrameInterval is the wall-clock time of one tick.
func (c RuntimeConfig) FrameInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultConfig().TickRate
	}
	return time.Second / time.Duration(rate)
}

// GameState is the run status a game reports to the platform.
type GameState struct {
	Score    int    // Current score
	Level    int    // Knight level
	Wave     int    // Current wave
	GameOver bool   // Death is pending
	Paused   bool   // Simulation is frozen
	Phase    string // Machine phase name
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Events names what happened during the tick
	// (e.g. "boss_cleared", "game_over"). Platforms may log them.
	Events []string
}

// Package registry maps variant IDs to game factories. Variants register
// themselves from init, so front ends only need a blank import.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aether-knight/internal/core"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

// Game is the interface every game variant implements.
// Games contain pure logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier (e.g., "aether").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the game and returns it to its first screen.
	// The RuntimeConfig provides screen dimensions, tick rate and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick.
	// in.DT carries the measured frame time; zero means 1/TickRate.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Persistent is implemented by games that keep save data.
// The platform attaches a store before calling Reset.
type Persistent interface {
	AttachStore(kv storage.KV)
}

// Logged is implemented by games that report diagnostics.
type Logged interface {
	AttachLogger(logger *log.Logger)
}

// Attach wires the optional store and logger into a game that accepts them.
func Attach(g Game, kv storage.KV, logger *log.Logger) {
	if p, ok := g.(Persistent); ok && kv != nil {
		p.AttachStore(kv)
	}
	if l, ok := g.(Logged); ok && logger != nil {
		l.AttachLogger(logger)
	}
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID      string
	Title   string
	Summary string // one-line rule set description
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a variant under id. It is meant to be called from init and
// panics on a duplicate id.
func Register(id, summary string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title(), Summary: summary},
		factory: f,
	}
}

// List returns every registered variant, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create instantiates the variant registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

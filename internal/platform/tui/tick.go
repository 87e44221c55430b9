// Package tui provides the Bubble Tea integration for Aether Knight.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg struct {
	At  time.Time // wall-clock time the tick fired at
	Gen uint64    // loop the tick belongs to
}

// loopGen hands out tick loop generations. A model only accepts ticks of
// its own loop, so a tick still in flight from a finished game cannot
// start a second loop in the next one.
var loopGen atomic.Uint64

func nextLoop() uint64 {
	return loopGen.Add(1)
}

// tickCmd schedules the next tick of loop gen after interval.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}

// frameDelta returns the seconds between two ticks. The first tick has no
// predecessor and reports zero so the game falls back to its tick rate.
func frameDelta(prev, now time.Time) float64 {
	if prev.IsZero() || !now.After(prev) {
		return 0
	}
	return now.Sub(prev).Seconds()
}

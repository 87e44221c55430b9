package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, Left arrow - move left (held)
	ActionRight           // D, Right arrow - move right (held)
	ActionJump            // Space, W, Up - jump (held)
	ActionUp              // W, Up arrow, K - menu cursor up
	ActionDown            // S, Down arrow, J - menu cursor down
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B, Escape - go back
	ActionPause           // P - pause/unpause game
	ActionNewGame         // N - start a new game on the selected slot
	ActionLoad            // L - load the selected slot
	ActionContinue        // C - continue from game over
	ActionRestart         // R - restart after game over
	ActionTitle           // T - return to title from pause
	ActionChoice1         // 1 - first offer
	ActionChoice2         // 2 - second offer
	ActionChoice3         // 3 - third offer
	ActionQuit            // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionNewGame:
		return "NewGame"
	case ActionLoad:
		return "Load"
	case ActionContinue:
		return "Continue"
	case ActionRestart:
		return "Restart"
	case ActionTitle:
		return "Title"
	case ActionChoice1:
		return "Choice1"
	case ActionChoice2:
		return "Choice2"
	case ActionChoice3:
		return "Choice3"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsHeld reports whether the action is level-triggered: it stays active
// for as long as the player holds the key. All other actions are
// edge-triggered and delivered for a single tick.
func (a Action) IsHeld() bool {
	switch a {
	case ActionLeft, ActionRight, ActionJump:
		return true
	default:
		return false
	}
}

// Delta time bounds applied to every tick.
const (
	MinDelta = 0.001
	MaxDelta = 0.05
)

// ClampDelta restricts a tick duration in seconds to [MinDelta, MaxDelta]
// so a stalled terminal does not blow up the physics.
func ClampDelta(dt float64) float64 {
	return ClampF(dt, MinDelta, MaxDelta)
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were active during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// DT is the measured tick duration in seconds. Zero means the game
	// should derive it from the runtime tick rate.
	DT float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.DT = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.DT = f.DT
	return clone
}

package aether

// Phase is the top-level state of a session.
type Phase int

const (
	PhaseTitle Phase = iota
	PhasePlay
	PhasePause
	PhaseReward
	PhaseGameOver
)

// String returns the phase name used in logs and core.GameState.
func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlay:
		return "play"
	case PhasePause:
		return "pause"
	case PhaseReward:
		return "reward"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

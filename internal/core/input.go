package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone Action = iota
	ActionJump        // Space, Up, W, X, mouse click - flap (and restart after game over)
	ActionBack        // B, Escape - leave the game screen
	ActionQuit        // Q, Ctrl+C - exit program/session
	ActionShot        // Ctrl+S - save a screenshot of the current frame
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionShot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}

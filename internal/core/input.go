package core

// Action represents a semantic player action, abstracted from key presses
// and mouse events.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // Move cursor up
	ActionDown            // Move cursor down
	ActionLeft            // Move cursor left
	ActionRight           // Move cursor right
	ActionActivate        // Activate the cell under the cursor
	ActionNewGame         // Restart with a fresh board
	ActionHelp            // Toggle the full help view
	ActionQuit            // Exit the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionActivate:
		return "Activate"
	case ActionNewGame:
		return "NewGame"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

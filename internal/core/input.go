package core

// Action represents a semantic canvas action, abstracted from physical key
// presses. The front end maps keys to actions and actions to controller
// calls.
type Action int

const (
	ActionNone          Action = iota
	ActionUp                   // Up arrow, K - move cursor up
	ActionDown                 // Down arrow, J - move cursor down
	ActionLeft                 // Left arrow, H - move cursor left
	ActionRight                // Right arrow, L - move cursor right
	ActionPlace                // Enter, Space - apply the selected tool at the cursor
	ActionRemoveTool           // X - select the remove tool
	ActionHeightUp             // Q - raise the height cursor
	ActionHeightDown           // A - lower the height cursor
	ActionClearHeight          // C - clear every tile at the current height
	ActionToggleSession        // S - start or pause the focus session
	ActionNewNote              // N - open the note input
	ActionNotes                // Tab - focus the notes list
	ActionTiles                // T - open the tile selector
	ActionHistory              // V - show session history
	ActionHelp                 // ? - toggle full help
	ActionBack                 // Esc - close the current panel
	ActionQuit                 // Ctrl+C - exit
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
	case ActionPlace:
		return "Place"
	case ActionRemoveTool:
		return "RemoveTool"
	case ActionHeightUp:
		return "HeightUp"
	case ActionHeightDown:
		return "HeightDown"
	case ActionClearHeight:
		return "ClearHeight"
	case ActionToggleSession:
		return "ToggleSession"
	case ActionNewNote:
		return "NewNote"
	case ActionNotes:
		return "Notes"
	case ActionTiles:
		return "Tiles"
	case ActionHistory:
		return "History"
	case ActionHelp:
		return "Help"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Slot returns the 0-based hotbar slot selected by a digit key, or -1.
func Slot(key string) int {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '1')
	}
	return -1
}

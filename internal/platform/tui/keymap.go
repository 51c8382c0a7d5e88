package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/focustile/internal/core"
)

// KeyMap defines the board key bindings.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	Place         key.Binding
	Slot          key.Binding
	RemoveTool    key.Binding
	HeightUp      key.Binding
	HeightDown    key.Binding
	ClearHeight   key.Binding
	ToggleSession key.Binding
	NewNote       key.Binding
	Notes         key.Binding
	Tiles         key.Binding
	History       key.Binding
	Help          key.Binding
	Back          key.Binding
	Quit          key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.Slot, k.HeightUp, k.HeightDown, k.ToggleSession, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Place},
		{k.Slot, k.RemoveTool, k.Tiles},
		{k.HeightUp, k.HeightDown, k.ClearHeight},
		{k.ToggleSession, k.NewNote, k.Notes, k.History},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default board bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Place: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "place/remove"),
		),
		Slot: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
			key.WithHelp("1-8", "hotbar"),
		),
		RemoveTool: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove tool"),
		),
		HeightUp: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "height up"),
		),
		HeightDown: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "height down"),
		),
		ClearHeight: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear height"),
		),
		ToggleSession: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start/pause"),
		),
		NewNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		Notes: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "notes"),
		),
		Tiles: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tiles"),
		),
		History: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// MapKey translates a key message to a board action. Digit keys map to
// ActionNone here; use core.Slot for those.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Place):
		return core.ActionPlace
	case key.Matches(msg, k.RemoveTool):
		return core.ActionRemoveTool
	case key.Matches(msg, k.HeightUp):
		return core.ActionHeightUp
	case key.Matches(msg, k.HeightDown):
		return core.ActionHeightDown
	case key.Matches(msg, k.ClearHeight):
		return core.ActionClearHeight
	case key.Matches(msg, k.ToggleSession):
		return core.ActionToggleSession
	case key.Matches(msg, k.NewNote):
		return core.ActionNewNote
	case key.Matches(msg, k.Notes):
		return core.ActionNotes
	case key.Matches(msg, k.Tiles):
		return core.ActionTiles
	case key.Matches(msg, k.History):
		return core.ActionHistory
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}

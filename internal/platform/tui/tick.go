// Package tui provides the Bubble Tea front end for the FocusTile canvas.
// It maps keys to canvas actions, draws the board, and serves the same
// model to SSH users through Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickInterval is how often the countdown is refreshed. Remaining time is
// derived from the session anchor, so the interval only affects display.
const tickInterval = time.Second

// TickMsg refreshes the countdown of the session that scheduled it.
type TickMsg struct {
	Generation uint64
	Time       time.Time
}

// tickCmd schedules a countdown refresh for the given timer generation.
func tickCmd(generation uint64) tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Generation: generation, Time: t}
	})
}

// dismissMsg hides the notification with the matching sequence number.
type dismissMsg struct {
	seq int
}

// dismissCmd schedules hiding notification seq after d.
func dismissCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return dismissMsg{seq: seq}
	})
}

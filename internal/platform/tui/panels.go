package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/focustile/internal/focus"
	"github.com/vovakirdan/focustile/internal/tiles"
)

// Panel layout constants
const (
	panelWidth    = 36 // Side panel content width
	historyWidth  = 48 // History panel content width
	notesShown    = 6  // Notes listed in the side panel
	tilesShown    = 14 // Search results listed at once
	historyLimit  = 50 // Sessions loaded into the history table
	tableMinRows  = 5
	tableRowsSlop = 12 // Header, stats and help around the table
)

const (
	msgSelectTile = "Select a tile from the hotbar first!"
	msgNoNotes    = "No notes yet. Press n to write one."
)

var errNoHistory = errors.New("session history needs the sqlite store")

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(panelWidth).
			Padding(0, 1)
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	runningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// truncate shortens s to n runes, marking the cut with a period.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "."
}

// toolName returns the display name of a selection.
func toolName(id string) string {
	switch id {
	case "":
		return "none"
	case tiles.RemoveTool:
		return "Remove"
	default:
		return tiles.Title(id)
	}
}

// sidePanel renders counters, countdown, hotbar and notes.
func (m Model) sidePanel() string {
	s := m.board.Stats()
	remaining, running := m.board.Countdown()

	var b strings.Builder
	b.WriteString(headingStyle.Render("Tiles"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d\n",
		labelStyle.Render("Available"), s.Available,
		labelStyle.Render("Earned"), s.Earned,
		labelStyle.Render("Used"), s.Used)
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d\n\n",
		labelStyle.Render("Sessions"), s.Sessions,
		labelStyle.Render("Height"), s.Height,
		labelStyle.Render("Placed"), s.Placed)

	b.WriteString(headingStyle.Render("Focus"))
	b.WriteString("\n")
	clock := focus.FormatRemaining(remaining)
	if running {
		b.WriteString(runningStyle.Render(clock + "  ● working"))
	} else {
		b.WriteString(clock + "  " + labelStyle.Render("○ idle"))
	}
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("Hotbar"))
	b.WriteString("  " + labelStyle.Render("tool: "+toolName(s.Selected)))
	b.WriteString("\n")
	for i, id := range m.ctrl.Hotbar() {
		g := Glyph(id)
		line := fmt.Sprintf("%d %c %s", i+1, g.Rune, truncate(tiles.Title(id), panelWidth-6))
		if id == s.Selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if s.Selected == tiles.RemoveTool {
		b.WriteString(selectedStyle.Render("x   Remove"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Notes"))
	b.WriteString("\n")
	list := m.ctrl.Notes()
	if len(list) == 0 {
		b.WriteString(mutedStyle.Render("No notes yet."))
	}
	for i, n := range list {
		if i >= notesShown {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("... %d more", len(list)-notesShown)))
			break
		}
		line := "• " + truncate(n.Text, panelWidth-2)
		focused := (m.mode == modeNotes || m.mode == modeConfirmDelete) && i == m.noteCursor
		if focused {
			line = selectedStyle.Render(line) + "\n  " + labelStyle.Render(n.CreatedAt)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// tilesPanel renders the tile selector with its search box.
func (m Model) tilesPanel() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Tiles"))
	b.WriteString("  " + labelStyle.Render(fmt.Sprintf("hotbar %d/%d", len(m.ctrl.Hotbar()), tiles.MaxSlots)))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	results := m.tileResults()
	if len(results) == 0 {
		b.WriteString(mutedStyle.Render("No tiles match."))
		return panelStyle.Render(b.String())
	}

	// Scroll so the cursor stays visible
	start := max(0, m.tileCursor-tilesShown+1)
	end := min(len(results), start+tilesShown)

	hotbar := make(map[string]bool)
	for _, id := range m.ctrl.Hotbar() {
		hotbar[id] = true
	}

	lastCategory := ""
	for i := start; i < end; i++ {
		id := results[i]
		if cat, _ := tiles.CategoryOf(id); cat != lastCategory {
			b.WriteString(labelStyle.Render(cat))
			b.WriteString("\n")
			lastCategory = cat
		}
		mark := " "
		if hotbar[id] {
			mark = "✓"
		}
		g := Glyph(id)
		line := fmt.Sprintf("%s %c %s", mark, g.Rune, truncate(tiles.Title(id), panelWidth-6))
		if i == m.tileCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// createTable builds the session history table.
func (m Model) createTable() table.Model {
	columns := []table.Column{
		{Title: "Started", Width: 12},
		{Title: "Completed", Width: 12},
		{Title: "Tiles", Width: 5},
		{Title: "Away", Width: 4},
	}

	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		away := ""
		if s.Away {
			away = "yes"
		}
		rows[i] = table.Row{
			s.StartedAt.Local().Format("Jan 02 15:04"),
			s.CompletedAt.Local().Format("Jan 02 15:04"),
			fmt.Sprintf("+%d", s.Reward),
			away,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(tableMinRows, m.height-tableRowsSlop)),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)
	return t
}

// historyPanel renders the session history table and totals.
func (m Model) historyPanel() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Session history"))
	b.WriteString("\n")

	if m.historyErr != nil {
		b.WriteString(mutedStyle.Render(m.historyErr.Error()))
		return panelStyle.Width(historyWidth).Render(b.String())
	}
	if st := m.sessionStats; st != nil {
		fmt.Fprintf(&b, "%s %d   %s %d   %s %d\n",
			labelStyle.Render("Sessions"), st.Sessions,
			labelStyle.Render("Tiles"), st.TilesRewarded,
			labelStyle.Render("Away"), st.AwaySessions)
	}
	b.WriteString("\n")
	if len(m.sessions) == 0 {
		b.WriteString(mutedStyle.Render("No sessions completed yet.\nPress s on the board to start one."))
		return panelStyle.Width(historyWidth).Render(b.String())
	}
	b.WriteString(m.table.View())
	return panelStyle.Width(historyWidth).Render(b.String())
}

// footer shows the active prompt, or the current notification.
func (m Model) footer() string {
	switch m.mode {
	case modeNoteInput:
		return m.noteInput.View() + "  " + helpStyle.Render("enter save • esc cancel")
	case modeNotes:
		return helpStyle.Render("↑/↓ select • d delete • tab/esc back")
	case modeConfirmDelete:
		return noticeStyle.Render("Delete this note? (y/n)")
	case modeTiles:
		return helpStyle.Render("type to search • ↑/↓ select • enter toggle hotbar • esc back")
	case modeHistory:
		return helpStyle.Render("↑/↓ scroll • v/esc back")
	}
	if m.inbox.current != "" {
		return noticeStyle.Render(m.inbox.current)
	}
	return ""
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/focustile/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorGrass:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorBuilding:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorWater:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorWall:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorNature:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorStructure: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorFloor:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorStairs:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorPreview:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Blink(true),
	core.ColorCursor:    lipgloss.NewStyle().Reverse(true),
	core.ColorBorder:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// RenderScreen converts a Screen buffer to a styled string, one line per
// row. Adjacent cells of the same color share one styled run.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = renderRow(s, y)
	}
	return strings.Join(rows, "\n")
}

func renderRow(s *core.Screen, y int) string {
	var sb strings.Builder
	var run []rune
	color := s.GetCell(0, y).Color

	flush := func() {
		style, ok := colorStyles[color]
		if !ok {
			style = colorStyles[core.ColorDefault]
		}
		sb.WriteString(style.Render(string(run)))
		run = run[:0]
	}

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != color && len(run) > 0 {
			flush()
		}
		color = cell.Color
		run = append(run, cell.Rune)
	}
	if len(run) > 0 {
		flush()
	}
	return sb.String()
}

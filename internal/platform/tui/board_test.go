package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/focustile/internal/canvas"
	"github.com/vovakirdan/focustile/internal/core"
	"github.com/vovakirdan/focustile/internal/grid"
)

func TestBoardCellShowsCurrentHeight(t *testing.T) {
	b := NewBoard()
	pos := grid.P(3, 4)
	tree := grid.NewTile("tree", pos, 2)
	water := grid.NewTile("water_center", pos, 5)
	b.DrawTile(pos, 2, &tree)
	b.DrawTile(pos, 5, &water)

	b.UpdateCounters(canvas.Stats{Height: 2})
	glyph, mark := b.Cell(pos)
	if glyph.Rune != '♣' || glyph.Color != core.ColorNature || mark.Rune != '2' {
		t.Errorf("Cell() at height 2 = %+v %+v, expected bright tree", glyph, mark)
	}

	// No tile on the current height: top tile, dimmed
	b.UpdateCounters(canvas.Stats{Height: 0})
	glyph, mark = b.Cell(pos)
	if glyph.Rune != '~' || glyph.Color != core.ColorDim || mark.Rune != '5' {
		t.Errorf("Cell() at height 0 = %+v %+v, expected dimmed water top", glyph, mark)
	}

	b.DrawTile(pos, 5, nil)
	b.DrawTile(pos, 2, nil)
	if glyph, _ := b.Cell(pos); glyph != emptyCell {
		t.Errorf("Cell() after clearing = %+v, expected empty", glyph)
	}
}

func TestBoardPreviewOverridesCell(t *testing.T) {
	b := NewBoard()
	pos := grid.P(0, 0)

	b.DrawPreview(pos, "walls_corner", 10)
	glyph, mark := b.Cell(pos)
	if glyph.Rune != '=' || glyph.Color != core.ColorPreview || mark.Rune != 'A' {
		t.Errorf("Cell() = %+v %+v, expected wall preview at height A", glyph, mark)
	}
	if b.Previewing(grid.P(0, 1)) {
		t.Error("preview should only cover its own position")
	}

	b.ClearPreview()
	if b.Previewing(pos) {
		t.Error("ClearPreview should remove the preview")
	}
}

func TestBoardDraw(t *testing.T) {
	b := NewBoard()
	tile := grid.NewTile("building_center", grid.P(0, 1), 0)
	b.DrawTile(tile.Pos, 0, &tile)

	s := core.NewScreen(BoardWidth, BoardHeight)
	b.Draw(s, 0, 0, grid.P(0, 0))

	if s.Get(0, 0) != '┌' || s.Get(BoardWidth-1, BoardHeight-1) != '┘' {
		t.Error("board should be framed")
	}
	// Grid row 0: cursor on column 0, building on column 1
	if c := s.GetCell(1, 1); c.Color != core.ColorCursor {
		t.Errorf("cursor cell = %+v, expected cursor color", c)
	}
	if c := s.GetCell(3, 1); c.Rune != '#' || c.Color != core.ColorBuilding {
		t.Errorf("building cell = %+v", c)
	}
	if c := s.GetCell(4, 1); c.Rune != '0' {
		t.Errorf("height mark = %q, expected '0'", c.Rune)
	}

	out := RenderScreen(s)
	if lines := strings.Count(out, "\n") + 1; lines != BoardHeight {
		t.Errorf("RenderScreen() produced %d lines, expected %d", lines, BoardHeight)
	}
}

func TestBoardDrawAtOffset(t *testing.T) {
	b := NewBoard()
	tile := grid.NewTile("water_center", grid.P(2, 3), 0)
	b.DrawTile(tile.Pos, 0, &tile)

	s := core.NewScreen(BoardWidth+4, BoardHeight+2)
	b.Draw(s, 4, 2, grid.P(0, 0))

	if s.Get(4, 2) != '┌' {
		t.Errorf("frame corner = %q, expected it at (4, 2)", s.Get(4, 2))
	}
	// Inside the frame: x = 4+1+3*cellWidth, y = 2+1+2
	if c := s.GetCell(11, 5); c.Rune != '~' || c.Color != core.ColorWater {
		t.Errorf("water cell = %+v", c)
	}
}

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionPlace},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, core.ActionHeightUp},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, core.ActionHeightDown},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}, core.ActionClearHeight},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}, core.ActionToggleSession},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.key.String(), func(t *testing.T) {
			if got := km.MapKey(tc.key); got != tc.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.key.String(), got, tc.want)
			}
		})
	}

	if core.Slot("3") != 2 || core.Slot("x") != -1 {
		t.Error("Slot() should map digits to 0-based slots")
	}
}

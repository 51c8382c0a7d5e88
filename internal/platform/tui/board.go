package tui

import (
	"time"

	"github.com/vovakirdan/focustile/internal/canvas"
	"github.com/vovakirdan/focustile/internal/core"
	"github.com/vovakirdan/focustile/internal/grid"
	"github.com/vovakirdan/focustile/internal/tiles"
)

// Board layout. Each grid column takes two screen cells: the tile glyph
// and a height mark.
const (
	cellWidth   = 2
	BoardWidth  = grid.Size*cellWidth + 2
	BoardHeight = grid.Size + 2
)

// categoryGlyphs gives each catalog category a glyph and color.
var categoryGlyphs = map[string]core.Cell{
	"Grass & Terrain":        {Rune: '"', Color: core.ColorGrass},
	"Buildings":              {Rune: '#', Color: core.ColorBuilding},
	"Water & Rivers":         {Rune: '~', Color: core.ColorWater},
	"Walls & Fortifications": {Rune: '=', Color: core.ColorWall},
	"Nature":                 {Rune: '♣', Color: core.ColorNature},
	"Structures & Buildings": {Rune: '^', Color: core.ColorStructure},
	"Floor & Terrain":        {Rune: '_', Color: core.ColorFloor},
	"Stairs & Elevation":     {Rune: '/', Color: core.ColorStairs},
}

var emptyCell = core.Cell{Rune: '·', Color: core.ColorDim}

// Glyph returns the board cell for a tile type.
func Glyph(tileType string) core.Cell {
	cat, ok := tiles.CategoryOf(tileType)
	if !ok {
		return core.Cell{Rune: '?', Color: core.ColorDefault}
	}
	return categoryGlyphs[cat]
}

// heightMark renders a height as a single character: 0-9, then A for 10.
func heightMark(h int) rune {
	if h < 10 {
		return rune('0' + h)
	}
	return rune('A' + h - 10)
}

type preview struct {
	pos      grid.Position
	tileType string
	height   int
}

// Board is the terminal render sink. It mirrors the controller's tiles
// and counters and draws them into a core.Screen on demand.
type Board struct {
	layers    *grid.LayerMap
	preview   *preview
	stats     canvas.Stats
	remaining time.Duration
	running   bool
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{layers: grid.NewLayerMap()}
}

// DrawTile implements canvas.RenderSink.
func (b *Board) DrawTile(pos grid.Position, height int, tile *grid.PlacedTile) {
	if tile == nil {
		//nolint:errcheck // Clearing an absent slot is a no-op for the mirror
		b.layers.Clear(pos, height)
		return
	}
	//nolint:errcheck // The controller only draws in-bounds tiles
	b.layers.Set(*tile)
}

// DrawPreview implements canvas.RenderSink.
func (b *Board) DrawPreview(pos grid.Position, tileType string, height int) {
	b.preview = &preview{pos: pos, tileType: tileType, height: height}
}

// ClearPreview implements canvas.RenderSink.
func (b *Board) ClearPreview() {
	b.preview = nil
}

// UpdateCounters implements canvas.RenderSink.
func (b *Board) UpdateCounters(s canvas.Stats) {
	b.stats = s
}

// UpdateCountdown implements canvas.RenderSink.
func (b *Board) UpdateCountdown(remaining time.Duration, running bool) {
	b.remaining = remaining
	b.running = running
}

// Stats returns the last counters pushed by the controller.
func (b *Board) Stats() canvas.Stats { return b.stats }

// Countdown returns the last countdown pushed by the controller.
func (b *Board) Countdown() (time.Duration, bool) { return b.remaining, b.running }

// Previewing reports whether a preview is shown at pos.
func (b *Board) Previewing(pos grid.Position) bool {
	return b.preview != nil && b.preview.pos == pos
}

// Cell returns the two screen cells for the column at pos. A tile on the
// current height is drawn in its category color; a column whose tiles are
// all on other heights shows its top tile dimmed.
func (b *Board) Cell(pos grid.Position) (glyph, mark core.Cell) {
	height := b.stats.Height

	if b.Previewing(pos) {
		g := Glyph(b.preview.tileType)
		g.Color = core.ColorPreview
		return g, core.Cell{Rune: heightMark(b.preview.height), Color: core.ColorPreview}
	}

	if t, ok := b.layers.Get(pos, height); ok {
		g := Glyph(t.Type)
		return g, core.Cell{Rune: heightMark(height), Color: g.Color}
	}

	top, ok := b.layers.TopHeight(pos)
	if !ok {
		return emptyCell, core.Cell{Rune: ' '}
	}
	t, _ := b.layers.Get(pos, top)
	g := Glyph(t.Type)
	g.Color = core.ColorDim
	return g, core.Cell{Rune: heightMark(top), Color: core.ColorDim}
}

// Draw renders the grid with a border into s at (x, y), highlighting the
// cursor column.
func (b *Board) Draw(s *core.Screen, x, y int, cursor grid.Position) {
	frame := core.NewRect(x, y, BoardWidth, BoardHeight)
	s.DrawBox(frame, core.ColorBorder)
	inner := frame.Inset(1)
	for row := range grid.Size {
		for col := range grid.Size {
			pos := grid.P(row, col)
			glyph, mark := b.Cell(pos)
			if pos == cursor {
				glyph.Color = core.ColorCursor
				mark.Color = core.ColorCursor
			}
			sx := inner.X + col*cellWidth
			sy := inner.Y + row
			s.SetCell(sx, sy, glyph)
			s.SetCell(sx+1, sy, mark)
		}
	}
}

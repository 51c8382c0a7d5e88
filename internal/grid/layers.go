package grid

import (
	"errors"
	"iter"
	"maps"
	"slices"
)

var (
	// ErrNotFound is returned when no tile occupies the requested slot.
	ErrNotFound = errors.New("grid: tile not found")

	// ErrOutOfBounds is returned for positions or heights off the grid.
	ErrOutOfBounds = errors.New("grid: out of bounds")
)

// Orientation is the facing of a placed tile.
type Orientation string

// OrientationEast is the only orientation tiles are placed with.
const OrientationEast Orientation = "E"

// PlacedTile is a tile occupying one (Position, height) slot.
type PlacedTile struct {
	Type     string
	Rotation Orientation
	Pos      Position
	Height   int
}

// NewTile creates a canonically oriented tile for the given slot.
func NewTile(tileType string, pos Position, height int) PlacedTile {
	return PlacedTile{
		Type:     tileType,
		Rotation: OrientationEast,
		Pos:      pos,
		Height:   height,
	}
}

// LayerMap stores tiles per column, indexed by height.
// Columns with no tiles are never kept.
type LayerMap struct {
	columns map[Position]map[int]PlacedTile
}

// NewLayerMap creates an empty layer map.
func NewLayerMap() *LayerMap {
	return &LayerMap{columns: make(map[Position]map[int]PlacedTile)}
}

// Get returns the tile at (pos, height), if any.
func (m *LayerMap) Get(pos Position, height int) (PlacedTile, bool) {
	col, ok := m.columns[pos]
	if !ok {
		return PlacedTile{}, false
	}
	t, ok := col[height]
	return t, ok
}

// Occupied reports whether (pos, height) holds a tile.
func (m *LayerMap) Occupied(pos Position, height int) bool {
	_, ok := m.Get(pos, height)
	return ok
}

// TopHeight returns the highest occupied height in the column at pos.
func (m *LayerMap) TopHeight(pos Position) (int, bool) {
	col, ok := m.columns[pos]
	if !ok || len(col) == 0 {
		return 0, false
	}
	top := MinHeight - 1
	for h := range col {
		if h > top {
			top = h
		}
	}
	return top, true
}

// Set inserts or overwrites the tile at its (Pos, Height).
// Returns true if an existing tile was replaced.
func (m *LayerMap) Set(t PlacedTile) (replaced bool, err error) {
	if !t.Pos.InBounds() || !ValidHeight(t.Height) {
		return false, ErrOutOfBounds
	}
	col, ok := m.columns[t.Pos]
	if !ok {
		col = make(map[int]PlacedTile)
		m.columns[t.Pos] = col
	}
	_, replaced = col[t.Height]
	col[t.Height] = t
	return replaced, nil
}

// Clear removes the tile at (pos, height) and drops the column if it
// becomes empty. Returns the removed tile.
func (m *LayerMap) Clear(pos Position, height int) (PlacedTile, error) {
	col, ok := m.columns[pos]
	if !ok {
		return PlacedTile{}, ErrNotFound
	}
	t, ok := col[height]
	if !ok {
		return PlacedTile{}, ErrNotFound
	}
	delete(col, height)
	if len(col) == 0 {
		delete(m.columns, pos)
	}
	return t, nil
}

// AllAt yields every tile at exactly the given height, ordered row-major.
// The matching set is captured when iteration starts, so the caller may
// clear entries while ranging.
func (m *LayerMap) AllAt(height int) iter.Seq2[Position, PlacedTile] {
	return func(yield func(Position, PlacedTile) bool) {
		var hits []PlacedTile
		for _, col := range m.columns {
			if t, ok := col[height]; ok {
				hits = append(hits, t)
			}
		}
		slices.SortFunc(hits, func(a, b PlacedTile) int {
			return a.Pos.Compare(b.Pos)
		})
		for _, t := range hits {
			if !yield(t.Pos, t) {
				return
			}
		}
	}
}

// Column returns the tiles at pos ordered bottom to top.
func (m *LayerMap) Column(pos Position) []PlacedTile {
	col, ok := m.columns[pos]
	if !ok {
		return nil
	}
	heights := slices.Sorted(maps.Keys(col))
	tiles := make([]PlacedTile, 0, len(heights))
	for _, h := range heights {
		tiles = append(tiles, col[h])
	}
	return tiles
}

// Positions returns every non-empty column, ordered row-major.
func (m *LayerMap) Positions() []Position {
	out := make([]Position, 0, len(m.columns))
	for pos := range m.columns {
		out = append(out, pos)
	}
	slices.SortFunc(out, Position.Compare)
	return out
}

// Columns returns the number of non-empty columns.
func (m *LayerMap) Columns() int {
	return len(m.columns)
}

// Len returns the total number of placed tiles.
func (m *LayerMap) Len() int {
	n := 0
	for _, col := range m.columns {
		n += len(col)
	}
	return n
}

// Tiles returns every tile, columns row-major and each column bottom to top.
func (m *LayerMap) Tiles() []PlacedTile {
	var out []PlacedTile
	for _, pos := range m.Positions() {
		out = append(out, m.Column(pos)...)
	}
	return out
}

// Equal returns true if two maps hold the same tiles in the same slots.
func (m *LayerMap) Equal(other *LayerMap) bool {
	if len(m.columns) != len(other.columns) {
		return false
	}
	for pos, col := range m.columns {
		oc, ok := other.columns[pos]
		if !ok || !maps.Equal(col, oc) {
			return false
		}
	}
	return true
}

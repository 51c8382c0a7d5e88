// Package grid provides the layered occupancy store for the tile canvas.
// A column is addressed by Position; each column holds at most one tile
// per height level. It has no knowledge of the economy or of rendering.
package grid

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Grid bounds. The canvas is fixed-size.
const (
	Size      = 20 // Rows and columns
	MinHeight = 0
	MaxHeight = 10
)

// Position identifies a vertical column of the grid.
type Position struct {
	Row int
	Col int
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// InBounds returns true if the position lies on the grid.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Key returns the "row-col" form used as the snapshot map key.
func (p Position) Key() string {
	return strconv.Itoa(p.Row) + "-" + strconv.Itoa(p.Col)
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns a new Position offset by (dr, dc).
func (p Position) Add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Compare orders positions row-major.
func (p Position) Compare(other Position) int {
	if c := cmp.Compare(p.Row, other.Row); c != 0 {
		return c
	}
	return cmp.Compare(p.Col, other.Col)
}

// ParseKey parses a "row-col" key back into a Position.
func ParseKey(key string) (Position, error) {
	rowStr, colStr, ok := strings.Cut(key, "-")
	if !ok {
		return Position{}, fmt.Errorf("grid: malformed position key %q", key)
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return Position{}, fmt.Errorf("grid: malformed row in %q: %w", key, err)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return Position{}, fmt.Errorf("grid: malformed col in %q: %w", key, err)
	}
	return Position{Row: row, Col: col}, nil
}

// ValidHeight returns true if h is a usable height level.
func ValidHeight(h int) bool {
	return h >= MinHeight && h <= MaxHeight
}

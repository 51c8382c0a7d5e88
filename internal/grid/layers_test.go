package grid_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/focustile/internal/grid"
)

func TestLayerMapSetReportsReplace(t *testing.T) {
	m := grid.NewLayerMap()

	replaced, err := m.Set(grid.NewTile("grass_center", grid.P(0, 0), 0))
	if err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if replaced {
		t.Error("first Set() should be a fresh insert")
	}

	replaced, err = m.Set(grid.NewTile("tree", grid.P(0, 0), 0))
	if err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if !replaced {
		t.Error("second Set() at same slot should report replace")
	}

	got, ok := m.Get(grid.P(0, 0), 0)
	if !ok || got.Type != "tree" {
		t.Errorf("Get() = %+v, %v; expected tree", got, ok)
	}
	if got.Rotation != grid.OrientationEast {
		t.Errorf("Rotation = %q, expected %q", got.Rotation, grid.OrientationEast)
	}

	// Different height in the same column is a fresh insert
	replaced, _ = m.Set(grid.NewTile("tree", grid.P(0, 0), 3))
	if replaced {
		t.Error("Set() at a new height should not report replace")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", m.Len())
	}
}

func TestLayerMapSetOutOfBounds(t *testing.T) {
	m := grid.NewLayerMap()

	tests := []struct {
		name string
		tile grid.PlacedTile
	}{
		{"negative row", grid.NewTile("tree", grid.P(-1, 0), 0)},
		{"col past edge", grid.NewTile("tree", grid.P(0, grid.Size), 0)},
		{"height below min", grid.NewTile("tree", grid.P(1, 1), -1)},
		{"height above max", grid.NewTile("tree", grid.P(1, 1), grid.MaxHeight+1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Set(tc.tile)
			if !errors.Is(err, grid.ErrOutOfBounds) {
				t.Errorf("Set() error = %v, expected ErrOutOfBounds", err)
			}
		})
	}

	if m.Columns() != 0 {
		t.Errorf("rejected sets should not create columns, got %d", m.Columns())
	}
}

func TestLayerMapTopHeight(t *testing.T) {
	m := grid.NewLayerMap()
	pos := grid.P(4, 7)

	if _, ok := m.TopHeight(pos); ok {
		t.Error("empty column should have no top height")
	}

	// Sparse stack: no contiguity required
	for _, h := range []int{5, 0, 9} {
		m.Set(grid.NewTile("rocks", pos, h))
	}

	top, ok := m.TopHeight(pos)
	if !ok || top != 9 {
		t.Errorf("TopHeight() = %d, %v; expected 9", top, ok)
	}

	col := m.Column(pos)
	if len(col) != 3 || col[0].Height != 0 || col[1].Height != 5 || col[2].Height != 9 {
		t.Errorf("Column() should be bottom to top, got %+v", col)
	}
}

func TestLayerMapClearDropsEmptyColumn(t *testing.T) {
	m := grid.NewLayerMap()
	pos := grid.P(2, 2)
	m.Set(grid.NewTile("tree", pos, 1))
	m.Set(grid.NewTile("tree", pos, 2))

	if _, err := m.Clear(pos, 1); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if m.Columns() != 1 {
		t.Errorf("column with a remaining tile should survive, got %d columns", m.Columns())
	}

	removed, err := m.Clear(pos, 2)
	if err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if removed.Height != 2 {
		t.Errorf("removed tile height = %d, expected 2", removed.Height)
	}
	if m.Columns() != 0 {
		t.Errorf("empty column should be deleted, got %d columns", m.Columns())
	}
	if len(m.Positions()) != 0 {
		t.Error("Positions() should be empty")
	}
}

func TestLayerMapClearNotFound(t *testing.T) {
	m := grid.NewLayerMap()
	m.Set(grid.NewTile("tree", grid.P(0, 0), 0))

	if _, err := m.Clear(grid.P(1, 1), 0); !errors.Is(err, grid.ErrNotFound) {
		t.Errorf("Clear() on empty column: error = %v, expected ErrNotFound", err)
	}
	if _, err := m.Clear(grid.P(0, 0), 4); !errors.Is(err, grid.ErrNotFound) {
		t.Errorf("Clear() on empty height: error = %v, expected ErrNotFound", err)
	}
	if m.Len() != 1 {
		t.Errorf("failed Clear() should not mutate, Len() = %d", m.Len())
	}
}

func TestLayerMapAllAtAllowsClearWhileRanging(t *testing.T) {
	m := grid.NewLayerMap()
	for i := range 5 {
		m.Set(grid.NewTile("tree", grid.P(i, i), 2))
	}
	m.Set(grid.NewTile("tree", grid.P(0, 0), 3))

	var seen []grid.Position
	for pos := range m.AllAt(2) {
		seen = append(seen, pos)
		if _, err := m.Clear(pos, 2); err != nil {
			t.Fatalf("Clear(%v) while ranging failed: %v", pos, err)
		}
	}

	if len(seen) != 5 {
		t.Fatalf("AllAt(2) yielded %d tiles, expected 5", len(seen))
	}
	for i, pos := range seen {
		if pos != grid.P(i, i) {
			t.Errorf("AllAt order[%d] = %v, expected %v", i, pos, grid.P(i, i))
		}
	}

	// Fresh call reflects the mutation
	count := 0
	for range m.AllAt(2) {
		count++
	}
	if count != 0 {
		t.Errorf("AllAt(2) after clearing yielded %d tiles", count)
	}
	if m.Len() != 1 {
		t.Errorf("tile at height 3 should remain, Len() = %d", m.Len())
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		key     string
		want    grid.Position
		wantErr bool
	}{
		{"0-0", grid.P(0, 0), false},
		{"12-19", grid.P(12, 19), false},
		{"3", grid.Position{}, true},
		{"a-1", grid.Position{}, true},
		{"1-b", grid.Position{}, true},
	}

	for _, tc := range tests {
		got, err := grid.ParseKey(tc.key)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseKey(%q) error = %v, wantErr %v", tc.key, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseKey(%q) = %v, expected %v", tc.key, got, tc.want)
		}
		if !tc.wantErr && got.Key() != tc.key {
			t.Errorf("Key() = %q, expected %q", got.Key(), tc.key)
		}
	}
}

func TestPositionAddStaysOnGridOnlyInside(t *testing.T) {
	tests := []struct {
		from   grid.Position
		dr, dc int
		want   grid.Position
		inside bool
	}{
		{grid.P(5, 5), -1, 0, grid.P(4, 5), true},
		{grid.P(0, 0), 0, -1, grid.P(0, -1), false},
		{grid.P(grid.Size-1, 3), 1, 0, grid.P(grid.Size, 3), false},
		{grid.P(3, grid.Size-2), 0, 1, grid.P(3, grid.Size-1), true},
	}

	for _, tc := range tests {
		got := tc.from.Add(tc.dr, tc.dc)
		if got != tc.want {
			t.Errorf("%v.Add(%d, %d) = %v, expected %v", tc.from, tc.dr, tc.dc, got, tc.want)
		}
		if got.InBounds() != tc.inside {
			t.Errorf("%v.InBounds() = %v, expected %v", got, got.InBounds(), tc.inside)
		}
	}
}

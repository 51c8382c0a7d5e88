package tiles

import (
	"errors"
	"fmt"
	"slices"
)

// RemoveTool is the selection that turns clicks into removals.
const RemoveTool = "remove"

// MaxSlots is the default hotbar capacity.
const MaxSlots = 8

var (
	// ErrHotbarFull is returned when adding to a full hotbar.
	ErrHotbarFull = errors.New("tiles: hotbar is full")

	// ErrUnknownTile is returned for ids missing from the catalog.
	ErrUnknownTile = errors.New("tiles: unknown tile")
)

// DefaultHotbar returns the hotbar a new user starts with.
func DefaultHotbar() []string {
	return []string{"grass_center", "building_center", "tree", "water_center", "walls_corner"}
}

// Hotbar is an ordered set of tile ids offered for quick selection.
type Hotbar struct {
	slots []string
	max   int
}

// NewHotbar creates a hotbar holding at most maxSlots tiles. Unknown and
// duplicate ids are dropped, as is anything past capacity.
func NewHotbar(ids []string, maxSlots int) *Hotbar {
	if maxSlots <= 0 {
		maxSlots = MaxSlots
	}
	h := &Hotbar{max: maxSlots}
	h.Set(ids)
	return h
}

// Set replaces the hotbar contents, applying the same filtering as NewHotbar.
func (h *Hotbar) Set(ids []string) {
	h.slots = h.slots[:0]
	for _, id := range ids {
		if len(h.slots) == h.max {
			break
		}
		if Has(id) && !slices.Contains(h.slots, id) {
			h.slots = append(h.slots, id)
		}
	}
}

// Toggle adds id if absent or removes it if present.
// Returns true if the tile is in the hotbar afterwards.
func (h *Hotbar) Toggle(id string) (bool, error) {
	if i := slices.Index(h.slots, id); i >= 0 {
		h.slots = slices.Delete(h.slots, i, i+1)
		return false, nil
	}
	if !Has(id) {
		return false, fmt.Errorf("%w: %q", ErrUnknownTile, id)
	}
	if len(h.slots) >= h.max {
		return false, ErrHotbarFull
	}
	h.slots = append(h.slots, id)
	return true, nil
}

// Contains reports whether id is in the hotbar.
func (h *Hotbar) Contains(id string) bool {
	return slices.Contains(h.slots, id)
}

// Slot returns the tile in the given 0-based slot.
func (h *Hotbar) Slot(i int) (string, bool) {
	if i < 0 || i >= len(h.slots) {
		return "", false
	}
	return h.slots[i], true
}

// First returns the first slot, or "" when the hotbar is empty.
func (h *Hotbar) First() string {
	if len(h.slots) == 0 {
		return ""
	}
	return h.slots[0]
}

// Tiles returns a copy of the slots in order.
func (h *Hotbar) Tiles() []string { return slices.Clone(h.slots) }

// Len returns the number of filled slots.
func (h *Hotbar) Len() int { return len(h.slots) }

// Max returns the capacity.
func (h *Hotbar) Max() int { return h.max }

// Package tiles defines the catalog of placeable tile types and the
// hotbar of quick-select slots.
package tiles

import (
	"slices"
	"strings"
	"unicode"
)

// Category groups tile ids for display.
type Category struct {
	Name  string
	Tiles []string
}

var categories = []Category{
	{"Grass & Terrain", []string{
		"grass_center", "grass_corner", "grass_pathBend", "grass_pathCorner", "grass_pathCrossing",
		"grass_pathEnd", "grass_pathEndSquare", "grass_pathSlope", "grass_pathSplit", "grass_path",
		"grass_slope", "grass_slopeConcave", "grass_slopeConvex",
	}},
	{"Buildings", []string{
		"building_center", "building_sides", "building_dark_center", "building_dark_center_door",
		"building_dark_center_windows", "building_dark_sides", "building_dark_sides_door",
		"building_dark_sides_windows",
	}},
	{"Water & Rivers", []string{
		"water_center", "water_fall", "grass_riverBend", "grass_riverBridge", "grass_riverCorner",
		"grass_riverCrossing", "grass_riverEnd", "grass_riverEndSquare", "grass_riverSlope",
		"grass_riverSplit", "grass_river", "grass_waterConcave", "grass_waterConvex",
		"grass_waterRiver", "grass_water",
	}},
	{"Walls & Fortifications", []string{
		"walls_corner", "walls_end", "walls_broken", "walls_left", "walls_right", "walls_sides", "walls_square",
	}},
	{"Nature", []string{"tree", "trees", "rocks"}},
	{"Structures & Buildings", []string{
		"dome", "dome_small", "overhang", "overhang_small", "structure_tent", "structure_tentSlant",
	}},
	{"Floor & Terrain", []string{
		"dirt_center", "dirt_low", "tiles", "tiles_crumbled", "tiles_decorated", "tiles_steps",
	}},
	{"Stairs & Elevation", []string{"stairs_full", "stairs_left", "stairs_right"}},
}

var index = func() map[string]string {
	m := make(map[string]string)
	for _, c := range categories {
		for _, id := range c.Tiles {
			m[id] = c.Name
		}
	}
	return m
}()

// Categories returns the catalog grouped for display, in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{Name: c.Name, Tiles: slices.Clone(c.Tiles)}
	}
	return out
}

// All returns every tile id in display order.
func All() []string {
	var out []string
	for _, c := range categories {
		out = append(out, c.Tiles...)
	}
	return out
}

// Count returns the number of tile types in the catalog.
func Count() int { return len(index) }

// Has reports whether id is a catalog tile.
func Has(id string) bool {
	_, ok := index[id]
	return ok
}

// CategoryOf returns the display category of a tile id.
func CategoryOf(id string) (string, bool) {
	c, ok := index[id]
	return c, ok
}

// Title returns the display name of a tile id: underscores become
// spaces and each word is capitalised ("grass_pathBend" -> "Grass PathBend").
func Title(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Search returns the categories containing tiles whose id or title
// contains term, case-insensitively. Empty categories are omitted.
func Search(term string) []Category {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return Categories()
	}
	var out []Category
	for _, c := range categories {
		var hits []string
		for _, id := range c.Tiles {
			if strings.Contains(strings.ToLower(id), term) ||
				strings.Contains(strings.ToLower(Title(id)), term) {
				hits = append(hits, id)
			}
		}
		if len(hits) > 0 {
			out = append(out, Category{Name: c.Name, Tiles: hits})
		}
	}
	return out
}

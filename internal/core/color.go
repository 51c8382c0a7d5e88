package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Cell colors. Each tile category has its own color; the remaining
// entries mark the cursor, the placement preview and board furniture.
const (
	ColorDefault Color = iota
	ColorGrass
	ColorBuilding
	ColorWater
	ColorWall
	ColorNature
	ColorStructure
	ColorFloor
	ColorStairs
	ColorPreview
	ColorCursor
	ColorBorder
	ColorDim
)

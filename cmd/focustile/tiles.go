package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focustile/internal/tiles"
)

var tilesCmd = &cobra.Command{
	Use:   "tiles [search]",
	Short: "List the tile catalog",
	Long: `Show every placeable tile grouped by category. An optional search term
filters by id or display name.

Examples:
  focustile tiles
  focustile tiles river`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTiles,
}

func runTiles(_ *cobra.Command, args []string) {
	term := ""
	if len(args) > 0 {
		term = args[0]
	}

	categories := tiles.Search(term)
	if len(categories) == 0 {
		fmt.Printf("No tiles match %q.\n", term)
		return
	}

	// Calculate column width
	maxIDLen := 2 // "ID" header
	for _, c := range categories {
		for _, id := range c.Tiles {
			maxIDLen = max(maxIDLen, len(id))
		}
	}

	count := 0
	for _, c := range categories {
		fmt.Println(c.Name)
		fmt.Println(strings.Repeat("-", len(c.Name)))
		for _, id := range c.Tiles {
			fmt.Printf("  %-*s  %s\n", maxIDLen, id, tiles.Title(id))
			count++
		}
		fmt.Println()
	}

	fmt.Printf("%d of %d tiles. Run 'focustile hotbar toggle <id>' to add one to the hotbar.\n", count, tiles.Count())
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focustile/internal/tiles"
)

var hotbarCmd = &cobra.Command{
	Use:   "hotbar",
	Short: "Inspect or edit the hotbar",
	Long: `The hotbar holds up to 8 quick-select tiles, bound to keys 1-8 in the
canvas.

Examples:
  focustile hotbar list
  focustile hotbar toggle rocks`,
}

var hotbarListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the hotbar slots",
	Args:  cobra.NoArgs,
	Run:   runHotbarList,
}

var hotbarToggleCmd = &cobra.Command{
	Use:   "toggle <tile>",
	Short: "Add a tile to the hotbar, or remove it if present",
	Args:  cobra.ExactArgs(1),
	Run:   runHotbarToggle,
}

func init() {
	hotbarCmd.AddCommand(hotbarListCmd)
	hotbarCmd.AddCommand(hotbarToggleCmd)
}

func runHotbarList(_ *cobra.Command, _ []string) {
	h := openHeadless()
	defer h.Close()
	printHotbar(h.ctrl.Hotbar())
}

func runHotbarToggle(_ *cobra.Command, args []string) {
	h := openHeadless()
	defer h.Close()

	id := args[0]
	in, err := h.ctrl.ToggleHotbar(id)
	if err != nil {
		h.Close()
		fatalf("%v", err)
	}
	if in {
		fmt.Printf("Added %s to the hotbar.\n", tiles.Title(id))
	} else {
		fmt.Printf("Removed %s from the hotbar.\n", tiles.Title(id))
	}
	printHotbar(h.ctrl.Hotbar())
}

func printHotbar(slots []string) {
	fmt.Println()
	if len(slots) == 0 {
		fmt.Println("Hotbar is empty.")
		return
	}
	for i, id := range slots {
		fmt.Printf("  %d  %-28s %s\n", i+1, id, tiles.Title(id))
	}
}

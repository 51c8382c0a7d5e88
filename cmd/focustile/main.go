// focustile is a focus timer that pays out tiles for a terminal canvas.
//
// Usage:
//
//	focustile play                 - Open the canvas in the terminal
//	focustile serve                - Serve a canvas per user over SSH
//	focustile stats                - Show counters and recent sessions
//	focustile tiles [search]       - List the tile catalog
//	focustile hotbar list|toggle   - Inspect or edit the hotbar
//	focustile notes list|add|rm    - Manage notes
//	focustile export <file>        - Write a compressed snapshot archive
//	focustile import <file>        - Replace the canvas from an archive
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.focustile/config.yaml)
//	--store <backend>   - Storage backend: sqlite, file or memory
//	--db <path>         - Database path for the sqlite backend
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagStore    string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "focustile",
	Short: "FocusTile - Earn tiles with focus sessions, build with them",
	Long: `FocusTile pairs a focus timer with a 20x20 layered tile canvas.
Every completed work session earns tiles; placing a tile on an empty
slot spends one, removing it gives it back.

Available commands:
  play     - Open the canvas in your terminal
  serve    - Start an SSH server with a canvas per user
  stats    - Show counters and session history
  tiles    - List the tile catalog
  hotbar   - Inspect or edit the hotbar
  notes    - Manage notes
  export   - Export the canvas to an archive
  import   - Import an archive or a browser export

Examples:
  focustile play
  focustile serve --ssh :2222
  focustile tiles river
  focustile notes add "sketch the castle walls"
  focustile export canvas.ftz`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Storage backend (sqlite, file, memory)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the sqlite database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tilesCmd)
	rootCmd.AddCommand(hotbarCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/focustile/internal/platform/tui"
	"github.com/vovakirdan/focustile/internal/snapshot"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the canvas",
	Long: `Open the tile canvas in the terminal.

Controls:
  Arrows/hjkl  - Move the cursor
  Enter/Space  - Place the selected tile (or remove with the remove tool)
  1-8          - Select a hotbar slot
  X            - Select the remove tool
  Q/A          - Raise/lower the height level
  C            - Clear every tile on the current height
  S            - Start/pause a focus session
  N            - Write a note
  Tab          - Browse notes (D deletes)
  T            - Tile selector (toggle hotbar tiles)
  V            - Session history
  ?            - Full help
  Esc/Ctrl+C   - Quit

A running session keeps counting while FocusTile is closed and pays
out the next time you open it.`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fatalf("play needs an interactive terminal")
	}

	cfg := loadConfig()

	// Log to a file so the alternate screen stays clean
	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		fatalf("opening log file: %v", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg.Log.Level, "focustile")

	kv, history, err := openStore(cfg)
	if err != nil {
		fatalf("opening store: %v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger.Info("opening canvas", "store", cfg.Storage.Backend)
	runErr := tui.Run(tui.Options{
		Repo:         snapshot.NewRepo(kv),
		History:      history,
		Canvas:       canvasOptions(cfg, logger),
		DismissAfter: cfg.Notify.DismissAfter,
		Width:        width,
		Height:       height,
	})

	if err := kv.Close(); err != nil {
		logger.Warn("closing store", "error", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running canvas: %v\n", runErr)
		os.Exit(1)
	}
}

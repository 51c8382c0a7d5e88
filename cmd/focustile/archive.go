package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focustile/internal/canvas"
	"github.com/vovakirdan/focustile/internal/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the canvas to a compressed archive",
	Long: `Write the canvas, counters, notes, hotbar and running session to a
zstd-compressed archive. Use - to write to stdout.

Examples:
  focustile export canvas.ftz
  focustile export - > backup.ftz`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the canvas from an archive",
	Long: `Replace the whole local canvas with an archive written by export. A
plain JSON export from the browser version is accepted too.

The running session is replaced as well: an archive without one stops
any session in progress.

Examples:
  focustile import canvas.ftz
  focustile import focustile-data.json`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func runExport(_ *cobra.Command, args []string) {
	h := openHeadless()
	defer h.Close()

	out := os.Stdout
	if args[0] != "-" {
		f, err := os.Create(args[0])
		if err != nil {
			h.Close()
			fatalf("creating %s: %v", args[0], err)
		}
		defer f.Close()
		out = f
	}

	if err := exportCanvas(out, h.ctrl, time.Now()); err != nil {
		h.Close()
		fatalf("exporting: %v", err)
	}
	if args[0] != "-" {
		fmt.Fprintf(os.Stderr, "Exported %d tiles to %s\n", h.ctrl.Stats().Placed, args[0])
	}
}

func runImport(_ *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	if err != nil {
		fatalf("opening %s: %v", args[0], err)
	}
	defer f.Close()

	h := openHeadless()
	defer h.Close()

	snap, err := importArchive(h.ctrl, f)
	if err != nil {
		h.Close()
		fatalf("importing %s: %v", args[0], err)
	}

	placed := 0
	for _, col := range snap.GridData {
		placed += len(col)
	}
	fmt.Printf("Imported %d tiles, %d notes and %d available tiles.\n", placed, len(snap.Notes), snap.TilesAvailable)
}

// exportCanvas writes the controller state and running session to w.
func exportCanvas(w io.Writer, ctrl *canvas.Controller, now time.Time) error {
	return snapshot.WriteArchive(w, ctrl.Snapshot(), ctrl.TimerRecord(), now)
}

// importArchive validates the archive and replaces the controller state
// with it. Nothing is touched if the archive is rejected.
func importArchive(ctrl *canvas.Controller, r io.Reader) (*snapshot.Snapshot, error) {
	snap, timer, err := snapshot.ReadArchive(r)
	if err != nil {
		return nil, err
	}
	if err := ctrl.Import(snap, timer); err != nil {
		return nil, err
	}
	return snap, nil
}

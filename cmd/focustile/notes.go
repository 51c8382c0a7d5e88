package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage notes",
	Long: `Notes are shown beside the canvas, newest first.

Examples:
  focustile notes list
  focustile notes add "plan the river crossing"
  focustile notes rm 3`,
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	Run:   runNotesList,
}

var notesAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a note",
	Args:  cobra.MinimumNArgs(1),
	Run:   runNotesAdd,
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run:   runNotesRm,
}

func init() {
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesRmCmd)
}

func runNotesList(_ *cobra.Command, _ []string) {
	h := openHeadless()
	defer h.Close()

	list := h.ctrl.Notes()
	if len(list) == 0 {
		fmt.Println("No notes yet.")
		return
	}
	for _, n := range list {
		fmt.Printf("  %-4d %s\n", n.ID, n.Text)
		fmt.Printf("       %s\n", n.CreatedAt)
	}
}

func runNotesAdd(_ *cobra.Command, args []string) {
	h := openHeadless()
	defer h.Close()

	n, err := h.ctrl.AddNote(strings.Join(args, " "))
	if err != nil {
		h.Close()
		fatalf("%v", err)
	}
	fmt.Printf("Added note %d.\n", n.ID)
}

func runNotesRm(_ *cobra.Command, args []string) {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fatalf("invalid note id %q", args[0])
	}

	h := openHeadless()
	defer h.Close()

	if err := h.ctrl.DeleteNote(id); err != nil {
		h.Close()
		fatalf("%v", err)
	}
	fmt.Printf("Deleted note %d.\n", id)
}

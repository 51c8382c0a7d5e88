package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/focustile/internal/focus"
)

var flagRecent int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show counters and recent sessions",
	Long: `Display the tile counters of the local canvas and, with the sqlite
store, the most recently completed focus sessions.

Examples:
  focustile stats
  focustile stats --recent 25`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent sessions to show")
}

func runStats(_ *cobra.Command, _ []string) {
	h := openHeadless()
	defer h.Close()

	s := h.ctrl.Stats()
	fmt.Println("FocusTile")
	fmt.Println()
	fmt.Printf("  %-10s %d\n", "Available", s.Available)
	fmt.Printf("  %-10s %d\n", "Earned", s.Earned)
	fmt.Printf("  %-10s %d\n", "Used", s.Used)
	fmt.Printf("  %-10s %d\n", "Placed", s.Placed)
	fmt.Printf("  %-10s %d\n", "Sessions", s.Sessions)
	fmt.Printf("  %-10s %d\n", "Height", s.Height)
	if s.Running {
		fmt.Printf("  %-10s %s left\n", "Session", focus.FormatRemaining(s.Remaining))
	}

	if h.history == nil {
		return
	}

	records, err := h.history.RecentSessions(localOwner, flagRecent)
	if err != nil {
		fatalf("retrieving sessions: %v", err)
	}

	fmt.Println()
	if len(records) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'focustile play' and press S to start one!")
		return
	}

	fmt.Printf("  %-16s  %-16s  %-5s  %s\n", "Started", "Completed", "Tiles", "Away")
	fmt.Printf("  %-16s  %-16s  %-5s  %s\n", "-------", "---------", "-----", "----")
	for _, r := range records {
		away := ""
		if r.Away {
			away = "yes"
		}
		fmt.Printf("  %-16s  %-16s  %-5s  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.CompletedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("+%d", r.Reward),
			away)
	}

	if total, err := h.history.SessionStats(localOwner); err == nil {
		fmt.Println()
		fmt.Printf("Total: %d sessions, %d tiles earned, %d completed while away\n",
			total.Sessions, total.TilesRewarded, total.AwaySessions)
	}
}

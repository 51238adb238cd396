package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaga/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded runs",
	Long: `Display the most recent runs stored in a trace database.

Examples:
  galaga runs --trace ~/.galaga/trace.db
  galaga runs --trace ./trace.db --limit 25`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
}

func runRuns(_ *cobra.Command, _ []string) error {
	if flagTracePath == "" {
		return errors.New("--trace is required")
	}

	store, err := storage.Open(flagTracePath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(flagRunsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play with 'galaga play --trace <db>' to record one.")
		return nil
	}

	fmt.Printf("  %-6s  %-20s  %-8s  %-8s  %-5s  %s\n", "ID", "Seed", "Score", "Frames", "Over", "Started")
	fmt.Printf("  %-6s  %-20s  %-8s  %-8s  %-5s  %s\n", "--", "----", "-----", "------", "----", "-------")

	for _, r := range runs {
		started := "-"
		if !r.StartedAt.IsZero() {
			started = r.StartedAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-6d  %-20d  %-8d  %-8d  %-5v  %s\n", r.ID, r.Seed, r.Score, r.Frames, r.Over, started)
	}
	return nil
}

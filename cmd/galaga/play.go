package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-galaga/internal/platform/tui"
	"github.com/vovakirdan/tui-galaga/internal/storage"
)

var flagLogPath string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the current terminal",
	Long: `Start a game sized to the current terminal.

Controls:
  Mouse        - Move the ship
  Click/Space  - Fire
  Left/Right   - Nudge the ship
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  galaga play
  galaga play --seed 7
  galaga play --config ./my-galaga.yaml --log /tmp/galaga.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogPath, "log", "", "Write debug logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The TUI owns stdout, so logs only go to a file when asked.
	var logOut io.Writer = io.Discard
	if flagLogPath != "" {
		f, openErr := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "galaga",
	})

	var store *storage.Store
	if flagTracePath != "" {
		store, err = storage.Open(flagTracePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open trace database: %v\n", err)
			// Continue without tracing - game still works
			store = nil
		}
	}

	runErr := tui.Run(tui.Options{
		Config: cfg,
		Seed:   flagSeed,
		Logger: logger,
		Trace:  tui.NewRunTrace(store, logger),
	}, width, height)

	if store != nil {
		store.Close()
	}
	return runErr
}

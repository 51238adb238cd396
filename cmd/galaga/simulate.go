package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaga/internal/core"
	"github.com/vovakirdan/tui-galaga/internal/games/galaga"
	"github.com/vovakirdan/tui-galaga/internal/storage"
)

var (
	flagDuration time.Duration
	flagCols     int
	flagRows     int
	flagVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game with an autopilot",
	Long: `Run a game without a terminal. An autopilot steers under the lowest
enemy and fires continuously. The same seed always produces the same run.

Examples:
  galaga simulate --seed 42
  galaga simulate --duration 5m --cols 120 --rows 40
  galaga simulate --seed 42 --trace ./trace.db --verbose`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagDuration, "duration", time.Minute, "Maximum virtual time to simulate")
	simulateCmd.Flags().IntVar(&flagCols, "cols", 80, "Terminal width in cells")
	simulateCmd.Flags().IntVar(&flagRows, "rows", 30, "Terminal height in cells")
	simulateCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log game events")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "galaga",
	})

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.NewRuntimeConfig(flagCols, flagRows, cfg.Geometry.CellWidth, cfg.Geometry.CellHeight, seed)
	logger.Info("simulation starting", "seed", seed, "config", source, "duration", flagDuration)

	opts := []galaga.Option{galaga.WithLogger(logger)}

	var recorder *storage.Recorder
	if flagTracePath != "" {
		store, openErr := storage.Open(flagTracePath)
		if openErr != nil {
			return openErr
		}
		defer store.Close()

		recorder, err = storage.NewRecorder(store, seed, rt.CanvasW, rt.CanvasH)
		if err != nil {
			return err
		}
		opts = append(opts, galaga.WithSink(func(s galaga.Scene) {
			if recErr := recorder.Record(s); recErr != nil {
				logger.Warn("run trace write failed", "error", recErr)
			}
		}))
	}

	game, err := galaga.New(cfg, rt, opts...)
	if err != nil {
		return err
	}

	step := cfg.Timing.FramePeriod
	var state core.GameState
	for game.Now() < flagDuration && !state.GameOver {
		in := core.NewInputFrame()
		x, fire := galaga.Autopilot(game.Scene())
		in.SetPointer(x)
		if fire {
			in.Set(core.ActionFire)
		}
		state = game.Step(in, step).State
	}

	if recorder != nil {
		if err := recorder.Finish(); err != nil {
			return err
		}
	}

	stats := game.Stats()
	fmt.Printf("Seed:        %d\n", seed)
	fmt.Printf("Canvas:      %.0fx%.0f\n", rt.CanvasW, rt.CanvasH)
	fmt.Printf("Time:        %s\n", game.Now())
	fmt.Printf("Frames:      %d\n", stats.Frames)
	fmt.Printf("Score:       %d\n", state.Score)
	fmt.Printf("Kills:       %d\n", stats.Kills)
	fmt.Printf("Spawned:     %d\n", stats.Spawned)
	fmt.Printf("Shots fired: %d\n", stats.ShotsFired)
	fmt.Printf("Game over:   %v\n", state.GameOver)
	if recorder != nil {
		fmt.Printf("Run ID:      %d\n", recorder.RunID())
	}
	return nil
}

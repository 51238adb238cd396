// galaga is a terminal space shooter: the ship follows the mouse, enemies
// fall from the top and fire back, and the run ends on the first contact.
//
// Usage:
//
//	galaga play              - Play in the current terminal
//	galaga serve             - Start SSH server for remote play
//	galaga simulate          - Run a headless game with an autopilot
//	galaga runs              - Show recorded runs
//	galaga config            - Print the effective configuration
//
// Global flags:
//
//	--config <path> - Custom galaga.yaml
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--trace <path>  - Record runs to a SQLite database
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaga/internal/config"
)

var (
	// Global flags
	flagConfig    string
	flagSeed      int64
	flagTracePath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "galaga",
	Short: "Galaga - a mouse-driven space shooter for the terminal",
	Long: `Galaga is a terminal space shooter. Move the mouse to steer the ship,
click or press space to fire, and avoid the falling enemies and their shots.

Available commands:
  play      - Play in the current terminal
  serve     - Start SSH server for remote play
  simulate  - Run a headless game with an autopilot
  runs      - Show runs recorded with --trace
  config    - Print the effective configuration

Examples:
  galaga play
  galaga play --seed 42 --trace ~/.galaga/trace.db
  galaga serve --ssh :2222
  galaga simulate --duration 2m --verbose`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom galaga.yaml")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagTracePath, "trace", "", "Record runs to this SQLite database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the game configuration selected by --config.
func loadConfig() (config.GalagaConfig, string, error) {
	cfg, source, err := config.LoadGalagaWithSource(flagConfig)
	if err != nil {
		return config.GalagaConfig{}, "", err
	}
	return cfg, source, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaga/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would run with, as YAML.

The source is reported on stderr: a file path, "embedded" for the built-in
defaults, or "builtin" for the hardcoded fallback.

Examples:
  galaga config > ~/.galaga/configs/galaga.yaml
  galaga config --config ./my-galaga.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "# source: %s\n", source)
	_, err = os.Stdout.Write(data)
	return err
}

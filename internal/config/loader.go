package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "galaga.yaml"

// LoadGalaga loads the game configuration.
// Search order: customPath -> ~/.galaga/configs/galaga.yaml -> ./configs/galaga.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadGalaga(customPath string) (GalagaConfig, error) {
	cfg, _, err := LoadGalagaWithSource(customPath)
	return cfg, err
}

// LoadGalagaWithSource is LoadGalaga that also reports where the config came from.
// The source is a file path or "embedded".
func LoadGalagaWithSource(customPath string) (GalagaConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GalagaConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return GalagaConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return GalagaConfig{}, "", fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil && cfg.Validate() == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultGalagaYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultGalagaConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// parse decodes YAML on top of the hardcoded defaults.
func parse(data []byte) (GalagaConfig, error) {
	cfg := DefaultGalagaConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GalagaConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func Marshal(cfg GalagaConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".galaga", "configs", filename)
}

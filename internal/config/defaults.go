package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/galaga.yaml
var defaultGalagaYAML []byte

// DefaultGalagaConfig returns the hardcoded default configuration.
// It matches defaults/galaga.yaml.
func DefaultGalagaConfig() GalagaConfig {
	return GalagaConfig{
		Timing: TimingConfig{
			FramePeriod:      40 * time.Millisecond,
			EnemySpawnPeriod: 1500 * time.Millisecond,
			EnemyShotPeriod:  750 * time.Millisecond,
			FireDebounce:     200 * time.Millisecond,
		},
		Stars: StarsConfig{
			Count: 250,
		},
		Ship: ShipConfig{
			BottomOffset: 30,
		},
		Enemies: EnemiesConfig{
			SpawnY: -30,
			Speed:  5,
			Jitter: 15,
		},
		Shots: ShotsConfig{
			Speed:     15,
			SentinelX: -100,
			SentinelY: -100,
		},
		Scoring: ScoringConfig{
			Increment: 10,
		},
		Geometry: GeometryConfig{
			VisibilityMargin: 40,
			CollisionHalf:    20,
			CellWidth:        10,
			CellHeight:       20,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGalagaYAML
}

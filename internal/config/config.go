// Package config provides YAML-based game configuration loading.
package config

import (
	"fmt"
	"time"
)

// GalagaConfig contains all tunable parameters of the game.
type GalagaConfig struct {
	Timing   TimingConfig   `yaml:"timing"`
	Stars    StarsConfig    `yaml:"stars"`
	Ship     ShipConfig     `yaml:"ship"`
	Enemies  EnemiesConfig  `yaml:"enemies"`
	Shots    ShotsConfig    `yaml:"shots"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Geometry GeometryConfig `yaml:"geometry"`
}

// TimingConfig defines the periods of the recurring tasks.
type TimingConfig struct {
	FramePeriod      time.Duration `yaml:"frame_period"`
	EnemySpawnPeriod time.Duration `yaml:"enemy_spawn_period"`
	EnemyShotPeriod  time.Duration `yaml:"enemy_shot_period"`
	FireDebounce     time.Duration `yaml:"fire_debounce"`
}

// StarsConfig defines the background star field.
type StarsConfig struct {
	Count int `yaml:"count"`
}

// ShipConfig defines the player ship.
type ShipConfig struct {
	BottomOffset float64 `yaml:"bottom_offset"`
}

// EnemiesConfig defines enemy spawning and movement.
type EnemiesConfig struct {
	SpawnY float64 `yaml:"spawn_y"`
	Speed  float64 `yaml:"speed"`
	Jitter int     `yaml:"jitter"`
}

// ShotsConfig defines shot movement for both sides.
type ShotsConfig struct {
	Speed     float64 `yaml:"speed"`
	SentinelX float64 `yaml:"sentinel_x"`
	SentinelY float64 `yaml:"sentinel_y"`
}

// ScoringConfig defines score increments.
type ScoringConfig struct {
	Increment int `yaml:"increment"`
}

// GeometryConfig defines hit boxes, visibility and the terminal cell size.
type GeometryConfig struct {
	VisibilityMargin float64 `yaml:"visibility_margin"`
	CollisionHalf    float64 `yaml:"collision_half"`
	CellWidth        float64 `yaml:"cell_width"`
	CellHeight       float64 `yaml:"cell_height"`
}

// Validate checks that every period, count and speed is usable.
func (c GalagaConfig) Validate() error {
	durations := []struct {
		name string
		val  time.Duration
	}{
		{"timing.frame_period", c.Timing.FramePeriod},
		{"timing.enemy_spawn_period", c.Timing.EnemySpawnPeriod},
		{"timing.enemy_shot_period", c.Timing.EnemyShotPeriod},
		{"timing.fire_debounce", c.Timing.FireDebounce},
	}
	for _, d := range durations {
		if d.val <= 0 {
			return fmt.Errorf("config: %s must be positive", d.name)
		}
	}

	numbers := []struct {
		name string
		val  float64
	}{
		{"stars.count", float64(c.Stars.Count)},
		{"enemies.speed", c.Enemies.Speed},
		{"shots.speed", c.Shots.Speed},
		{"scoring.increment", float64(c.Scoring.Increment)},
		{"geometry.collision_half", c.Geometry.CollisionHalf},
		{"geometry.cell_width", c.Geometry.CellWidth},
		{"geometry.cell_height", c.Geometry.CellHeight},
	}
	for _, n := range numbers {
		if n.val <= 0 {
			return fmt.Errorf("config: %s must be positive", n.name)
		}
	}

	if c.Enemies.Jitter < 0 {
		return fmt.Errorf("config: enemies.jitter must not be negative")
	}
	if c.Geometry.VisibilityMargin < 0 {
		return fmt.Errorf("config: geometry.visibility_margin must not be negative")
	}
	return nil
}

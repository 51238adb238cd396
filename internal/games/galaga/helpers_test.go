package galaga

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-galaga/internal/config"
	"github.com/vovakirdan/tui-galaga/internal/core"
	"github.com/vovakirdan/tui-galaga/internal/sched"
)

var testBounds = core.Bounds{W: 800, H: 600}

func testRuntime(seed int64) core.RuntimeConfig {
	return core.NewRuntimeConfig(80, 30, 10, 20, seed)
}

// newTestPopulation returns a population on its own scheduler.
func newTestPopulation(t *testing.T, cfg config.GalagaConfig) (*EnemyPopulation, *sched.Scheduler) {
	t.Helper()
	s := sched.New()
	rng := rand.New(rand.NewSource(7))
	return NewEnemyPopulation(rng, s, testBounds, cfg, nil), s
}

// newTestGame creates a game that records every delivered scene.
func newTestGame(t *testing.T, cfg config.GalagaConfig, seed int64) (*Game, *[]Scene) {
	t.Helper()
	var scenes []Scene
	g, err := New(cfg, testRuntime(seed), WithSink(func(s Scene) { scenes = append(scenes, s) }))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g, &scenes
}

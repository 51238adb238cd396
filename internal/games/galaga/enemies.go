package galaga

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaga/internal/config"
	"github.com/vovakirdan/tui-galaga/internal/core"
	"github.com/vovakirdan/tui-galaga/internal/sched"
)

// EnemyPopulation spawns, moves, arms and culls enemies.
// Each enemy owns a firing task on the scheduler; the task is cancelled when
// the enemy leaves the population.
type EnemyPopulation struct {
	enemies []*Enemy
	rng     *rand.Rand
	sched   *sched.Scheduler
	bounds  core.Bounds
	cfg     config.GalagaConfig
	log     *log.Logger

	spawned int
	removed int
}

// NewEnemyPopulation creates an empty population. A nil logger discards.
func NewEnemyPopulation(rng *rand.Rand, s *sched.Scheduler, b core.Bounds, cfg config.GalagaConfig, logger *log.Logger) *EnemyPopulation {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &EnemyPopulation{
		enemies: make([]*Enemy, 0, 16),
		rng:     rng,
		sched:   s,
		bounds:  b,
		cfg:     cfg,
		log:     logger,
	}
}

// Spawn adds an enemy at a random x just above the top edge.
func (p *EnemyPopulation) Spawn() error {
	x := float64(randIntn(p.rng, int(p.bounds.W)))
	return p.SpawnAt(core.Vec{X: x, Y: p.cfg.Enemies.SpawnY})
}

// SpawnAt adds an alive enemy at pos, starts its firing task, then culls.
func (p *EnemyPopulation) SpawnAt(pos core.Vec) error {
	e := &Enemy{Pos: pos}
	task, err := p.sched.Every(p.cfg.Timing.EnemyShotPeriod, func() { p.fire(e) })
	if err != nil {
		return fmt.Errorf("galaga: start enemy fire: %w", err)
	}
	e.firing = task

	p.enemies = append(p.enemies, e)
	p.spawned++
	p.log.Debug("enemy spawned", "x", pos.X, "y", pos.Y, "population", len(p.enemies))

	p.Cull()
	return nil
}

// fire runs on the enemy's own timer.
func (p *EnemyPopulation) fire(e *Enemy) {
	if !e.Dead {
		e.Shots = append(e.Shots, Shot{Pos: e.Pos})
	}
	e.Shots = visibleShots(e.Shots, p.bounds, p.cfg.Geometry.VisibilityMargin)
}

// Advance moves every enemy down with horizontal jitter and every enemy shot
// down at shot speed. Dead enemies keep moving.
func (p *EnemyPopulation) Advance() {
	jitter := p.cfg.Enemies.Jitter
	for _, e := range p.enemies {
		e.Pos.Y += p.cfg.Enemies.Speed
		e.Pos.X += float64(randRange(p.rng, -jitter, jitter))
		for i := range e.Shots {
			e.Shots[i].Pos.Y += p.cfg.Shots.Speed
		}
	}
}

// Cull removes enemies that are off-screen, or dead with no shots left, and
// cancels their firing tasks. It returns the number removed.
func (p *EnemyPopulation) Cull() int {
	margin := p.cfg.Geometry.VisibilityMargin
	kept := p.enemies[:0]
	n := 0
	for _, e := range p.enemies {
		offscreen := !p.bounds.Visible(e.Pos, margin)
		if offscreen || (e.Dead && len(e.Shots) == 0) {
			e.firing.Cancel()
			n++
			p.log.Debug("enemy removed", "x", e.Pos.X, "y", e.Pos.Y, "offscreen", offscreen, "dead", e.Dead)
			continue
		}
		kept = append(kept, e)
	}
	clear(p.enemies[len(kept):])
	p.enemies = kept
	p.removed += n
	return n
}

// StopAll cancels every firing task.
func (p *EnemyPopulation) StopAll() {
	for _, e := range p.enemies {
		e.firing.Cancel()
	}
}

// Enemies returns the population in spawn order. Callers must not retain it.
func (p *EnemyPopulation) Enemies() []*Enemy {
	return p.enemies
}

// Len returns the current population size.
func (p *EnemyPopulation) Len() int {
	return len(p.enemies)
}

// Spawned returns the number of enemies spawned so far.
func (p *EnemyPopulation) Spawned() int {
	return p.spawned
}

// Removed returns the number of enemies culled so far.
func (p *EnemyPopulation) Removed() int {
	return p.removed
}

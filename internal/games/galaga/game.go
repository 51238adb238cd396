package galaga

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaga/internal/config"
	"github.com/vovakirdan/tui-galaga/internal/core"
	"github.com/vovakirdan/tui-galaga/internal/sched"
)

// Sink receives every scene as it is composed.
type Sink func(Scene)

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for game events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithSink sets the scene consumer.
func WithSink(fn Sink) Option {
	return func(g *Game) {
		g.sink = fn
	}
}

// Stats are counters for a single run.
type Stats struct {
	Frames      uint64
	Spawned     int
	Removed     int
	Population  int
	Kills       int
	ShotsFired  int
	ActiveTasks int
}

// Game owns all simulation state and the scheduler that drives it.
// It is not safe for concurrent use: the caller serializes every call.
type Game struct {
	cfg    config.GalagaConfig
	rt     core.RuntimeConfig
	bounds core.Bounds
	sink   Sink
	log    *log.Logger

	sched    *sched.Scheduler
	stars    *StarField
	ship     *Ship
	enemies  *EnemyPopulation
	shots    *PlayerShots
	fire     *FireControl
	score    *ScoreTracker
	composer *SceneComposer

	frames int // scenes delivered during the current Advance
}

// New creates a game on a canvas of rt's logical size and starts its tasks.
func New(cfg config.GalagaConfig, rt core.RuntimeConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("galaga: %w", err)
	}
	g := &Game{
		cfg: cfg,
		log: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.Reset(rt); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset discards the current run and starts a new one with rt.
func (g *Game) Reset(rt core.RuntimeConfig) error {
	bounds := rt.Bounds()
	if bounds.W <= 0 || bounds.H <= 0 {
		return fmt.Errorf("galaga: canvas %.0fx%.0f: %w", bounds.W, bounds.H, core.ErrResourceUnavailable)
	}
	if g.sched != nil {
		g.stop()
	}

	g.rt = rt
	g.bounds = bounds
	rng := rand.New(rand.NewSource(rt.Seed))
	s := sched.New()

	g.sched = s
	g.stars = NewStarField(rng, g.cfg.Stars.Count, bounds)
	g.ship = NewShip(bounds, g.cfg.Ship.BottomOffset)
	g.enemies = NewEnemyPopulation(rng, s, bounds, g.cfg, g.log)
	g.shots = NewPlayerShots(bounds, g.ship.Pos().Y, g.cfg)
	g.score = NewScoreTracker()
	g.composer = NewSceneComposer(bounds, g.cfg.Geometry.CollisionHalf)

	if _, err := s.Every(g.cfg.Timing.FramePeriod, g.frame); err != nil {
		return fmt.Errorf("galaga: frame timer: %w: %w", core.ErrResourceUnavailable, err)
	}
	if _, err := s.Every(g.cfg.Timing.EnemySpawnPeriod, g.spawn); err != nil {
		return fmt.Errorf("galaga: spawn timer: %w: %w", core.ErrResourceUnavailable, err)
	}
	fc, err := NewFireControl(s, g.cfg.Timing.FireDebounce, g.onFire)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrResourceUnavailable, err)
	}
	g.fire = fc

	g.log.Debug("game started", "seed", rt.Seed, "width", bounds.W, "height", bounds.H)
	return nil
}

// frame advances every component once and composes a scene.
func (g *Game) frame() {
	g.stars.Tick()
	g.enemies.Advance()

	events := g.shots.Resolve(g.enemies.Enemies())
	score := g.score.Apply(events)
	for range events {
		g.log.Debug("enemy destroyed", "score", score)
	}

	g.enemies.Cull()
	g.shots.Cull()

	scene, ok := g.composer.Compose(g.sched.Now(), g.stars.Stars(), g.ship.Pos(),
		g.enemies.Enemies(), g.shots.Shots(), score)
	if !ok {
		return
	}
	if scene.Over {
		g.stop()
		g.log.Info("game over", "score", scene.Score, "frame", scene.Tick, "at", scene.At)
	}

	g.frames++
	if g.sink != nil {
		g.sink(scene)
	}
}

func (g *Game) spawn() {
	if err := g.enemies.Spawn(); err != nil {
		g.log.Error("spawn failed", "err", err)
	}
}

func (g *Game) onFire(ev FireEvent) {
	g.shots.Accept(ev, g.ship.Pos().X)
}

// stop cancels every task of the current run.
func (g *Game) stop() {
	g.enemies.StopAll()
	g.fire.Stop()
	g.sched.Stop()
}

// MovePointer sets the ship's x.
func (g *Game) MovePointer(x float64) {
	g.ship.Track(x)
}

// Fire records a firing intent.
func (g *Game) Fire() {
	g.fire.Intent()
}

// Advance moves the virtual clock forward by dt and returns the number of
// scenes delivered.
func (g *Game) Advance(dt time.Duration) int {
	g.frames = 0
	g.sched.Advance(dt)
	return g.frames
}

// Step applies one input frame and then advances the clock by dt.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if x, ok := in.Pointer(); ok {
		g.MovePointer(x)
	}
	if in.Has(core.ActionFire) {
		g.Fire()
	}
	n := g.Advance(dt)
	return core.StepResult{State: g.State(), Frames: n}
}

// State returns the score and whether the game has ended.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score.Total(),
		GameOver: g.composer.Done(),
	}
}

// Scene returns the most recently composed scene.
func (g *Game) Scene() Scene {
	return g.composer.Last()
}

// Now returns the virtual time of the current run.
func (g *Game) Now() time.Duration {
	return g.sched.Now()
}

// Bounds returns the logical canvas size.
func (g *Game) Bounds() core.Bounds {
	return g.bounds
}

// Config returns the game configuration.
func (g *Game) Config() config.GalagaConfig {
	return g.cfg
}

// Stats returns run counters.
func (g *Game) Stats() Stats {
	return Stats{
		Frames:      g.composer.Last().Tick,
		Spawned:     g.enemies.Spawned(),
		Removed:     g.enemies.Removed(),
		Population:  g.enemies.Len(),
		Kills:       g.score.Kills(),
		ShotsFired:  g.shots.Fired(),
		ActiveTasks: g.sched.Active(),
	}
}

package galaga

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-galaga/internal/config"
	"github.com/vovakirdan/tui-galaga/internal/core"
	"github.com/vovakirdan/tui-galaga/internal/sched"
)

// FireControl turns firing intents into at most one FireEvent per window.
// Intents between samples collapse into one; the control starts with an
// intent already pending, so the first window always fires.
type FireControl struct {
	sched   *sched.Scheduler
	task    *sched.Task
	pending bool
	emit    func(FireEvent)
}

// NewFireControl starts sampling intents every window.
func NewFireControl(s *sched.Scheduler, window time.Duration, emit func(FireEvent)) (*FireControl, error) {
	fc := &FireControl{
		sched:   s,
		pending: true,
		emit:    emit,
	}
	task, err := s.Every(window, fc.sample)
	if err != nil {
		return nil, fmt.Errorf("galaga: start fire control: %w", err)
	}
	fc.task = task
	return fc, nil
}

// Intent records a request to fire (click or space).
func (fc *FireControl) Intent() {
	fc.pending = true
}

func (fc *FireControl) sample() {
	if !fc.pending {
		return
	}
	fc.pending = false
	fc.emit(FireEvent{At: fc.sched.Now()})
}

// Stop cancels sampling.
func (fc *FireControl) Stop() {
	if fc == nil {
		return
	}
	fc.task.Cancel()
}

// PlayerShots is the sequence of shots fired by the ship.
type PlayerShots struct {
	shots   []Shot
	shipY   float64
	bounds  core.Bounds
	cfg     config.GalagaConfig
	lastAt  time.Duration
	hasLast bool
	fired   int
}

// NewPlayerShots creates an empty sequence. New shots start at shipY.
func NewPlayerShots(b core.Bounds, shipY float64, cfg config.GalagaConfig) *PlayerShots {
	return &PlayerShots{
		shots:  make([]Shot, 0, 16),
		shipY:  shipY,
		bounds: b,
		cfg:    cfg,
	}
}

// Accept appends a shot at x for ev. An event with the same timestamp as the
// previously accepted one is ignored. It reports whether a shot was added.
func (ps *PlayerShots) Accept(ev FireEvent, x float64) bool {
	if ps.hasLast && ev.At == ps.lastAt {
		return false
	}
	ps.lastAt = ev.At
	ps.hasLast = true
	ps.shots = append(ps.shots, Shot{Pos: core.Vec{X: x, Y: ps.shipY}})
	ps.fired++
	return true
}

// Resolve tests every shot against the population. A shot hits the first
// alive enemy whose box contains it: the enemy is marked dead and the shot is
// moved to the sentinel position. Every shot then moves up by shot speed.
// One ScoreEvent is returned per enemy destroyed.
func (ps *PlayerShots) Resolve(enemies []*Enemy) []ScoreEvent {
	var events []ScoreEvent
	half := ps.cfg.Geometry.CollisionHalf
	sentinel := core.Vec{X: ps.cfg.Shots.SentinelX, Y: ps.cfg.Shots.SentinelY}

	for i := range ps.shots {
		s := &ps.shots[i]
		for _, e := range enemies {
			if e.Dead || !core.Collides(s.Pos, e.Pos, half) {
				continue
			}
			e.Dead = true
			s.Pos = sentinel
			events = append(events, ScoreEvent{Points: ps.cfg.Scoring.Increment})
			break
		}
		s.Pos.Y -= ps.cfg.Shots.Speed
	}
	return events
}

// Cull drops shots outside the visible area and returns how many were dropped.
func (ps *PlayerShots) Cull() int {
	before := len(ps.shots)
	ps.shots = visibleShots(ps.shots, ps.bounds, ps.cfg.Geometry.VisibilityMargin)
	return before - len(ps.shots)
}

// Shots returns the live shots. Callers must not retain it.
func (ps *PlayerShots) Shots() []Shot {
	return ps.shots
}

// Fired returns the number of shots accepted so far.
func (ps *PlayerShots) Fired() int {
	return ps.fired
}

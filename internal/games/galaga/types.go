// Package galaga implements a vertical space shooter.
//
// The simulation is a pipeline of components advanced by recurring tasks on
// a virtual-time scheduler: the star field, the ship, the enemy population,
// the player's shots and the score are latched into one immutable Scene per
// frame. The first scene in which the ship touches an enemy or an enemy shot
// is the last one produced.
package galaga

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-galaga/internal/core"
	"github.com/vovakirdan/tui-galaga/internal/sched"
)

// Star is a background particle. Only Pos.Y changes after creation.
type Star struct {
	Pos  core.Vec
	Size float64 // also the distance moved per frame
}

// Shot is a projectile fired by the ship or by an enemy.
type Shot struct {
	Pos core.Vec
}

// Enemy is a descending ship that fires on its own timer.
// A dead enemy is no longer painted but stays in the population until its
// shots have left the screen.
type Enemy struct {
	Pos   core.Vec
	Dead  bool
	Shots []Shot

	firing *sched.Task
}

// Firing reports whether the enemy's firing task is still scheduled.
func (e *Enemy) Firing() bool {
	return e.firing.Active()
}

// ScoreEvent is produced by hit resolution for each enemy destroyed.
type ScoreEvent struct {
	Points int
}

// FireEvent is one accepted firing intent, stamped with virtual time.
type FireEvent struct {
	At time.Duration
}

// randIntn returns a value in [0, n), or 0 when n is not positive.
func randIntn(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.Intn(n)
}

// randRange returns a value in [lo, hi], both inclusive.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// visibleShots filters shots in place, keeping those inside b.
func visibleShots(shots []Shot, b core.Bounds, margin float64) []Shot {
	kept := shots[:0]
	for _, s := range shots {
		if b.Visible(s.Pos, margin) {
			kept = append(kept, s)
		}
	}
	clear(shots[len(kept):])
	return kept
}

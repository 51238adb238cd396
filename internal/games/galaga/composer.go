package galaga

import (
	"time"

	"github.com/vovakirdan/tui-galaga/internal/core"
)

// SceneEnemy is an enemy as captured in a Scene.
type SceneEnemy struct {
	Pos   core.Vec
	Dead  bool
	Shots []Shot
}

// Scene is an immutable copy of the whole game at one frame.
type Scene struct {
	Tick      uint64        // frame number, starting at 1
	At        time.Duration // virtual time of the frame
	Bounds    core.Bounds
	Stars     []Star
	Ship      core.Vec
	Enemies   []SceneEnemy
	HeroShots []Shot
	Score     int
	Over      bool // last scene of the game
}

// SceneComposer latches component state into scenes until the game ends.
type SceneComposer struct {
	bounds core.Bounds
	half   float64
	tick   uint64
	done   bool
	last   Scene
}

// NewSceneComposer creates a composer using half as the collision half-size.
func NewSceneComposer(b core.Bounds, half float64) *SceneComposer {
	return &SceneComposer{bounds: b, half: half}
}

// Compose copies the given state into a new scene. Once a scene with Over set
// has been composed, Compose returns false and produces nothing.
func (c *SceneComposer) Compose(at time.Duration, stars []Star, ship core.Vec, enemies []*Enemy, shots []Shot, score int) (Scene, bool) {
	if c.done {
		return Scene{}, false
	}
	c.tick++

	scene := Scene{
		Tick:      c.tick,
		At:        at,
		Bounds:    c.bounds,
		Stars:     append([]Star(nil), stars...),
		Ship:      ship,
		Enemies:   make([]SceneEnemy, len(enemies)),
		HeroShots: append([]Shot(nil), shots...),
		Score:     score,
	}
	for i, e := range enemies {
		scene.Enemies[i] = SceneEnemy{
			Pos:   e.Pos,
			Dead:  e.Dead,
			Shots: append([]Shot(nil), e.Shots...),
		}
	}

	scene.Over = GameOver(ship, enemies, c.half)
	c.done = scene.Over
	c.last = scene
	return scene, true
}

// Done reports whether the final scene has been composed.
func (c *SceneComposer) Done() bool {
	return c.done
}

// Last returns the most recent scene.
func (c *SceneComposer) Last() Scene {
	return c.last
}

// GameOver reports whether the ship collides with any enemy or any enemy
// shot. Dead enemies are included.
func GameOver(ship core.Vec, enemies []*Enemy, half float64) bool {
	for _, e := range enemies {
		if core.Collides(ship, e.Pos, half) {
			return true
		}
		for _, s := range e.Shots {
			if core.Collides(ship, s.Pos, half) {
				return true
			}
		}
	}
	return false
}

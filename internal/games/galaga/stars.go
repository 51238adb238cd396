package galaga

import (
	"math/rand"

	"github.com/vovakirdan/tui-galaga/internal/core"
)

// StarField is a fixed population of stars scrolling down the screen.
// Larger stars move faster.
type StarField struct {
	stars  []Star
	height float64
}

// NewStarField places count stars at random integer positions inside b,
// each with a size in [1, 2).
func NewStarField(rng *rand.Rand, count int, b core.Bounds) *StarField {
	stars := make([]Star, count)
	for i := range stars {
		stars[i] = Star{
			Pos: core.Vec{
				X: float64(randIntn(rng, int(b.W))),
				Y: float64(randIntn(rng, int(b.H))),
			},
			Size: 1 + rng.Float64(),
		}
	}
	return &StarField{stars: stars, height: b.H}
}

// Tick moves every star down by its size. A star that reaches the bottom
// edge wraps to the top, so 0 <= y < height always holds afterwards.
func (f *StarField) Tick() {
	for i := range f.stars {
		s := &f.stars[i]
		if s.Pos.Y >= f.height {
			s.Pos.Y = 0
			continue
		}
		s.Pos.Y += s.Size
		if s.Pos.Y >= f.height {
			s.Pos.Y = 0
		}
	}
}

// Stars returns the star collection. Callers must not modify it.
func (f *StarField) Stars() []Star {
	return f.stars
}

// Len returns the number of stars.
func (f *StarField) Len() int {
	return len(f.stars)
}

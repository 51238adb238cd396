package galaga

import "github.com/vovakirdan/tui-galaga/internal/core"

// Ship follows the pointer horizontally at a fixed height.
type Ship struct {
	pos core.Vec
}

// NewShip places the ship at the horizontal center, bottomOffset above the
// bottom edge.
func NewShip(b core.Bounds, bottomOffset float64) *Ship {
	return &Ship{pos: core.Vec{X: b.W / 2, Y: b.H - bottomOffset}}
}

// Track records the latest pointer x. Non-finite values are ignored;
// anything else is taken as is.
func (s *Ship) Track(x float64) {
	if !(core.Vec{X: x}).Finite() {
		return
	}
	s.pos.X = x
}

// Pos returns the ship position.
func (s *Ship) Pos() core.Vec {
	return s.pos
}

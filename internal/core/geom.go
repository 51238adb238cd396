// Package core provides fundamental types and utilities shared by the game
// and the platform layer. It has no Bubble Tea dependency so that simulation
// code stays pure and testable.
package core

import "math"

// Vec is a point in logical canvas coordinates.
type Vec struct {
	X, Y float64
}

// Finite reports whether both components are real numbers.
func (v Vec) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Bounds is the logical drawing area. Both the visibility and the collision
// predicates are expressed against it or against box half-sizes.
type Bounds struct {
	W, H float64
}

// Visible returns true if p lies inside the bounds grown by margin on every
// side. The comparison is strict, so a point exactly on the grown edge is
// off-screen.
func (b Bounds) Visible(p Vec, margin float64) bool {
	return p.X > -margin && p.X < b.W+margin &&
		p.Y > -margin && p.Y < b.H+margin
}

// Collides reports whether a lies strictly inside the box of half-size half
// centered on b. The test is symmetric: Collides(a, b, h) == Collides(b, a, h).
func Collides(a, b Vec, half float64) bool {
	return a.X > b.X-half && a.X < b.X+half &&
		a.Y > b.Y-half && a.Y < b.Y+half
}

// Rect represents an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

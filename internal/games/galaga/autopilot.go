package galaga

import "math"

// Autopilot picks a pointer x for a headless run: it steers under the lowest
// alive enemy and always wants to fire. With no enemy in sight it returns to
// the center.
func Autopilot(scene Scene) (x float64, fire bool) {
	x = scene.Bounds.W / 2
	lowest := math.Inf(-1)
	for _, e := range scene.Enemies {
		if e.Dead || e.Pos.Y >= scene.Ship.Y {
			continue
		}
		if e.Pos.Y > lowest {
			lowest = e.Pos.Y
			x = e.Pos.X
		}
	}
	return x, true
}

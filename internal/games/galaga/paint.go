package galaga

import (
	"fmt"

	"github.com/vovakirdan/tui-galaga/internal/core"
)

// Surface is the drawing target a Scene is painted onto.
// Coordinates are logical canvas units.
type Surface interface {
	FillRect(x, y, w, h float64, c core.Color)
	FillCircle(center core.Vec, r float64, c core.Color)
	FillTriangle(a, b, d core.Vec, c core.Color)
	DrawText(p core.Vec, text string, c core.Color)
}

// Shape sizes and colors.
const (
	ShipWidth  = 20
	EnemyWidth = 20
	ShotWidth  = 5

	ShipColor      = core.ColorGreen
	EnemyColor     = core.ColorRed
	EnemyShotColor = core.ColorCyan
	HeroShotColor  = core.ColorYellow
	StarColor      = core.ColorWhite
	ScoreColor     = core.ColorWhite
)

// ScorePos is where the score text is drawn.
var ScorePos = core.Vec{X: 40, Y: 43}

// Direction is where a triangle's apex points.
type Direction int

const (
	Up Direction = iota
	Down
)

// Triangle draws a triangle whose base is centered on p with half-width
// width and whose apex is width away in dir.
func Triangle(s Surface, p core.Vec, width float64, dir Direction, c core.Color) {
	apex := core.Vec{X: p.X, Y: p.Y - width}
	if dir == Down {
		apex.Y = p.Y + width
	}
	s.FillTriangle(
		core.Vec{X: p.X - width, Y: p.Y},
		apex,
		core.Vec{X: p.X + width, Y: p.Y},
		c,
	)
}

// Paint draws scene onto s. Dead enemies are skipped but their shots are
// still drawn. The score goes on top.
func Paint(s Surface, scene Scene) {
	s.FillRect(0, 0, scene.Bounds.W, scene.Bounds.H, core.ColorBlack)

	for _, star := range scene.Stars {
		s.FillCircle(star.Pos, star.Size, StarColor)
	}

	Triangle(s, scene.Ship, ShipWidth, Up, ShipColor)

	for _, e := range scene.Enemies {
		if !e.Dead {
			Triangle(s, e.Pos, EnemyWidth, Down, EnemyColor)
		}
		for _, shot := range e.Shots {
			Triangle(s, shot.Pos, ShotWidth, Down, EnemyShotColor)
		}
	}

	for _, shot := range scene.HeroShots {
		Triangle(s, shot.Pos, ShotWidth, Up, HeroShotColor)
	}

	s.DrawText(ScorePos, fmt.Sprintf("Score: %d", scene.Score), ScoreColor)
}

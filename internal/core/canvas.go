package core

import (
	"fmt"
	"math"
	"sort"
)

// Glyphs used when rasterizing shapes into cells.
const (
	GlyphFill      = '█'
	GlyphDot       = '·'
	GlyphBigDot    = '•'
	GlyphArrowUp   = '▲'
	GlyphArrowDown = '▼'
)

// Canvas rasterizes logical drawing calls into a Screen.
// Logical coordinates are scaled to cells; a shape is filled where it covers
// a cell center. Shapes smaller than a cell still leave a mark in the cell
// containing them.
type Canvas struct {
	screen  *Screen
	logical Bounds
	scaleX  float64 // cells per logical unit, horizontally
	scaleY  float64 // cells per logical unit, vertically

	intersectionBuf []float64
}

// NewCanvas creates a canvas drawing into screen with the given logical size.
func NewCanvas(screen *Screen, logical Bounds) (*Canvas, error) {
	if screen == nil || screen.Width() <= 0 || screen.Height() <= 0 {
		return nil, fmt.Errorf("canvas: no drawable screen: %w", ErrResourceUnavailable)
	}
	if logical.W <= 0 || logical.H <= 0 {
		return nil, fmt.Errorf("canvas: logical size %.0fx%.0f: %w", logical.W, logical.H, ErrResourceUnavailable)
	}
	return &Canvas{
		screen:  screen,
		logical: logical,
		scaleX:  float64(screen.Width()) / logical.W,
		scaleY:  float64(screen.Height()) / logical.H,
	}, nil
}

// Screen returns the underlying cell buffer.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

// Bounds returns the logical canvas size.
func (c *Canvas) Bounds() Bounds {
	return c.logical
}

// Cell maps a logical point to the cell containing it.
func (c *Canvas) Cell(p Vec) (int, int) {
	return int(math.Floor(p.X * c.scaleX)), int(math.Floor(p.Y * c.scaleY))
}

// cellCenter maps a cell back to the logical coordinates of its center.
func (c *Canvas) cellCenter(col, row int) Vec {
	return Vec{X: (float64(col) + 0.5) / c.scaleX, Y: (float64(row) + 0.5) / c.scaleY}
}

// FillRect fills the logical rectangle. Black and default clear the cells.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	fill := Cell{Rune: GlyphFill, Color: col}
	if col == ColorBlack || col == ColorDefault {
		fill = blankCell
	}
	x0, y0 := c.Cell(Vec{X: x, Y: y})
	x1 := int(math.Ceil((x + w) * c.scaleX))
	y1 := int(math.Ceil((y + h) * c.scaleY))
	c.screen.DrawRect(NewRect(x0, y0, x1-x0, y1-y0), fill)
}

// FillCircle fills a circle of radius r centered on p.
func (c *Canvas) FillCircle(p Vec, r float64, col Color) {
	x0, y0 := c.Cell(Vec{X: p.X - r, Y: p.Y - r})
	x1, y1 := c.Cell(Vec{X: p.X + r, Y: p.Y + r})

	filled := false
	for row := y0; row <= y1; row++ {
		for cx := x0; cx <= x1; cx++ {
			center := c.cellCenter(cx, row)
			dx, dy := center.X-p.X, center.Y-p.Y
			if dx*dx+dy*dy <= r*r {
				c.screen.SetCell(cx, row, Cell{Rune: GlyphFill, Color: col})
				filled = true
			}
		}
	}

	if !filled {
		glyph := GlyphDot
		if r >= 1.5 {
			glyph = GlyphBigDot
		}
		cx, cy := c.Cell(p)
		c.screen.SetCell(cx, cy, Cell{Rune: glyph, Color: col})
	}
}

// FillTriangle fills the triangle a-b-c using a scanline pass over cell rows.
func (c *Canvas) FillTriangle(a, b, d Vec, col Color) {
	pts := [3]Vec{a, b, d}

	minY, maxY := a.Y, a.Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	_, rowStart := c.Cell(Vec{Y: minY})
	_, rowEnd := c.Cell(Vec{Y: maxY})

	filled := false
	for row := rowStart; row <= rowEnd; row++ {
		scanY := c.cellCenter(0, row).Y

		xs := c.intersectionBuf[:0]
		for i := range pts {
			p1, p2 := pts[i], pts[(i+1)%3]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = xs
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			colStart := int(math.Ceil(xs[i]*c.scaleX - 0.5))
			colEnd := int(math.Floor(xs[i+1]*c.scaleX - 0.5))
			for cx := colStart; cx <= colEnd; cx++ {
				c.screen.SetCell(cx, row, Cell{Rune: GlyphFill, Color: col})
				filled = true
			}
		}
	}

	if !filled {
		centroid := Vec{X: (a.X + b.X + d.X) / 3, Y: (a.Y + b.Y + d.Y) / 3}
		above := 0
		for _, p := range pts {
			if p.Y < centroid.Y {
				above++
			}
		}
		glyph := GlyphArrowDown
		if above == 1 {
			glyph = GlyphArrowUp
		}
		cx, cy := c.Cell(centroid)
		c.screen.SetCell(cx, cy, Cell{Rune: glyph, Color: col})
	}
}

// DrawText writes text starting at the cell containing p.
func (c *Canvas) DrawText(p Vec, text string, col Color) {
	x, y := c.Cell(p)
	c.screen.DrawText(x, y, text, col)
}

package core

// Color is the foreground color of a screen cell.
// Values map to ANSI colors in the platform renderer.
type Color uint8

// Colors used by the scene painter.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorWhite
	ColorGreen
	ColorRed
	ColorCyan
	ColorYellow
	ColorGray
)

// String returns the color name, used in screenshots and test failures.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorBlack:
		return "black"
	case ColorWhite:
		return "white"
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorCyan:
		return "cyan"
	case ColorYellow:
		return "yellow"
	case ColorGray:
		return "gray"
	default:
		return "unknown"
	}
}

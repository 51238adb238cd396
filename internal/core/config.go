package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The platform derives it from the terminal and the logical cell size.
type RuntimeConfig struct {
	ScreenW int     // Screen width in characters
	ScreenH int     // Screen height in characters
	CanvasW float64 // Logical canvas width
	CanvasH float64 // Logical canvas height
	Seed    int64   // RNG seed for deterministic gameplay
}

// NewRuntimeConfig builds a runtime config whose logical canvas is the
// screen measured in cells of cellW x cellH logical units.
func NewRuntimeConfig(screenW, screenH int, cellW, cellH float64, seed int64) RuntimeConfig {
	return RuntimeConfig{
		ScreenW: screenW,
		ScreenH: screenH,
		CanvasW: float64(screenW) * cellW,
		CanvasH: float64(screenH) * cellH,
		Seed:    seed,
	}
}

// Bounds returns the logical canvas bounds.
func (c RuntimeConfig) Bounds() Bounds {
	return Bounds{W: c.CanvasW, H: c.CanvasH}
}

// GameState is the summary the platform needs after every step.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State  GameState
	Frames int // Scenes delivered during this step
}

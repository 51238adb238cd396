package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaga/internal/config"
	"github.com/vovakirdan/tui-galaga/internal/core"
	"github.com/vovakirdan/tui-galaga/internal/games/galaga"
)

// helpHeight is the number of rows reserved below the playfield.
const helpHeight = 1

// nudgeCells is how far the left/right keys move the pointer.
const nudgeCells = 2

// Options configures a game Model.
type Options struct {
	Config config.GalagaConfig
	Seed   int64       // 0 picks a time-based seed
	Logger *log.Logger // nil discards
	Trace  *RunTrace   // nil disables run recording

	// ScreenshotDir is where ctrl+s writes the screen. Empty means
	// ~/.galaga/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for the game.
type Model struct {
	opts    Options
	game    *galaga.Game
	screen  *core.Screen
	canvas  *core.Canvas
	runtime core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	log     *log.Logger

	input    core.InputFrame
	pointerX float64
	state    core.GameState
	lastTick time.Time
	quitting bool
}

// NewModel creates a model for a terminal of width x height cells.
func NewModel(opts Options, width, height int) (Model, error) {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		opts:  opts,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		log:   logger,
		input: core.NewInputFrame(),
	}
	if err := m.start(width, height, opts.Seed); err != nil {
		return Model{}, err
	}
	m.help.Width = width
	return m, nil
}

// start (re)creates the screen, canvas and game for the given size and seed.
func (m *Model) start(width, height int, seed int64) error {
	playH := height - helpHeight
	if width <= 0 || playH <= 0 {
		return fmt.Errorf("tui: terminal %dx%d too small: %w", width, height, core.ErrResourceUnavailable)
	}

	geo := m.opts.Config.Geometry
	m.runtime = core.NewRuntimeConfig(width, playH, geo.CellWidth, geo.CellHeight, seed)

	if m.screen == nil {
		m.screen = core.NewScreen(width, playH)
	} else {
		m.screen.Resize(width, playH)
	}
	canvas, err := core.NewCanvas(m.screen, m.runtime.Bounds())
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	m.canvas = canvas

	m.opts.Trace.Begin(seed, m.runtime.CanvasW, m.runtime.CanvasH)

	if m.game == nil {
		game, err := galaga.New(m.opts.Config, m.runtime,
			galaga.WithLogger(m.log),
			galaga.WithSink(m.opts.Trace.Record),
		)
		if err != nil {
			return err
		}
		m.game = game
	} else if err := m.game.Reset(m.runtime); err != nil {
		return err
	}

	m.pointerX = m.runtime.CanvasW / 2
	m.state = m.game.State()
	m.keys.Restart.SetEnabled(false)
	m.lastTick = time.Time{}
	m.input.Clear()
	return nil
}

// finishTrace closes the current run record, if any.
func (m Model) finishTrace() {
	if err := m.opts.Trace.Finish(); err != nil {
		m.log.Warn("run trace finish failed", "error", err)
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Config.Timing.FramePeriod)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	cellW := m.opts.Config.Geometry.CellWidth
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		m.finishTrace()
		return m, tea.Quit
	case core.ActionFire:
		m.input.Set(core.ActionFire)
	case core.ActionLeft:
		m.movePointer(m.pointerX - nudgeCells*cellW)
	case core.ActionRight:
		m.movePointer(m.pointerX + nudgeCells*cellW)
	case core.ActionRestart:
		if m.state.GameOver {
			if err := m.start(m.screen.Width(), m.screen.Height()+helpHeight, time.Now().UnixNano()); err != nil {
				m.log.Error("restart failed", "error", err)
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// handleMouse maps pointer motion to the ship and left clicks to fire.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	cellW := m.opts.Config.Geometry.CellWidth
	m.movePointer((float64(msg.X) + 0.5) * cellW)

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.input.Set(core.ActionFire)
	}
	return m, nil
}

// movePointer records a pointer x clamped to the canvas.
func (m *Model) movePointer(x float64) {
	if !(core.Vec{X: x}).Finite() {
		return
	}
	m.pointerX = core.ClampF(x, 0, m.runtime.CanvasW)
	m.input.SetPointer(m.pointerX)
}

// handleResize restarts the run on the new canvas. The logical canvas follows
// the terminal, so a run cannot continue across a size change.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.screen.Width() && msg.Height-helpHeight == m.screen.Height() {
		return m, nil
	}
	m.log.Debug("terminal resized", "width", msg.Width, "height", msg.Height)
	if err := m.start(msg.Width, msg.Height, m.runtime.Seed); err != nil {
		m.log.Error("resize failed", "error", err)
		m.quitting = true
		return m, tea.Quit
	}
	m.help.Width = msg.Width
	return m, nil
}

// handleFrame advances the game clock by the real time elapsed.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	period := m.opts.Config.Timing.FramePeriod
	dt := frameDelta(m.lastTick, now, period)
	m.lastTick = now

	if !m.state.GameOver {
		result := m.game.Step(m.input, dt)
		m.state = result.State
		if m.state.GameOver {
			m.keys.Restart.SetEnabled(true)
		}
	}
	m.input.Clear()

	return m, tickCmd(period)
}

// State returns the current game state.
func (m Model) State() core.GameState {
	return m.state
}

// draw paints the latest scene and overlays into the screen buffer.
func (m Model) draw() {
	scene := m.game.Scene()
	if scene.Tick == 0 {
		m.screen.Clear()
		return
	}
	galaga.Paint(m.canvas, scene)

	if m.state.GameOver {
		drawGameOver(m.screen, m.state.Score)
	}
}

// drawGameOver draws a centered box with the final score.
func drawGameOver(s *core.Screen, score int) {
	lines := []string{"GAME OVER", fmt.Sprintf("Score: %d", score), "r restart · q quit"}
	w, h := 24, len(lines)+2
	r := core.NewRect((s.Width()-w)/2, (s.Height()-h)/2, w, h)

	s.DrawRect(r, core.Cell{Rune: ' ', Color: core.ColorDefault})
	s.DrawBox(r, core.ColorWhite)
	for i, line := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorRed
		}
		s.DrawTextCentered(r.Y+1+i, line, color)
	}
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	m.draw()

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.log.Warn("screenshot skipped", "error", err)
			return
		}
		dir = filepath.Join(home, ".galaga", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("galaga_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot failed", "error", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program on the local terminal.
func Run(opts Options, width, height int) error {
	model, err := NewModel(opts, width, height)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err = p.Run()
	model.finishTrace()
	return err
}

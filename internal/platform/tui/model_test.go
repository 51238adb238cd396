package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaga/internal/config"
	"github.com/vovakirdan/tui-galaga/internal/core"
	"github.com/vovakirdan/tui-galaga/internal/games/galaga"
	"github.com/vovakirdan/tui-galaga/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	// 80x30 playfield plus the help row: an 800x600 logical canvas.
	m, err := NewModel(Options{Config: config.DefaultGalagaConfig(), Seed: 1}, 80, 31)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestNewModelTooSmall(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero", 0, 0},
		{"help only", 80, 1},
		{"no columns", 0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModel(Options{Config: config.DefaultGalagaConfig()}, tt.width, tt.height)
			if !errors.Is(err, core.ErrResourceUnavailable) {
				t.Errorf("NewModel(%d, %d) error = %v, expected ErrResourceUnavailable", tt.width, tt.height, err)
			}
		})
	}
}

func TestFrameDelta(t *testing.T) {
	base := time.Unix(100, 0)
	fallback := 40 * time.Millisecond

	tests := []struct {
		name string
		last time.Time
		now  time.Time
		want time.Duration
	}{
		{"first frame", time.Time{}, base, fallback},
		{"normal", base, base.Add(35 * time.Millisecond), 35 * time.Millisecond},
		{"clock went back", base, base.Add(-time.Second), fallback},
		{"long pause", base, base.Add(5 * time.Second), fallback},
	}

	for _, tt := range tests {
		if got := frameDelta(tt.last, tt.now, fallback); got != tt.want {
			t.Errorf("%s: frameDelta() = %v, expected %v", tt.name, got, tt.want)
		}
	}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.ActionNone}, // disabled until game over
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.MapKey(tt.msg); got != tt.want {
			t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}

	keys.Restart.SetEnabled(true)
	if got := keys.MapKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}); got != core.ActionRestart {
		t.Errorf("MapKey(r) with restart enabled = %v, expected Restart", got)
	}
}

func TestModelMousePointer(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		x    int
		want float64
	}{
		{0, 5},
		{10, 105},
		{79, 795},
		{200, 800}, // clamped to the canvas
	}

	for _, tt := range tests {
		m, _ = update(t, m, tea.MouseMsg{X: tt.x, Y: 5, Action: tea.MouseActionMotion})
		if m.pointerX != tt.want {
			t.Errorf("mouse at column %d: pointer = %v, expected %v", tt.x, m.pointerX, tt.want)
		}
	}

	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.input.Has(core.ActionFire) {
		t.Error("left click should fire")
	}
}

func TestModelNudge(t *testing.T) {
	m := newTestModel(t)
	start := m.pointerX

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.pointerX != start-20 {
		t.Errorf("left: pointer = %v, expected %v", m.pointerX, start-20)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.pointerX != start+20 {
		t.Errorf("right: pointer = %v, expected %v", m.pointerX, start+20)
	}
}

func TestModelFrame(t *testing.T) {
	m := newTestModel(t)

	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() should start the frame loop")
	}

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
	m, cmd := update(t, m, FrameMsg(time.Now()))
	if cmd == nil {
		t.Error("frame should schedule the next frame")
	}
	if m.game.Scene().Tick != 1 {
		t.Errorf("after first frame Tick = %d, expected 1", m.game.Scene().Tick)
	}
	if x := m.game.Scene().Ship.X; x != 105 {
		t.Errorf("ship x = %v, expected 105", x)
	}
	if _, ok := m.input.Pointer(); ok {
		t.Error("input should be cleared after a frame")
	}

	view := m.View()
	if !strings.Contains(view, "Score: 0") {
		t.Error("view should contain the score")
	}
	if lines := strings.Count(view, "\n") + 1; lines != 31 {
		t.Errorf("view has %d lines, expected 31", lines)
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 41})
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 100x40", m.screen.Width(), m.screen.Height())
	}
	if b := m.game.Bounds(); b.W != 1000 || b.H != 800 {
		t.Errorf("game bounds = %vx%v, expected 1000x800", b.W, b.H)
	}
	if m.pointerX != 500 {
		t.Errorf("pointer = %v, expected centre 500", m.pointerX)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m, err := NewModel(Options{Config: config.DefaultGalagaConfig(), Seed: 1, ScreenshotDir: dir}, 40, 11)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	m, _ = update(t, m, FrameMsg(time.Now()))
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 screenshot, got %d", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "Score: 0") {
		t.Errorf("screenshot should contain the score, got:\n%s", data)
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorGreen)
	s.DrawText(0, 1, "xyz", core.ColorDefault)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q in %q", want, out)
		}
	}
}

func TestSessionTraceFinishedWithoutQuit(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "trace.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	defer store.Close()

	trace := NewRunTrace(store, nil)
	m, err := NewModel(Options{Config: config.DefaultGalagaConfig(), Seed: 1, Trace: trace}, 80, 31)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	runID := trace.RunID()
	if runID == 0 {
		t.Fatal("NewModel() should begin a traced run")
	}

	start := time.Now()
	for i := range 10 {
		m, _ = update(t, m, FrameMsg(start.Add(time.Duration(i)*40*time.Millisecond)))
	}
	if m.State().GameOver {
		t.Fatal("game should still be running")
	}

	frames, _ := store.Frames(runID)
	if len(frames) != 0 {
		t.Fatalf("%d frames written before the session ended, expected them buffered", len(frames))
	}

	// The connection drops: the program exits without a quit key, and the
	// server finishes the session's trace.
	srv := &SSHServer{logger: log.New(io.Discard)}
	ctx := context.WithValue(context.Background(), runTraceKey{}, trace)
	srv.finishSessionTrace(ctx)

	frames, err = store.Frames(runID)
	if err != nil {
		t.Fatalf("Frames() error = %v", err)
	}
	if len(frames) != 10 {
		t.Errorf("%d frames written after the session ended, expected 10", len(frames))
	}
	runs, err := store.Runs(1)
	if err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if runs[0].ID != runID || runs[0].Frames != 10 || runs[0].Over || runs[0].FinishedAt.IsZero() {
		t.Errorf("run = %+v, expected a finished run of 10 frames", runs[0])
	}

	// Finishing again is a no-op.
	srv.finishSessionTrace(ctx)
	if err := trace.Finish(); err != nil {
		t.Errorf("second Finish() error = %v", err)
	}
}

func TestRunTraceNil(t *testing.T) {
	var trace *RunTrace
	if got := NewRunTrace(nil, nil); got != nil {
		t.Errorf("NewRunTrace(nil) = %v, expected nil", got)
	}
	trace.Begin(1, 800, 600)
	trace.Record(galaga.Scene{Tick: 1})
	if trace.RunID() != 0 || trace.Finish() != nil {
		t.Error("nil trace should record nothing")
	}
}

package galaga

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-galaga/internal/config"
	"github.com/vovakirdan/tui-galaga/internal/core"
)

func TestNewGameUnavailable(t *testing.T) {
	_, err := New(config.DefaultGalagaConfig(), core.RuntimeConfig{Seed: 1})
	if !errors.Is(err, core.ErrResourceUnavailable) {
		t.Errorf("New() with empty canvas error = %v, expected ErrResourceUnavailable", err)
	}
}

func TestNewGameInvalidConfig(t *testing.T) {
	cfg := config.DefaultGalagaConfig()
	cfg.Timing.FramePeriod = 0
	if _, err := New(cfg, testRuntime(1)); err == nil {
		t.Error("New() with zero frame period should fail")
	}
}

func TestGameInitialState(t *testing.T) {
	g, scenes := newTestGame(t, config.DefaultGalagaConfig(), 1)

	if g.Bounds() != testBounds {
		t.Errorf("Bounds() = %v, expected %v", g.Bounds(), testBounds)
	}
	if st := g.State(); st.Score != 0 || st.GameOver {
		t.Errorf("State() = %+v, expected zero score and running", st)
	}
	if len(*scenes) != 0 {
		t.Errorf("no scene should exist before the first frame, got %d", len(*scenes))
	}
	// frame, spawn and fire sampling
	if st := g.Stats(); st.ActiveTasks != 3 {
		t.Errorf("ActiveTasks = %d, expected 3", st.ActiveTasks)
	}
}

func TestGameFrameCadence(t *testing.T) {
	g, scenes := newTestGame(t, config.DefaultGalagaConfig(), 1)

	if n := g.Advance(39 * time.Millisecond); n != 0 {
		t.Errorf("Advance(39ms) delivered %d scenes, expected 0", n)
	}
	if n := g.Advance(time.Millisecond); n != 1 {
		t.Errorf("Advance(1ms) delivered %d scenes, expected 1", n)
	}
	if n := g.Advance(400 * time.Millisecond); n != 10 {
		t.Errorf("Advance(400ms) delivered %d scenes, expected 10", n)
	}
	last := (*scenes)[len(*scenes)-1]
	if last.Tick != 11 || last.At != 440*time.Millisecond {
		t.Errorf("last scene tick %d at %v, expected 11 at 440ms", last.Tick, last.At)
	}
	if g.Scene().Tick != last.Tick {
		t.Errorf("Scene() tick = %d, expected %d", g.Scene().Tick, last.Tick)
	}
}

func TestGameShotHitsEnemyOnce(t *testing.T) {
	cfg := config.DefaultGalagaConfig()
	cfg.Enemies.Jitter = 0
	cfg.Timing.EnemySpawnPeriod = time.Hour
	g, scenes := newTestGame(t, cfg, 1)

	g.MovePointer(100)
	if err := g.enemies.SpawnAt(core.Vec{X: 100, Y: -30}); err != nil {
		t.Fatalf("SpawnAt() error = %v", err)
	}

	// The first shot leaves at 200ms and meets the enemy at 1360ms.
	g.Advance(1320 * time.Millisecond)
	if st := g.State(); st.Score != 0 {
		t.Fatalf("score = %d before contact, expected 0", st.Score)
	}
	g.Advance(40 * time.Millisecond)
	if st := g.State(); st.Score != cfg.Scoring.Increment || st.GameOver {
		t.Fatalf("State() = %+v, expected score %d", st, cfg.Scoring.Increment)
	}
	e := g.enemies.Enemies()[0]
	if !e.Dead {
		t.Fatal("enemy should be dead")
	}

	// Keep firing; the dead enemy stays around for its in-flight shot and
	// is never scored again.
	for g.Now() < 2000*time.Millisecond {
		g.Fire()
		g.Advance(40 * time.Millisecond)
	}
	if st := g.State(); st.Score != cfg.Scoring.Increment || st.GameOver {
		t.Errorf("State() = %+v after more frames, expected score %d", st, cfg.Scoring.Increment)
	}
	if g.Stats().Kills != 1 {
		t.Errorf("Kills = %d, expected 1", g.Stats().Kills)
	}
	if g.enemies.Len() != 1 || len(e.Shots) != 1 {
		t.Errorf("dead enemy with a shot in flight should be kept, population %d", g.enemies.Len())
	}

	prev := 0
	for _, s := range *scenes {
		if s.Score < prev {
			t.Fatalf("score decreased at tick %d", s.Tick)
		}
		prev = s.Score
	}
}

func TestGameOverOnContact(t *testing.T) {
	g, scenes := newTestGame(t, config.DefaultGalagaConfig(), 1)
	ship := g.ship.Pos()
	g.enemies.SpawnAt(ship)

	if n := g.Advance(40 * time.Millisecond); n != 1 {
		t.Fatalf("Advance() delivered %d scenes, expected 1", n)
	}
	last := (*scenes)[0]
	if !last.Over || !g.State().GameOver {
		t.Fatal("first scene with the enemy on the ship should end the game")
	}

	if n := g.Advance(10 * time.Second); n != 0 {
		t.Errorf("Advance() after game over delivered %d scenes", n)
	}
	if len(*scenes) != 1 {
		t.Errorf("got %d scenes, expected exactly 1", len(*scenes))
	}
	if st := g.Stats(); st.ActiveTasks != 0 {
		t.Errorf("ActiveTasks = %d after game over, expected 0", st.ActiveTasks)
	}
	for _, e := range g.enemies.Enemies() {
		if e.Firing() {
			t.Error("enemy firing task survived game over")
		}
	}
}

func TestGameFireRateLimit(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultGalagaConfig(), 1)

	g.Advance(200 * time.Millisecond)
	if n := g.Stats().ShotsFired; n != 1 {
		t.Fatalf("ShotsFired = %d after the first window, expected 1", n)
	}

	for i := 0; i < 5; i++ {
		in := core.NewInputFrame()
		in.Set(core.ActionFire)
		g.Step(in, 30*time.Millisecond)
	}
	g.Advance(50 * time.Millisecond)
	if n := g.Stats().ShotsFired; n != 2 {
		t.Errorf("ShotsFired = %d after 5 intents in one window, expected 2", n)
	}
}

func TestGameStepPointer(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultGalagaConfig(), 1)

	in := core.NewInputFrame()
	in.SetPointer(123)
	res := g.Step(in, 40*time.Millisecond)

	if g.Scene().Ship.X != 123 {
		t.Errorf("ship x = %f, expected 123", g.Scene().Ship.X)
	}
	if res.Frames != 1 || res.State != g.State() {
		t.Errorf("Step() = %+v", res)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() []Scene {
		g, scenes := newTestGame(t, config.DefaultGalagaConfig(), 12345)
		for i := 0; i < 500 && !g.State().GameOver; i++ {
			in := core.NewInputFrame()
			x, fire := Autopilot(g.Scene())
			in.SetPointer(x)
			if fire {
				in.Set(core.ActionFire)
			}
			g.Step(in, 40*time.Millisecond)
		}
		return *scenes
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("Determinism failed: %d vs %d scenes", len(a), len(b))
	}
	for i := range a {
		if a[i].Score != b[i].Score || a[i].Ship != b[i].Ship || len(a[i].Enemies) != len(b[i].Enemies) {
			t.Fatalf("Determinism failed at scene %d", i)
		}
		for j := range a[i].Enemies {
			if a[i].Enemies[j].Pos != b[i].Enemies[j].Pos {
				t.Fatalf("Determinism failed: scene %d enemy %d", i, j)
			}
		}
	}
}

func TestGameProperties(t *testing.T) {
	cfg := config.DefaultGalagaConfig()

	for seed := int64(1); seed <= 5; seed++ {
		g, scenes := newTestGame(t, cfg, seed)

		for i := 0; i < 1500; i++ {
			in := core.NewInputFrame()
			x, fire := Autopilot(g.Scene())
			in.SetPointer(x)
			if fire {
				in.Set(core.ActionFire)
			}
			g.Step(in, 40*time.Millisecond)

			st := g.Stats()
			if st.Population != st.Spawned-st.Removed {
				t.Fatalf("seed %d: population %d != spawned %d - removed %d", seed, st.Population, st.Spawned, st.Removed)
			}
			if !g.State().GameOver && st.ActiveTasks != 3+st.Population {
				t.Fatalf("seed %d: %d tasks for %d enemies", seed, st.ActiveTasks, st.Population)
			}
		}

		prev := 0
		for i, s := range *scenes {
			if s.Score < prev {
				t.Fatalf("seed %d: score decreased at scene %d", seed, i)
			}
			prev = s.Score
			if s.Over && i != len(*scenes)-1 {
				t.Fatalf("seed %d: scene delivered after game over", seed)
			}
			for _, star := range s.Stars {
				if star.Pos.Y < 0 || star.Pos.Y >= s.Bounds.H {
					t.Fatalf("seed %d: star outside canvas", seed)
				}
			}
		}
		if g.State().Score != cfg.Scoring.Increment*g.Stats().Kills {
			t.Errorf("seed %d: score %d for %d kills", seed, g.State().Score, g.Stats().Kills)
		}
	}
}

func TestGameReset(t *testing.T) {
	g, scenes := newTestGame(t, config.DefaultGalagaConfig(), 1)
	g.enemies.SpawnAt(g.ship.Pos())
	g.Advance(40 * time.Millisecond)
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	if err := g.Reset(testRuntime(2)); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if st := g.State(); st.GameOver || st.Score != 0 {
		t.Errorf("State() after Reset = %+v", st)
	}
	if n := g.Advance(40 * time.Millisecond); n != 1 {
		t.Errorf("Advance() after Reset delivered %d scenes, expected 1", n)
	}
	if (*scenes)[len(*scenes)-1].Tick != 1 {
		t.Error("tick should restart at 1")
	}
}

package storage

import (
	"fmt"

	"github.com/vovakirdan/tui-galaga/internal/games/galaga"
)

// flushEvery is how many frames are buffered before a write.
const flushEvery = 64

// Recorder writes the scenes of one run to a Store.
type Recorder struct {
	store   *Store
	runID   int64
	pending []FrameRecord
	last    galaga.Scene
	done    bool
}

// NewRecorder starts a run in store.
func NewRecorder(store *Store, seed int64, canvasW, canvasH float64) (*Recorder, error) {
	id, err := store.BeginRun(seed, canvasW, canvasH)
	if err != nil {
		return nil, err
	}
	return &Recorder{
		store:   store,
		runID:   id,
		pending: make([]FrameRecord, 0, flushEvery),
	}, nil
}

// RunID returns the ID of the run being recorded.
func (r *Recorder) RunID() int64 {
	return r.runID
}

// Record buffers a scene, writing the buffer when it is full. The final
// scene of a game ends the run.
func (r *Recorder) Record(scene galaga.Scene) error {
	if r.done {
		return nil
	}
	r.pending = append(r.pending, FrameFromScene(scene))
	r.last = scene
	if scene.Over {
		return r.Finish()
	}
	if len(r.pending) >= flushEvery {
		return r.flush()
	}
	return nil
}

// Finish writes buffered frames and the run result. After it succeeds,
// calling it again is a no-op; after a failure, calling it again retries.
func (r *Recorder) Finish() error {
	if r.done {
		return nil
	}
	if err := r.flush(); err != nil {
		return err
	}
	if err := r.store.EndRun(r.runID, r.last.Score, r.last.Tick, r.last.Over); err != nil {
		return fmt.Errorf("storage: finish run %d: %w", r.runID, err)
	}
	r.done = true
	return nil
}

// flush writes the buffered frames. They stay buffered if the write fails.
func (r *Recorder) flush() error {
	if len(r.pending) == 0 {
		return nil
	}
	if err := r.store.RecordFrames(r.runID, r.pending); err != nil {
		return err
	}
	r.pending = r.pending[:0]
	return nil
}

// FrameFromScene summarizes a scene for storage.
func FrameFromScene(s galaga.Scene) FrameRecord {
	f := FrameRecord{
		Tick:      s.Tick,
		At:        s.At,
		Score:     s.Score,
		ShipX:     s.Ship.X,
		Enemies:   len(s.Enemies),
		HeroShots: len(s.HeroShots),
		Over:      s.Over,
	}
	for _, e := range s.Enemies {
		f.EnemyShots += len(e.Shots)
	}
	return f
}

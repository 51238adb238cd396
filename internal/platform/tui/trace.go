package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaga/internal/games/galaga"
	"github.com/vovakirdan/tui-galaga/internal/storage"
)

// RunTrace records the runs of one player into a Store. It holds the recorder
// of the run in progress, so whoever owns the session can finish it after the
// program exits. A nil *RunTrace records nothing.
type RunTrace struct {
	store *storage.Store
	log   *log.Logger
	rec   *storage.Recorder
}

// NewRunTrace creates a trace writing to store. A nil store disables it.
func NewRunTrace(store *storage.Store, logger *log.Logger) *RunTrace {
	if store == nil {
		return nil
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &RunTrace{store: store, log: logger}
}

// Begin finishes the current run, if any, and starts a new one.
func (t *RunTrace) Begin(seed int64, canvasW, canvasH float64) {
	if t == nil {
		return
	}
	if err := t.Finish(); err != nil {
		t.log.Warn("run trace finish failed", "error", err)
	}
	rec, err := storage.NewRecorder(t.store, seed, canvasW, canvasH)
	if err != nil {
		t.log.Warn("run trace disabled", "error", err)
		return
	}
	t.rec = rec
}

// Record buffers a scene of the current run.
func (t *RunTrace) Record(scene galaga.Scene) {
	if t == nil || t.rec == nil {
		return
	}
	if err := t.rec.Record(scene); err != nil {
		t.log.Warn("run trace write failed", "error", err)
	}
}

// RunID returns the ID of the current run, or 0 when none is recorded.
func (t *RunTrace) RunID() int64 {
	if t == nil || t.rec == nil {
		return 0
	}
	return t.rec.RunID()
}

// Finish writes what is buffered and closes the current run. The recorder is
// kept when the write fails so a later call can retry.
func (t *RunTrace) Finish() error {
	if t == nil || t.rec == nil {
		return nil
	}
	if err := t.rec.Finish(); err != nil {
		return err
	}
	t.rec = nil
	return nil
}

// Package storage provides SQLite-based recording of game runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run traces.
type Store struct {
	db *sql.DB
}

// Run is one recorded game.
type Run struct {
	ID         int64
	Seed       int64
	CanvasW    float64
	CanvasH    float64
	Score      int
	Frames     int64
	Over       bool // ended by a collision rather than by quitting
	StartedAt  time.Time
	FinishedAt time.Time // zero while the run is in progress
}

// FrameRecord summarizes one delivered scene.
type FrameRecord struct {
	Tick       uint64
	At         time.Duration
	Score      int
	ShipX      float64
	Enemies    int
	EnemyShots int
	HeroShots  int
	Over       bool
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SSH sessions share one store; a single connection serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			canvas_w REAL NOT NULL,
			canvas_h REAL NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			game_over INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);

		CREATE TABLE IF NOT EXISTS frames (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			at_ms INTEGER NOT NULL,
			score INTEGER NOT NULL,
			ship_x REAL NOT NULL,
			enemies INTEGER NOT NULL,
			enemy_shots INTEGER NOT NULL,
			hero_shots INTEGER NOT NULL,
			game_over INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, tick)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginRun creates a run record and returns its ID.
func (s *Store) BeginRun(seed int64, canvasW, canvasH float64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (seed, canvas_w, canvas_h) VALUES (?, ?, ?)",
		seed, canvasW, canvasH,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const insertFrame = `INSERT INTO frames
	(run_id, tick, at_ms, score, ship_x, enemies, enemy_shots, hero_shots, game_over)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// RecordFrames appends frames to a run in a single transaction.
func (s *Store) RecordFrames(runID int64, frames []FrameRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertFrame)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.Exec(frameArgs(runID, f)...); err != nil {
			return fmt.Errorf("storage: cannot record frame %d: %w", f.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit frames: %w", err)
	}
	return nil
}

func frameArgs(runID int64, f FrameRecord) []any {
	return []any{
		runID, int64(f.Tick), f.At.Milliseconds(), f.Score, f.ShipX,
		f.Enemies, f.EnemyShots, f.HeroShots, f.Over,
	}
}

// EndRun stores the final result of a run.
func (s *Store) EndRun(runID int64, score int, frames uint64, over bool) error {
	result, err := s.db.Exec(
		`UPDATE runs SET score = ?, frames = ?, game_over = ?, finished_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		score, int64(frames), over, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end run %d: %w", runID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: run %d not found", runID)
	}
	return nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, seed, canvas_w, canvas_h, score, frames, game_over, started_at, finished_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt, finishedAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.CanvasW, &r.CanvasH, &r.Score, &r.Frames, &r.Over, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(startedAt)
		r.FinishedAt = parseTime(finishedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Frames returns every frame recorded for a run, in tick order.
func (s *Store) Frames(runID int64) ([]FrameRecord, error) {
	rows, err := s.db.Query(
		`SELECT tick, at_ms, score, ship_x, enemies, enemy_shots, hero_shots, game_over
		 FROM frames
		 WHERE run_id = ?
		 ORDER BY tick`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	var frames []FrameRecord
	for rows.Next() {
		var f FrameRecord
		var tick, atMS int64
		if err := rows.Scan(&tick, &atMS, &f.Score, &f.ShipX, &f.Enemies, &f.EnemyShots, &f.HeroShots, &f.Over); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		f.Tick = uint64(tick)
		f.At = time.Duration(atMS) * time.Millisecond
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return frames, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

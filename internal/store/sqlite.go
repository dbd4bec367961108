// Package store keeps per-tick broad-phase statistics of simulation runs in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/setanarut/bvh/internal/sim"
)

// ErrRunNotFound is returned for unknown run ids.
var ErrRunNotFound = errors.New("store: run not found")

// Recorder writes runs and their ticks.
type Recorder struct {
	db         *sql.DB
	insertTick *sql.Stmt
}

// Run is one recorded simulation.
type Run struct {
	ID        string
	Scene     string
	StartedAt time.Time
}

// Summary aggregates the ticks of a run.
type Summary struct {
	Run
	Ticks           int
	TotalReinserted int
	MaxPairs        int
	AvgPairs        float64
	MaxHeight       int
	MaxPoolInUse    int
}

// Open creates or opens the database at path and runs migrations.
func Open(path string) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: cannot connect to database: %w", err)
	}

	r := &Recorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migration failed: %w", err)
	}

	r.insertTick, err = db.Prepare(
		`INSERT INTO ticks (run_id, tick, reinserted, pairs, leaves, height, pool_in_use)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: cannot prepare insert: %w", err)
	}
	return r, nil
}

func (r *Recorder) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			scene TEXT NOT NULL,
			started_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS ticks (
			run_id TEXT NOT NULL REFERENCES runs(id),
			tick INTEGER NOT NULL,
			reinserted INTEGER NOT NULL,
			pairs INTEGER NOT NULL,
			leaves INTEGER NOT NULL,
			height INTEGER NOT NULL,
			pool_in_use INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
		);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Close releases the prepared statement and the database.
func (r *Recorder) Close() error {
	var err error
	if r.insertTick != nil {
		err = multierr.Append(err, r.insertTick.Close())
	}
	if r.db != nil {
		err = multierr.Append(err, r.db.Close())
	}
	return err
}

// BeginRun registers a new run of scene and returns its id.
func (r *Recorder) BeginRun(scene string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(
		"INSERT INTO runs (id, scene, started_at) VALUES (?, ?, ?)",
		id, scene, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("store: cannot begin run: %w", err)
	}
	return id, nil
}

// RecordTick stores one tick of run runID.
func (r *Recorder) RecordTick(runID string, res sim.TickResult) error {
	_, err := r.insertTick.Exec(runID, res.Tick, res.Reinserted, res.Pairs,
		res.Stats.Leaves, res.Stats.Height, res.Stats.PoolInUse)
	if err != nil {
		return fmt.Errorf("store: cannot record tick %d: %w", res.Tick, err)
	}
	return nil
}

// Runs lists every run, newest first.
func (r *Recorder) Runs() ([]Run, error) {
	rows, err := r.db.Query("SELECT id, scene, started_at FROM runs ORDER BY started_at DESC")
	if err != nil {
		return nil, fmt.Errorf("store: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started string
		if err := rows.Scan(&run.ID, &run.Scene, &started); err != nil {
			return nil, fmt.Errorf("store: cannot scan row: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: row iteration error: %w", err)
	}
	return runs, nil
}

// Summary aggregates the ticks of run runID.
func (r *Recorder) Summary(runID string) (Summary, error) {
	s := Summary{Run: Run{ID: runID}}

	var started string
	err := r.db.QueryRow("SELECT scene, started_at FROM runs WHERE id = ?", runID).Scan(&s.Scene, &started)
	if errors.Is(err, sql.ErrNoRows) {
		return s, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return s, fmt.Errorf("store: cannot query run: %w", err)
	}
	s.StartedAt, _ = time.Parse(time.RFC3339Nano, started)

	var (
		reinserted, maxPairs, maxHeight, maxPool sql.NullInt64
		avgPairs                                 sql.NullFloat64
	)
	err = r.db.QueryRow(
		`SELECT COUNT(*), SUM(reinserted), MAX(pairs), AVG(pairs), MAX(height), MAX(pool_in_use)
		 FROM ticks
		 WHERE run_id = ?`,
		runID,
	).Scan(&s.Ticks, &reinserted, &maxPairs, &avgPairs, &maxHeight, &maxPool)
	if err != nil {
		return s, fmt.Errorf("store: cannot summarize run: %w", err)
	}

	s.TotalReinserted = int(reinserted.Int64)
	s.MaxPairs = int(maxPairs.Int64)
	s.AvgPairs = avgPairs.Float64
	s.MaxHeight = int(maxHeight.Int64)
	s.MaxPoolInUse = int(maxPool.Int64)
	return s, nil
}

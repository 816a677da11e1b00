package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/motion.report/internal/motion/features"
	"github.com/banshee-data/motion.report/internal/motion/pipeline"
)

// ErrSchemaMismatch is returned when stored rows were written under a
// different feature schema than the running binary's.
var ErrSchemaMismatch = errors.New("feature schema mismatch")

// ErrRunNotFound is returned for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Run describes one extraction over a pair of sample streams.
type Run struct {
	ID            string
	CreatedAt     time.Time
	SchemaVersion string
	AppVersion    string
	// Source is a free-form description of the input, e.g. the CSV paths.
	Source       string
	Params       pipeline.Params
	WindowCount  int
	DroppedCount int
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// InsertRun stores r. An empty ID is filled with a new UUID, a zero
// CreatedAt with the current time and an empty SchemaVersion with
// features.SchemaVersion; r is updated in place.
func (db *DB) InsertRun(ctx context.Context, r *Run) error {
	return insertRun(ctx, db, r)
}

func insertRun(ctx context.Context, ex execer, r *Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.SchemaVersion == "" {
		r.SchemaVersion = features.SchemaVersion
	}
	params, err := json.Marshal(r.Params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO feature_runs (
			run_id, created_unix, schema_version, app_version, source,
			params_json, window_count, dropped_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.Unix(), r.SchemaVersion, r.AppVersion, r.Source,
		string(params), r.WindowCount, r.DroppedCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", r.ID, err)
	}
	return nil
}

// InsertRows stores rows for runID. windows gives each row's window
// index and must be parallel to rows.
func (db *DB) InsertRows(ctx context.Context, runID string, windows []int, rows features.Table) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		return insertRows(ctx, tx, runID, windows, rows)
	})
}

func insertRows(ctx context.Context, ex execer, runID string, windows []int, rows features.Table) error {
	if len(windows) != len(rows) {
		return fmt.Errorf("have %d window indexes for %d rows", len(windows), len(rows))
	}
	stmt, err := ex.PrepareContext(ctx, `
		INSERT INTO feature_rows (run_id, window_index, schema_version, values_json)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if len(row) != features.NumFeatures {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), features.NumFeatures)
		}
		values, err := json.Marshal(row.Values())
		if err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, runID, windows[i], features.SchemaVersion, string(values)); err != nil {
			return fmt.Errorf("failed to insert window %d: %w", windows[i], err)
		}
	}
	return nil
}

// InsertDropped records the windows a batch dropped.
func (db *DB) InsertDropped(ctx context.Context, runID string, dropped []pipeline.WindowError) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		return insertDropped(ctx, tx, runID, dropped)
	})
}

func insertDropped(ctx context.Context, ex execer, runID string, dropped []pipeline.WindowError) error {
	for _, d := range dropped {
		_, err := ex.ExecContext(ctx, `
			INSERT INTO dropped_windows (run_id, window_index, start_sample, reason)
			VALUES (?, ?, ?, ?)`,
			runID, d.Index, d.Start, d.Err.Error(),
		)
		if err != nil {
			return fmt.Errorf("failed to record dropped window %d: %w", d.Index, err)
		}
	}
	return nil
}

// SaveResult stores a completed pipeline result as a new run with its
// rows and dropped windows. Either all of it is stored or none of it.
func (db *DB) SaveResult(ctx context.Context, r *Run, res pipeline.Result) error {
	r.WindowCount = len(res.Rows)
	r.DroppedCount = len(res.Dropped)
	return db.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertRun(ctx, tx, r); err != nil {
			return err
		}
		if err := insertRows(ctx, tx, r.ID, res.Windows, res.Rows); err != nil {
			return err
		}
		return insertDropped(ctx, tx, r.ID, res.Dropped)
	})
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadRows returns the stored rows of runID in window order.
func (db *DB) LoadRows(ctx context.Context, runID string) (windows []int, rows features.Table, err error) {
	if _, err := db.GetRun(ctx, runID); err != nil {
		return nil, nil, err
	}
	res, err := db.QueryContext(ctx, `
		SELECT window_index, schema_version, values_json
		FROM feature_rows WHERE run_id = ? ORDER BY window_index`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer res.Close()

	for res.Next() {
		var (
			index   int
			schema  string
			encoded string
		)
		if err := res.Scan(&index, &schema, &encoded); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if schema != features.SchemaVersion {
			return nil, nil, fmt.Errorf("window %d stored as %q, binary reads %q: %w",
				index, schema, features.SchemaVersion, ErrSchemaMismatch)
		}
		var values []float64
		if err := json.Unmarshal([]byte(encoded), &values); err != nil {
			return nil, nil, fmt.Errorf("failed to decode window %d: %w", index, err)
		}
		v, err := features.FromValues(values)
		if err != nil {
			return nil, nil, fmt.Errorf("window %d: %w", index, err)
		}
		windows = append(windows, index)
		rows = append(rows, v)
	}
	return windows, rows, res.Err()
}

// GetRun returns the run with the given ID.
func (db *DB) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := db.QueryRowContext(ctx, runSelect+` WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}
	return r, err
}

// ListRuns returns every run, newest first.
func (db *DB) ListRuns(ctx context.Context) ([]*Run, error) {
	res, err := db.QueryContext(ctx, runSelect+` ORDER BY created_unix DESC, run_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer res.Close()

	var runs []*Run
	for res.Next() {
		r, err := scanRun(res)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, res.Err()
}

const runSelect = `
	SELECT run_id, created_unix, schema_version, app_version, source,
		params_json, window_count, dropped_count
	FROM feature_runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var (
		r       Run
		created int64
		params  string
	)
	err := s.Scan(&r.ID, &created, &r.SchemaVersion, &r.AppVersion, &r.Source,
		&params, &r.WindowCount, &r.DroppedCount)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = time.Unix(created, 0).UTC()
	if err := json.Unmarshal([]byte(params), &r.Params); err != nil {
		return nil, fmt.Errorf("failed to decode params of run %s: %w", r.ID, err)
	}
	return &r, nil
}

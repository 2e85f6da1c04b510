package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded run summary.
type Run struct {
	ID             string
	StartedAt      time.Time
	FinishedAt     time.Time
	InputDir       string
	OutputDir      string
	Workers        int
	MaxSizeBytes   int64
	TotalFiles     int
	Succeeded      int
	Failed         int
	OriginalBytes  int64
	OptimizedBytes int64
}

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one completed run. Rows are append-only.
func (s *Store) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, started_at, finished_at, input_dir, output_dir, workers,
            max_size_bytes, total_files, succeeded, failed,
            original_bytes, optimized_bytes
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.InputDir,
		run.OutputDir,
		run.Workers,
		run.MaxSizeBytes,
		run.TotalFiles,
		run.Succeeded,
		run.Failed,
		run.OriginalBytes,
		run.OptimizedBytes,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit < 1 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, input_dir, output_dir, workers,
                max_size_bytes, total_files, succeeded, failed,
                original_bytes, optimized_bytes
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(
			&run.ID, &started, &finished, &run.InputDir, &run.OutputDir,
			&run.Workers, &run.MaxSizeBytes, &run.TotalFiles, &run.Succeeded,
			&run.Failed, &run.OriginalBytes, &run.OptimizedBytes,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Package histstore caches fetched execution history in SQLite so the last
// result can be re-displayed without invoking the workflow tool.
package histstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one cached execution-history row for a workflow.
type Run struct {
	RunID      string
	Status     string
	StartedAt  string
	DurationMs int64
	Parameters string // raw JSON as returned by the tool
}

// Store is a SQLite-backed history cache.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history cache at dbPath.
// The database is opened with WAL mode enabled for better concurrency.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles concurrency better with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			workflow_id TEXT NOT NULL,
			run_id      TEXT NOT NULL,
			status      TEXT NOT NULL,
			started_at  TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			parameters  TEXT,
			fetched_at  INTEGER NOT NULL,
			PRIMARY KEY (workflow_id, run_id)
		);
		CREATE INDEX IF NOT EXISTS idx_runs_fetched ON runs(fetched_at);
	`)
	return err
}

// ReplaceRuns replaces the cached history for a workflow with a freshly
// fetched set.
func (s *Store) ReplaceRuns(ctx context.Context, workflowID string, runs []Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE workflow_id = ?`, workflowID); err != nil {
		return fmt.Errorf("clearing cached runs: %w", err)
	}

	now := time.Now().Unix()
	for _, r := range runs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO runs (workflow_id, run_id, status, started_at, duration_ms, parameters, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			workflowID, r.RunID, r.Status, r.StartedAt, r.DurationMs, r.Parameters, now)
		if err != nil {
			return fmt.Errorf("inserting run %s: %w", r.RunID, err)
		}
	}

	return tx.Commit()
}

// Runs returns the cached history for a workflow, newest start first.
func (s *Store) Runs(ctx context.Context, workflowID string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, status, started_at, duration_ms, parameters
		FROM runs WHERE workflow_id = ?
		ORDER BY started_at DESC`, workflowID)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var started, params sql.NullString
		if err := rows.Scan(&r.RunID, &r.Status, &started, &r.DurationMs, &params); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt = started.String
		r.Parameters = params.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// Prune deletes cached runs fetched more than retention ago. A zero retention
// disables pruning.
func (s *Store) Prune(ctx context.Context, retention time.Duration) error {
	if retention <= 0 {
		return nil
	}
	cutoff := time.Now().Add(-retention).Unix()
	_, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE fetched_at < ?`, cutoff)
	return err
}

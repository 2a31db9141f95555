// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a ledger of completed conversions in a local
// SQLite database. Recording is best-effort: the caller logs and moves on
// if the ledger is unavailable.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"

	"github.com/pdiddy/pdfraster/pkg/types"
)

const dbFile = "history.db"

// Store manages the conversion history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database under cfg.Dir (default
// ~/.config/pdfraster), bootstrapping the schema if needed.
func Open(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".config", "pdfraster")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createSchema bootstraps the runs table. created_at holds UTC unix
// nanoseconds so ORDER BY compares numerically.
func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			input_path TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			format TEXT NOT NULL,
			dpi INTEGER NOT NULL,
			pages INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_output_dir ON runs(output_dir)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record inserts a completed run, assigning an ID when the record has
// none, and returns the ID.
func (s *Store) Record(rec types.RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = xid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, input_path, output_dir, format, dpi, pages, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.InputPath, rec.OutputDir, string(rec.Format),
		rec.DPI, rec.Pages, rec.Duration.Milliseconds(),
		rec.CreatedAt.UTC().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return rec.ID, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]types.RunRecord, error) {
	return s.query(
		`SELECT id, input_path, output_dir, format, dpi, pages, duration_ms, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
}

// ByOutputDir returns up to limit runs that wrote into dir, newest first.
func (s *Store) ByOutputDir(dir string, limit int) ([]types.RunRecord, error) {
	return s.query(
		`SELECT id, input_path, output_dir, format, dpi, pages, duration_ms, created_at
		 FROM runs WHERE output_dir = ? ORDER BY created_at DESC LIMIT ?`, dir, limit)
}

func (s *Store) query(stmt string, args ...any) ([]types.RunRecord, error) {
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []types.RunRecord
	for rows.Next() {
		var (
			rec        types.RunRecord
			format     string
			durationMS int64
			createdAt  int64
		)
		if err := rows.Scan(&rec.ID, &rec.InputPath, &rec.OutputDir, &format,
			&rec.DPI, &rec.Pages, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.Format = types.Format(format)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.CreatedAt = time.Unix(0, createdAt).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

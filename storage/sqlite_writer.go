package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteWriter persists normalized courses to a local SQLite file.
type SQLiteWriter struct {
	sqlStore
}

// NewSQLiteWriter opens (or creates) the database at path and migrates it.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: pragma journal_mode: %w", err)
	}

	sw := &SQLiteWriter{sqlStore{
		db:          db,
		name:        "sqlite",
		placeholder: func(int) string { return "?" },
	}}
	if err := sw.migrate("REAL", "BOOLEAN"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return sw, nil
}

// SnapshotCount returns how many snapshots have been recorded.
func (sw *SQLiteWriter) SnapshotCount() (int, error) {
	var n int
	if err := sw.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count snapshots: %w", err)
	}
	return n, nil
}

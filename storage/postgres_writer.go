package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"golf-atlas/utils"
)

// PostgresWriter persists normalized courses to PostgreSQL.
type PostgresWriter struct {
	sqlStore
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter. The first ping is retried.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	pw := &PostgresWriter{sqlStore{
		db:          db,
		name:        "postgres",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}}
	if err := pw.migrate("DOUBLE PRECISION", "BOOLEAN"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

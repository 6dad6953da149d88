package storage

import (
	"context"
	"fmt"
	"time"

	"golf-atlas/config"
	"golf-atlas/utils"
)

// OpenSinks opens every sink named in cfg.StorageDrivers. If one fails, the
// ones already opened are closed again.
func OpenSinks(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*MultiWriter, error) {
	var writers []SnapshotWriter
	fail := func(err error) (*MultiWriter, error) {
		_ = NewMultiWriter(1, writers...).Close()
		return nil, err
	}

	for _, driver := range cfg.StorageDrivers {
		switch driver {
		case "postgres":
			retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: time.Second, Logger: logger}
			pw, err := NewPostgresWriter(ctx, cfg.DSN(), retry)
			if err != nil {
				return fail(err)
			}
			writers = append(writers, pw)
			logger.Info("[storage] PostgreSQL sink ready (%s:%s/%s)", cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
		case "sqlite":
			sw, err := NewSQLiteWriter(cfg.SQLitePath)
			if err != nil {
				return fail(err)
			}
			writers = append(writers, sw)
			logger.Info("[storage] SQLite sink ready (%s)", cfg.SQLitePath)
		case "csv":
			cw, err := NewCSVWriter(cfg.CSVExportPath)
			if err != nil {
				return fail(err)
			}
			writers = append(writers, cw)
			logger.Info("[storage] CSV export ready (%s)", cfg.CSVExportPath)
		default:
			return fail(fmt.Errorf("storage: unknown driver %q", driver))
		}
	}
	return NewMultiWriter(cfg.MaxConcurrency, writers...), nil
}

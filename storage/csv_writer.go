package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golf-atlas/models"
)

// CSVWriter exports the normalized course set to a CSV file, replacing the
// previous export on every snapshot. It is safe for concurrent use.
type CSVWriter struct {
	mu   sync.Mutex
	path string
}

// NewCSVWriter prepares an export at path. Intermediate directories are
// created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{path: path}, nil
}

// Path returns the export location.
func (c *CSVWriter) Path() string { return c.path }

// WriteSnapshot writes every course of snap. The file is swapped in only
// once it is complete.
func (c *CSVWriter) WriteSnapshot(snap *models.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".courses-*.csv")
	if err != nil {
		return fmt.Errorf("csv: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(exportColumns); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, course := range snap.Courses {
		if err := w.Write(courseRecord(course)); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("csv: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("csv: replace %q: %w", c.path, err)
	}
	return nil
}

// Close is a no-op; every snapshot is written and closed in full.
func (c *CSVWriter) Close() error { return nil }

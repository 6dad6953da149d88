package storage

import (
	"errors"

	"golf-atlas/models"
	"golf-atlas/utils"
)

// MultiWriter fans a snapshot out to several sinks concurrently.
type MultiWriter struct {
	writers        []SnapshotWriter
	maxConcurrency int
}

// NewMultiWriter writes to every given sink, at most maxConcurrency at a time.
func NewMultiWriter(maxConcurrency int, writers ...SnapshotWriter) *MultiWriter {
	return &MultiWriter{writers: writers, maxConcurrency: maxConcurrency}
}

// Len returns the number of sinks.
func (m *MultiWriter) Len() int { return len(m.writers) }

// WriteSnapshot writes snap to every sink and joins their errors.
func (m *MultiWriter) WriteSnapshot(snap *models.Snapshot) error {
	if len(m.writers) == 0 {
		return nil
	}
	pool := utils.NewWorkerPool(m.maxConcurrency, 0)
	for _, w := range m.writers {
		w := w
		pool.Submit(func() error { return w.WriteSnapshot(snap) })
	}
	return pool.Wait()
}

// Close closes every sink.
func (m *MultiWriter) Close() error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reader returns the first sink that can read courses back.
func (m *MultiWriter) Reader() (CourseReader, bool) {
	for _, w := range m.writers {
		if r, ok := w.(CourseReader); ok {
			return r, true
		}
	}
	return nil, false
}

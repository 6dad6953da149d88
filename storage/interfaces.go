package storage

import "golf-atlas/models"

// SnapshotWriter is the interface any storage backend must satisfy.
type SnapshotWriter interface {
	WriteSnapshot(snap *models.Snapshot) error
	Close() error
}

// CourseReader reads back the most recently persisted course set.
type CourseReader interface {
	FetchAll() ([]*models.Course, error)
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"golf-atlas/models"
	"golf-atlas/source"
	"golf-atlas/utils"
)

// SnapshotSink persists a published snapshot.
type SnapshotSink interface {
	WriteSnapshot(snap *models.Snapshot) error
}

// Notifier is told about every finished load.
type Notifier interface {
	SnapshotLoaded(snap *models.Snapshot)
	SnapshotFailed(src string, err error)
}

// Loader runs one ingestion pass: fetch, tokenize, normalize.
type Loader struct {
	fetcher    *source.Fetcher
	normalizer *Normalizer
	logger     *utils.Logger
	timeout    time.Duration

	sink     SnapshotSink
	notifier Notifier
}

// NewLoader creates a Loader. Each pass gets its own timeout.
func NewLoader(fetcher *source.Fetcher, logger *utils.Logger, timeout time.Duration) *Loader {
	return &Loader{
		fetcher:    fetcher,
		normalizer: NewNormalizer(logger),
		logger:     logger,
		timeout:    timeout,
	}
}

// WithSink persists every successful snapshot to sink.
func (l *Loader) WithSink(sink SnapshotSink) *Loader {
	l.sink = sink
	return l
}

// WithNotifier reports every finished load to n.
func (l *Loader) WithNotifier(n Notifier) *Loader {
	l.notifier = n
	return l
}

// Load fetches src and builds a new Snapshot. Fetch and tokenizer failures
// come back as *LoadError; bad rows never do.
func (l *Loader) Load(ctx context.Context, src, cacheBust string) (*models.Snapshot, error) {
	l.logger.Debug("[loader] Fetching %s", src)
	body, err := l.fetcher.Fetch(ctx, src, cacheBust)
	if err != nil {
		return nil, NewLoadError(StageFetch, src, err)
	}

	l.logger.Debug("[loader] Parsing CSV")
	table, err := source.ParseCSVBytes(body)
	if err != nil {
		return nil, NewLoadError(StageParse, src, err)
	}

	courses, stats := l.normalizer.Normalize(table.Headers, table.Rows)
	snap := &models.Snapshot{
		ID:       uuid.NewString(),
		Source:   src,
		LoadedAt: time.Now().UTC(),
		Courses:  courses,
		Stats:    stats,
	}

	if stats.Empty() {
		l.logger.Warn("[loader] %s (%d rows read from %s)", EmptyDatasetMessage, stats.TotalRows, src)
	} else {
		l.logger.Info("[loader] Loaded %d courses • Top-100: %d (snapshot %s)", stats.Valid, stats.Top100, snap.ID)
	}
	return snap, nil
}

// finish runs the side effects of a completed load. They never change its outcome.
func (l *Loader) finish(src string, snap *models.Snapshot, err error) {
	if err != nil {
		if l.notifier != nil {
			l.notifier.SnapshotFailed(src, err)
		}
		return
	}
	if l.sink != nil {
		if werr := l.sink.WriteSnapshot(snap); werr != nil {
			l.logger.Warn("[loader] Persisting snapshot %s failed: %v", snap.ID, werr)
		}
	}
	if l.notifier != nil {
		l.notifier.SnapshotLoaded(snap)
	}
}

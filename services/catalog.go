package services

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"golf-atlas/models"
)

// Catalog owns the current snapshot of one data source and serves queries
// against it.
type Catalog struct {
	source string
	loader *Loader

	group singleflight.Group

	mu        sync.RWMutex
	snap      *models.Snapshot
	byID      map[string]*models.Course
	lastErr   error
	attempted bool
	persisted chan struct{}
}

// NewCatalog creates an empty Catalog for src.
func NewCatalog(src string, loader *Loader) *Catalog {
	return &Catalog{source: src, loader: loader}
}

// Source returns the data source this catalog loads.
func (c *Catalog) Source() string { return c.source }

// Reload runs an ingestion pass. While one is in flight, further calls join
// it and share its result instead of starting another; a later call never
// cancels an earlier one. The pass runs under the loader's own timeout, so a
// caller giving up on ctx does not abort it for the others.
func (c *Catalog) Reload(ctx context.Context, cacheBust string) (*models.Snapshot, error) {
	ch := c.group.DoChan("load", func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.Background(), c.loader.timeout)
		defer cancel()

		snap, err := c.loader.Load(loadCtx, c.source, cacheBust)
		c.publish(snap, err)
		c.afterLoad(snap, err)
		return snap, err
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Snapshot), nil
	}
}

// afterLoad runs the loader's side effects off the reload path so joined
// callers get the snapshot without waiting on the sinks. Passes persist in
// the order they completed.
func (c *Catalog) afterLoad(snap *models.Snapshot, err error) {
	done := make(chan struct{})
	c.mu.Lock()
	prev := c.persisted
	c.persisted = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		if prev != nil {
			<-prev
		}
		c.loader.finish(c.source, snap, err)
	}()
}

// Flush waits until the side effects of every finished pass have run.
func (c *Catalog) Flush(ctx context.Context) error {
	c.mu.RLock()
	pending := c.persisted
	c.mu.RUnlock()
	if pending == nil {
		return nil
	}
	select {
	case <-pending:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ensure loads the catalog if no pass has been attempted yet.
func (c *Catalog) Ensure(ctx context.Context) error {
	c.mu.RLock()
	attempted := c.attempted
	c.mu.RUnlock()
	if attempted {
		return nil
	}
	_, err := c.Reload(ctx, "")
	return err
}

// publish swaps in a successful snapshot. A failed pass keeps the previous
// snapshot and records the error.
func (c *Catalog) publish(snap *models.Snapshot, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.attempted = true
	if err != nil {
		c.lastErr = err
		return
	}

	byID := make(map[string]*models.Course, len(snap.Courses))
	for _, course := range snap.Courses {
		if _, dup := byID[course.ID]; !dup {
			byID[course.ID] = course
		}
	}
	c.snap, c.byID, c.lastErr = snap, byID, nil
}

// Snapshot returns the current snapshot. Before any successful pass it
// returns the last load error, or ErrNotLoaded.
func (c *Catalog) Snapshot() (*models.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		if c.lastErr != nil {
			return nil, c.lastErr
		}
		return nil, ErrNotLoaded
	}
	return c.snap, nil
}

// LastError returns the error of the most recent pass, nil if it succeeded.
func (c *Catalog) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Lookup finds a course of the current snapshot by id.
func (c *Catalog) Lookup(id string) (*models.Course, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	course, ok := c.byID[id]
	return course, ok
}

// View renders the current snapshot under state.
func (c *Catalog) View(state ViewState) (View, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return View{}, err
	}
	return Render(snap, state), nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Registry hands out the Catalog for a data source: the configured default,
// or, when overrides are allowed, a per-source Catalog kept in an LRU.
type Registry struct {
	loader        *Loader
	defaultSource string
	def           *Catalog

	allowOverride bool
	mu            sync.Mutex
	overrides     *lru.Cache[string, *Catalog]
}

// NewRegistry creates a Registry around the default source.
func NewRegistry(defaultSource string, loader *Loader, allowOverride bool, cacheSize int) (*Registry, error) {
	if cacheSize < 1 {
		cacheSize = 1
	}
	cache, err := lru.New[string, *Catalog](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("registry: create catalog cache: %w", err)
	}
	return &Registry{
		loader:        loader,
		defaultSource: defaultSource,
		def:           NewCatalog(defaultSource, loader),
		allowOverride: allowOverride,
		overrides:     cache,
	}, nil
}

// Default returns the Catalog of the configured source.
func (r *Registry) Default() *Catalog { return r.def }

// For returns the Catalog serving src. An empty src, the default source, or
// any src while overrides are disabled maps to the default Catalog.
func (r *Registry) For(src string) *Catalog {
	src = strings.TrimSpace(src)
	if src == "" || src == r.defaultSource || !r.allowOverride {
		return r.def
	}
	// Local files are never reachable through a request parameter.
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return r.def
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.overrides.Get(src); ok {
		return c
	}
	c := NewCatalog(src, r.loader)
	r.overrides.Add(src, c)
	return c
}

// OverrideCount returns how many override catalogs are cached.
func (r *Registry) OverrideCount() int {
	return r.overrides.Len()
}

// Flush waits for the pending side effects of every known catalog.
func (r *Registry) Flush(ctx context.Context) error {
	catalogs := []*Catalog{r.def}
	r.mu.Lock()
	catalogs = append(catalogs, r.overrides.Values()...)
	r.mu.Unlock()

	for _, c := range catalogs {
		if err := c.Flush(ctx); err != nil {
			return err
		}
	}
	return nil
}

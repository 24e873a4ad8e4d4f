package dataset

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// CachedLoader keeps one loaded table per city. Concurrent loads of the same
// city share a single read of the underlying file.
type CachedLoader struct {
	next   Loader
	logger *slog.Logger

	mu     sync.RWMutex
	tables map[City]*Table
	group  singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachedLoader wraps next with a per-city cache
func NewCachedLoader(next Loader, logger *slog.Logger) *CachedLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedLoader{
		next:   next,
		logger: logger.With(slog.String("component", "dataset_cache")),
		tables: make(map[City]*Table),
	}
}

// Load returns the cached table for city, loading it on first use.
// Failed loads are not cached.
func (c *CachedLoader) Load(ctx context.Context, city City) (*Table, error) {
	c.mu.RLock()
	table, ok := c.tables[city]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		c.logger.DebugContext(ctx, "Dataset cache hit", slog.String("city", city.String()))
		return table, nil
	}

	c.misses.Add(1)
	// Waiters share this load, so it outlives the caller that started it.
	loadCtx := context.WithoutCancel(ctx)
	v, err, shared := c.group.Do(string(city), func() (interface{}, error) {
		t, err := c.next.Load(loadCtx, city)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.tables[city] = t
		c.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "Dataset cache miss",
		slog.String("city", city.String()),
		slog.Bool("shared", shared))
	return v.(*Table), nil
}

// Invalidate drops the cached table for city
func (c *CachedLoader) Invalidate(city City) {
	c.mu.Lock()
	delete(c.tables, city)
	c.mu.Unlock()
	c.group.Forget(string(city))
}

// Stats returns the cache hit and miss counts
func (c *CachedLoader) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

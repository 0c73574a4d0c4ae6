package gitlab

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/golang/groupcache/lru"
)

// CacheStats reports directory cache usage
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int
}

// Directory memoizes project path -> id lookups for the life of the process.
// The cache is unbounded; entries are never evicted.
// Failed lookups are never cached, so a missing project is re-queried on
// every call. Safe for concurrent use.
type Directory struct {
	lookup ProjectLookup

	mu  sync.Mutex
	ids *lru.Cache

	hits   atomic.Int64
	misses atomic.Int64
}

// NewDirectory creates an empty directory backed by lookup
func NewDirectory(lookup ProjectLookup) *Directory {
	return &Directory{
		lookup: lookup,
		ids:    lru.New(0),
	}
}

// Resolve returns the id for path, querying the remote only on a cache miss.
// Concurrent misses on the same path may each query; the first stored id wins.
func (d *Directory) Resolve(ctx context.Context, path string) (int, error) {
	d.mu.Lock()
	cached, ok := d.ids.Get(path)
	d.mu.Unlock()
	if ok {
		d.hits.Add(1)
		return cached.(int), nil
	}

	d.misses.Add(1)
	id, err := d.lookup.LookupProjectID(ctx, path)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %s: %w", ErrProjectNotFound, path, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.ids.Get(path); ok {
		return existing.(int), nil
	}
	d.ids.Add(path, id)
	return id, nil
}

// Stats returns hit/miss counters and the number of cached entries
func (d *Directory) Stats() CacheStats {
	d.mu.Lock()
	size := d.ids.Len()
	d.mu.Unlock()

	return CacheStats{
		Hits:   d.hits.Load(),
		Misses: d.misses.Load(),
		Size:   size,
	}
}

// Clear drops every cached entry and resets the counters
func (d *Directory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids.Clear()
	d.hits.Store(0)
	d.misses.Store(0)
}

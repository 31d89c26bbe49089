package catalog

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL bounds how long a filter's listing may be served without a
// full refetch even when nothing looks changed.
const DefaultTTL = 5 * time.Minute

// Lister is the slice of the product store the cache reads through to.
type Lister interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	Count(ctx context.Context, f Filter) (int, error)
}

// VersionSource reports the shared catalog version marker.
type VersionSource interface {
	Version(ctx context.Context) (int64, error)
}

type entry struct {
	products  []Product
	fetchedAt time.Time
	version   int64
}

// Cache keeps one listing per filter. A hit is served only when the entry
// is younger than the TTL, was filled under the current version marker and
// the store still holds the same number of matching rows; any miss on
// those checks refetches the full listing.
type Cache struct {
	store   Lister
	version VersionSource
	ttl     time.Duration

	mu      sync.Mutex
	entries map[Filter]entry

	now func() time.Time
}

func NewCache(store Lister, version VersionSource, ttl time.Duration) *Cache {
	return &Cache{
		store:   store,
		version: version,
		ttl:     ttl,
		entries: make(map[Filter]entry),
		now:     time.Now,
	}
}

// Products returns the listing for the filter, from cache when still valid.
// An invalid category yields an empty listing without touching the store.
func (c *Cache) Products(ctx context.Context, f Filter) ([]Product, error) {
	if !f.Category.Valid() {
		return nil, nil
	}

	ver, err := c.version.Version(ctx)
	if err != nil {
		// marker unreadable: serve straight from the store, cache nothing
		return c.store.List(ctx, f)
	}

	c.mu.Lock()
	e, ok := c.entries[f]
	c.mu.Unlock()

	if ok && e.version == ver && c.now().Sub(e.fetchedAt) < c.ttl {
		n, err := c.store.Count(ctx, f)
		if err == nil && n == len(e.products) {
			return e.products, nil
		}
	}

	list, err := c.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[f] = entry{products: list, fetchedAt: c.now(), version: ver}
	c.mu.Unlock()
	return list, nil
}

package users

import (
	"context"
	"sync"
	"time"
)

// DefaultRoleTTL caps how stale an admin check may be. A demoted operator
// keeps the admin keyboard for at most this long.
const DefaultRoleTTL = 5 * time.Minute

// AdminChecker is the store lookup behind the cache.
type AdminChecker interface {
	IsAdmin(ctx context.Context, tgID int64) (bool, error)
}

type roleEntry struct {
	admin   bool
	checked time.Time
}

// RoleCache answers the per-update "is this an operator" question without a
// database round trip each time.
type RoleCache struct {
	store AdminChecker
	ttl   time.Duration

	mu   sync.Mutex
	seen map[int64]roleEntry

	now func() time.Time
}

func NewRoleCache(store AdminChecker, ttl time.Duration) *RoleCache {
	return &RoleCache{
		store: store,
		ttl:   ttl,
		seen:  make(map[int64]roleEntry),
		now:   time.Now,
	}
}

func (c *RoleCache) IsAdmin(ctx context.Context, tgID int64) (bool, error) {
	c.mu.Lock()
	e, ok := c.seen[tgID]
	c.mu.Unlock()
	if ok && c.now().Sub(e.checked) < c.ttl {
		return e.admin, nil
	}

	admin, err := c.store.IsAdmin(ctx, tgID)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	c.seen[tgID] = roleEntry{admin: admin, checked: c.now()}
	c.mu.Unlock()
	return admin, nil
}

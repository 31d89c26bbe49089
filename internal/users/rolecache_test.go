package users

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeChecker struct {
	admins map[int64]bool
	calls  int
	err    error
}

func (f *fakeChecker) IsAdmin(_ context.Context, tgID int64) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.admins[tgID], nil
}

func TestRoleCacheHit(t *testing.T) {
	store := &fakeChecker{admins: map[int64]bool{42: true}}
	cache := NewRoleCache(store, DefaultRoleTTL)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		admin, err := cache.IsAdmin(ctx, 42)
		if err != nil {
			t.Fatal(err)
		}
		if !admin {
			t.Fatal("42 must be admin")
		}
	}
	if store.calls != 1 {
		t.Fatalf("store calls = %d, want 1", store.calls)
	}
}

func TestRoleCacheExpiry(t *testing.T) {
	store := &fakeChecker{admins: map[int64]bool{42: true}}
	cache := NewRoleCache(store, DefaultRoleTTL)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	now := base
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	if _, err := cache.IsAdmin(ctx, 42); err != nil {
		t.Fatal(err)
	}
	// operator demoted while the entry is still warm
	store.admins[42] = false
	if admin, _ := cache.IsAdmin(ctx, 42); !admin {
		t.Fatal("stale entry must still answer admin inside the TTL")
	}
	now = base.Add(DefaultRoleTTL + time.Second)
	admin, err := cache.IsAdmin(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if admin {
		t.Fatal("expired entry must be rechecked against the store")
	}
	if store.calls != 2 {
		t.Fatalf("store calls = %d, want 2", store.calls)
	}
}

func TestRoleCacheStoreError(t *testing.T) {
	store := &fakeChecker{err: errors.New("db down")}
	cache := NewRoleCache(store, DefaultRoleTTL)

	if _, err := cache.IsAdmin(context.Background(), 42); err == nil {
		t.Fatal("store error must surface")
	}
	store.err = nil
	store.admins = map[int64]bool{42: true}
	admin, err := cache.IsAdmin(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if !admin {
		t.Fatal("failed lookup must not be cached as non-admin")
	}
}

package catalog

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	products   []Product
	listCalls  int
	countCalls int
	listErr    error
}

func (s *fakeStore) match(f Filter, p Product) bool {
	return p.Category == f.Category && p.IsActive && p.Price >= f.MinPrice && p.Price <= f.MaxPrice
}

func (s *fakeStore) List(_ context.Context, f Filter) ([]Product, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []Product
	for _, p := range s.products {
		if s.match(f, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) Count(_ context.Context, f Filter) (int, error) {
	s.countCalls++
	n := 0
	for _, p := range s.products {
		if s.match(f, p) {
			n++
		}
	}
	return n, nil
}

type fakeVersion struct {
	v   int64
	err error
}

func (f *fakeVersion) Version(context.Context) (int64, error) { return f.v, f.err }

func testProducts() []Product {
	return []Product{
		{ID: 1, Title: "Пионы", Price: 3500, Category: CategoryBouquet, IsActive: true},
		{ID: 2, Title: "Розы", Price: 2100, Category: CategoryBouquet, IsActive: true},
		{ID: 3, Title: "Коробка", Price: 5200, Category: CategoryComposition, IsActive: true},
	}
}

func allBouquets() Filter {
	return Filter{Category: CategoryBouquet, MinPrice: 0, MaxPrice: PriceNoLimit}
}

func TestCacheHitSkipsListing(t *testing.T) {
	store := &fakeStore{products: testProducts()}
	cache := NewCache(store, &fakeVersion{v: 1}, DefaultTTL)

	ctx := context.Background()
	first, err := cache.Products(ctx, allBouquets())
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("got %d products, want 2", len(first))
	}
	second, err := cache.Products(ctx, allBouquets())
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("got %d products, want 2", len(second))
	}
	if store.listCalls != 1 {
		t.Fatalf("listCalls = %d, want 1", store.listCalls)
	}
	if store.countCalls != 1 {
		t.Fatalf("countCalls = %d, want 1 (revalidation only)", store.countCalls)
	}
}

func TestCacheRefetchesWhenCountChanges(t *testing.T) {
	store := &fakeStore{products: testProducts()}
	cache := NewCache(store, &fakeVersion{v: 1}, DefaultTTL)

	ctx := context.Background()
	if _, err := cache.Products(ctx, allBouquets()); err != nil {
		t.Fatal(err)
	}
	store.products = append(store.products, Product{ID: 4, Title: "Тюльпаны", Price: 1500, Category: CategoryBouquet, IsActive: true})

	got, err := cache.Products(ctx, allBouquets())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d products after store change, want 3", len(got))
	}
	if store.listCalls != 2 {
		t.Fatalf("listCalls = %d, want 2", store.listCalls)
	}
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	store := &fakeStore{products: testProducts()}
	cache := NewCache(store, &fakeVersion{v: 1}, DefaultTTL)

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	now := base
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	if _, err := cache.Products(ctx, allBouquets()); err != nil {
		t.Fatal(err)
	}
	now = base.Add(DefaultTTL + time.Second)
	if _, err := cache.Products(ctx, allBouquets()); err != nil {
		t.Fatal(err)
	}
	if store.listCalls != 2 {
		t.Fatalf("listCalls = %d, want 2 after expiry", store.listCalls)
	}
}

func TestCacheRefetchesOnVersionBump(t *testing.T) {
	store := &fakeStore{products: testProducts()}
	ver := &fakeVersion{v: 1}
	cache := NewCache(store, ver, DefaultTTL)

	ctx := context.Background()
	if _, err := cache.Products(ctx, allBouquets()); err != nil {
		t.Fatal(err)
	}
	// back office bumped the marker; count and TTL alone would still pass
	ver.v = 2
	if _, err := cache.Products(ctx, allBouquets()); err != nil {
		t.Fatal(err)
	}
	if store.listCalls != 2 {
		t.Fatalf("listCalls = %d, want 2 after version bump", store.listCalls)
	}
}

func TestCacheInvalidCategory(t *testing.T) {
	store := &fakeStore{products: testProducts()}
	cache := NewCache(store, &fakeVersion{v: 1}, DefaultTTL)

	got, err := cache.Products(context.Background(), Filter{Category: "garden", MaxPrice: PriceNoLimit})
	if err != nil {
		t.Fatalf("invalid category must not error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d products for invalid category, want 0", len(got))
	}
	if store.listCalls != 0 || store.countCalls != 0 {
		t.Fatal("store must not be touched for an invalid category")
	}
}

func TestCacheMarkerErrorBypassesCache(t *testing.T) {
	store := &fakeStore{products: testProducts()}
	cache := NewCache(store, &fakeVersion{err: errors.New("redis down")}, DefaultTTL)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		got, err := cache.Products(ctx, allBouquets())
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d products, want 2", len(got))
		}
	}
	if store.listCalls != 2 {
		t.Fatalf("listCalls = %d, want 2 (no caching without marker)", store.listCalls)
	}
}

func TestCacheKeyedByPriceBand(t *testing.T) {
	store := &fakeStore{products: testProducts()}
	cache := NewCache(store, &fakeVersion{v: 1}, DefaultTTL)

	ctx := context.Background()
	cheap := Filter{Category: CategoryBouquet, MinPrice: 0, MaxPrice: 2500}
	mid := Filter{Category: CategoryBouquet, MinPrice: 2500, MaxPrice: 4000}

	for _, f := range []Filter{cheap, mid, cheap, mid} {
		if _, err := cache.Products(ctx, f); err != nil {
			t.Fatal(err)
		}
	}
	if store.listCalls != 2 {
		t.Fatalf("listCalls = %d, want 2 (one fill per band)", store.listCalls)
	}

	got, err := cache.Products(ctx, cheap)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("cheap band returned %+v, want product 2 only", got)
	}
}

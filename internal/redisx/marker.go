package redisx

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// VersionMarker is the cross-process invalidation channel for the catalog:
// the back office bumps it whenever products change, readers refetch when
// the number they cached under no longer matches.
type VersionMarker struct {
	RDB *redis.Client
}

// Version returns the current marker value. A missing key counts as zero.
func (m *VersionMarker) Version(ctx context.Context) (int64, error) {
	v, err := m.RDB.Get(ctx, KeyCatalogVersion).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (m *VersionMarker) Bump(ctx context.Context) error {
	return m.RDB.Incr(ctx, KeyCatalogVersion).Err()
}

// Package cachemanager provides a typed in-memory cache for computed
// metric results, so the dashboard does not recompute aggregates on every
// filter change.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a typed cache keyed by string-like keys.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}

// Package cachemanager holds short-lived in-memory copies of lighting
// service responses.
package cachemanager

import (
	"context"
	"time"
)

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = 5 * time.Minute

// Store is a keyed cache with per-entry TTLs.
type Store[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K)
}

// Stats counts lookups since the store was created.
type Stats struct {
	Hits   uint64
	Misses uint64
}

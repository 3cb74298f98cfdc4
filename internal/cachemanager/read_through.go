package cachemanager

import (
	"context"
	"time"
)

// ReadThrough serves one kind of value: Get answers from the store while the
// entry is fresh and calls fetch otherwise, keeping successful results for
// ttl. A ttl of zero or less disables caching; every Get then calls fetch.
type ReadThrough[K ~string, V any] struct {
	store Store[K, V]
	fetch func(ctx context.Context) (V, error)
	ttl   time.Duration
}

// NewReadThrough wraps fetch with store.
func NewReadThrough[K ~string, V any](store Store[K, V], ttl time.Duration, fetch func(ctx context.Context) (V, error)) *ReadThrough[K, V] {
	return &ReadThrough[K, V]{store: store, fetch: fetch, ttl: ttl}
}

// Enabled reports whether results are kept at all.
func (r *ReadThrough[K, V]) Enabled() bool {
	return r.ttl > 0
}

// Get returns the cached value for key or fetches it. Errors are never cached.
func (r *ReadThrough[K, V]) Get(ctx context.Context, key K) (V, error) {
	v, _, err := r.Lookup(ctx, key)
	return v, err
}

// Lookup is Get that also reports whether the value came from the store.
func (r *ReadThrough[K, V]) Lookup(ctx context.Context, key K) (V, bool, error) {
	if !r.Enabled() {
		v, err := r.fetch(ctx)
		return v, false, err
	}
	if v, ok := r.store.Get(ctx, key); ok {
		return v, true, nil
	}

	v, err := r.fetch(ctx)
	if err != nil {
		return v, false, err
	}
	r.store.Set(ctx, key, v, r.ttl)
	return v, false, nil
}

// Put replaces the cached value, e.g. after the caller wrote it upstream.
func (r *ReadThrough[K, V]) Put(ctx context.Context, key K, v V) {
	if r.Enabled() {
		r.store.Set(ctx, key, v, r.ttl)
	}
}

// Invalidate drops key so the next Get fetches.
func (r *ReadThrough[K, V]) Invalidate(ctx context.Context, key K) {
	if r.Enabled() {
		r.store.Delete(ctx, key)
	}
}

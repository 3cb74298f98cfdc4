package api

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/phoenixcorp/lightdesk/internal/cachemanager"
	"github.com/phoenixcorp/lightdesk/internal/log"
	"github.com/phoenixcorp/lightdesk/internal/overrides"
	"github.com/phoenixcorp/lightdesk/internal/tracing"
)

const overridesCacheKey = "overrides"

// CachingTransport serves FetchOverrides from a short-lived cache and writes
// successfully persisted payloads through to it. All other calls pass
// straight to the wrapped transport.
//
// Only the most recently started persist may write through, so a slow older
// persist never replaces the cached copy of a newer one.
type CachingTransport struct {
	Transport
	store *cachemanager.Memory[string, overrides.Payload]
	cache *cachemanager.ReadThrough[string, overrides.Payload]

	mu     sync.Mutex
	writes uint64
}

var _ Transport = (*CachingTransport)(nil)

// NewCachingTransport wraps next. A ttl of zero or less disables caching.
func NewCachingTransport(next Transport, ttl time.Duration) *CachingTransport {
	store := cachemanager.NewMemory[string, overrides.Payload]("overrides", cachemanager.DefaultCleanupInterval)
	return &CachingTransport{
		Transport: next,
		store:     store,
		cache:     cachemanager.NewReadThrough[string, overrides.Payload](store, ttl, next.FetchOverrides),
	}
}

// FetchOverrides returns the cached payload when it is still fresh. The
// caller's span records whether the cache answered.
func (c *CachingTransport) FetchOverrides(ctx context.Context) (overrides.Payload, error) {
	p, hit, err := c.cache.Lookup(ctx, overridesCacheKey)
	trace.SpanFromContext(ctx).SetAttributes(attribute.Bool(tracing.AttrCacheHit, hit))
	return p, err
}

// PersistOverrides persists p and, on success, makes it the cached value
// unless a newer persist started meanwhile. The entry is dropped while the
// write is in flight and after a failure, since the service state is unknown.
func (c *CachingTransport) PersistOverrides(ctx context.Context, p overrides.Payload) (string, error) {
	c.mu.Lock()
	c.writes++
	seq := c.writes
	c.cache.Invalidate(ctx, overridesCacheKey)
	c.mu.Unlock()

	status, err := c.Transport.PersistOverrides(ctx, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case err != nil:
		c.cache.Invalidate(ctx, overridesCacheKey)
	case seq != c.writes:
		log.Debug(log.CatCache, "Skipped write-through of superseded persist", "seq", seq, "latest", c.writes)
	default:
		c.cache.Put(ctx, overridesCacheKey, p)
		log.Debug(log.CatCache, "Wrote persisted overrides through to cache", "seq", seq)
	}
	return status, err
}

// Invalidate drops the cached payload so the next fetch reaches the service.
func (c *CachingTransport) Invalidate(ctx context.Context) {
	c.cache.Invalidate(ctx, overridesCacheKey)
}

// Stats reports cache hits and misses of FetchOverrides.
func (c *CachingTransport) Stats() cachemanager.Stats {
	return c.store.Stats()
}

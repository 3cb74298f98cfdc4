package cachemanager

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/phoenixcorp/lightdesk/internal/log"
)

// Memory is a Store backed by go-cache.
type Memory[K ~string, V any] struct {
	name   string
	cache  *gocache.Cache
	hits   atomic.Uint64
	misses atomic.Uint64
}

var _ Store[string, int] = (*Memory[string, int])(nil)

// NewMemory creates an empty store. name only appears in log lines.
func NewMemory[K ~string, V any](name string, cleanupInterval time.Duration) *Memory[K, V] {
	return &Memory[K, V]{
		name:  name,
		cache: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Get returns the live entry for key. An entry of the wrong type counts
// as a miss.
func (m *Memory[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V

	raw, found := m.cache.Get(string(key))
	if !found {
		m.misses.Add(1)
		log.Debug(log.CatCache, "Cache miss", "cache", m.name, "key", key)
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		m.misses.Add(1)
		log.Error(log.CatCache, "Cached value has unexpected type", "cache", m.name, "key", key)
		return zero, false
	}

	m.hits.Add(1)
	log.Debug(log.CatCache, "Cache hit", "cache", m.name, "key", key)
	return v, true
}

// Set stores value for ttl. A ttl of zero or less keeps it until deleted.
func (m *Memory[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.cache.Set(string(key), value, ttl)
}

// Delete drops keys; missing keys are ignored.
func (m *Memory[K, V]) Delete(_ context.Context, keys ...K) {
	for _, key := range keys {
		m.cache.Delete(string(key))
	}
}

// Stats returns the hit and miss counts.
func (m *Memory[K, V]) Stats() Stats {
	return Stats{Hits: m.hits.Load(), Misses: m.misses.Load()}
}

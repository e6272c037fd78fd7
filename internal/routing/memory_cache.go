package routing

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-memory implementation of Cache.
// This is the default backend; deployments with Redis configured use the
// cache package instead.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	result    *RouteResult
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory route cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get retrieves a cached route result if present and not expired.
func (c *MemoryCache) Get(_ context.Context, key string) (*RouteResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.result, true
}

// Set stores a route result with a TTL. Expired entries are swept lazily
// whenever the map grows past a cleanup watermark.
func (c *MemoryCache) Set(_ context.Context, key string, result *RouteResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if len(c.entries) > 1024 {
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
	}

	c.entries[key] = memoryEntry{result: result, expiresAt: now.Add(ttl)}
}

// Len returns the number of entries currently stored, including expired ones.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)

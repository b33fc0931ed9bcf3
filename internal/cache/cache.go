// Package cache is a small in-process TTL cache built on patrickmn/go-cache.
// It backs the derived listing views and the per-session workspace registry.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache. Entries expire after defaultTTL; expired entries are
// swept every cleanupInterval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Get retrieves a value.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores a value with the default TTL, resetting its expiry.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// Delete removes a value. Eviction callbacks run.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// OnEvicted registers f to run when an entry expires or is deleted.
func (c *Cache) OnEvicted(f func(key string, value any)) {
	c.store.OnEvicted(f)
}

// ItemCount returns the number of items, including expired ones not yet swept.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

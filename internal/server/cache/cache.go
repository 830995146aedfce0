// Package cache holds short-lived API responses in memory. It wraps
// patrickmn/go-cache with TTL expiry.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache stores responses keyed by request.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache whose entries live for ttl. A zero ttl disables
// caching.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return &Cache{}
	}
	return &Cache{store: gocache.New(ttl, 2*ttl)}
}

// Enabled reports whether entries are retained.
func (c *Cache) Enabled() bool {
	return c != nil && c.store != nil
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	if !c.Enabled() {
		return nil, false
	}
	return c.store.Get(key)
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value any) {
	if c.Enabled() {
		c.store.Set(key, value, gocache.DefaultExpiration)
	}
}

// Clear removes all items.
func (c *Cache) Clear() {
	if c.Enabled() {
		c.store.Flush()
	}
}

// ItemCount returns the number of cached items.
func (c *Cache) ItemCount() int {
	if !c.Enabled() {
		return 0
	}
	return c.store.ItemCount()
}

package item

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/nymstead/wayfarer/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedItemEntry wraps an item with version metadata for cache invalidation
type cachedItemEntry struct {
	Version  string       `json:"version"`
	Item     *domain.Item `json:"item"`
	CachedAt time.Time    `json:"cached_at"`
}

// itemCache provides an in-memory LRU cache for item template lookups
// with time-based expiration and version-based invalidation to prevent stale data.
type itemCache struct {
	lru *expirable.LRU[string, *cachedItemEntry]
}

// newItemCache creates a new item cache with the specified size and TTL.
func newItemCache(size int, ttl time.Duration) *itemCache {
	return &itemCache{
		lru: expirable.NewLRU[string, *cachedItemEntry](size, nil, ttl),
	}
}

// Get retrieves an item from the cache.
// Returns (item, true) if found and version matches.
// Automatically invalidates entries with mismatched versions.
func (c *itemCache) Get(key string) (*domain.Item, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}

	return entry.Item, true
}

// Set stores an item in the cache with the current schema version.
func (c *itemCache) Set(key string, item *domain.Item) {
	entry := &cachedItemEntry{
		Version:  CacheSchemaVersion,
		Item:     item,
		CachedAt: time.Now(),
	}
	c.lru.Add(key, entry)
}

// Invalidate removes an item from the cache.
func (c *itemCache) Invalidate(key string) {
	c.lru.Remove(key)
}

// Clear removes all entries from the cache.
func (c *itemCache) Clear() {
	c.lru.Purge()
}

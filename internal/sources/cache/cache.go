// Package cache memoizes source adapter calls so repeated searches and
// fetches in one session do not hammer the public endpoints. Knowledge
// graph responses keep for an hour, registry responses for thirty
// minutes, roughly how often each upstream actually changes.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/entityscope/orbite/pkg/constants"
	"github.com/entityscope/orbite/pkg/entity"
)

// Cache wraps go-cache with TTL defaults per source.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache with the given default TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// NewForSource creates a cache with the TTL appropriate for a source.
func NewForSource(id entity.SourceID) *Cache {
	ttl := constants.RegistryCacheTTL
	if id == entity.SourceWikidata {
		ttl = constants.WikidataCacheTTL
	}
	return New(ttl, constants.CacheCleanupInterval)
}

// Key builds a stable cache key from call parts, typically the
// operation name and its arguments.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores a value with the cache's default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of cached items.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

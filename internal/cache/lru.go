// Package cache provides caching utilities for the MCP server.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// BodyCache is a thread-safe LRU cache of parsed JSON body values, keyed by
// session id and side ("request" or "response"). Parsing a large body once
// per query tool call is the cost being avoided; the underlying archive
// stays immutable. Each loaded archive owns its own BodyCache, since
// session ids restart at "1" in every archive and would collide in a
// shared cache.
type BodyCache struct {
	cache *lru.Cache[string, any]
}

// NewBodyCache creates a new LRU cache with the given maximum item count.
func NewBodyCache(maxItems int) (*BodyCache, error) {
	c, err := lru.New[string, any](maxItems)
	if err != nil {
		return nil, err
	}
	return &BodyCache{cache: c}, nil
}

// key joins session id and side into a cache key.
func key(sessionID, side string) string {
	return sessionID + "/" + side
}

// Get retrieves a parsed body value for a session side.
func (c *BodyCache) Get(sessionID, side string) (any, bool) {
	return c.cache.Get(key(sessionID, side))
}

// Put stores a parsed body value for a session side.
func (c *BodyCache) Put(sessionID, side string, value any) {
	c.cache.Add(key(sessionID, side), value)
}

// Purge drops every cached value.
func (c *BodyCache) Purge() {
	c.cache.Purge()
}

// Len returns the current number of cached values.
func (c *BodyCache) Len() int {
	return c.cache.Len()
}

package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheItem[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache is a size-bounded LRU whose entries also expire after a TTL.
type Cache[V any] struct {
	lruCache *lru.Cache[string, cacheItem[V]]
	ttl      time.Duration
}

// NewCache creates a cache holding at most size entries for ttl each.
func NewCache[V any](size int, ttl time.Duration) (*Cache[V], error) {
	l, err := lru.New[string, cacheItem[V]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lruCache: l, ttl: ttl}, nil
}

func (c *Cache[V]) Set(key string, data V) {
	c.lruCache.Add(key, cacheItem[V]{
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Get returns the cached value, or false if it is absent or expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	val, ok := c.lruCache.Get(key)
	if !ok {
		var zero V
		return zero, false
	}

	if time.Now().After(val.expiresAt) {
		c.lruCache.Remove(key)
		var zero V
		return zero, false
	}

	return val.data, true
}

func (c *Cache[V]) Delete(key string) {
	c.lruCache.Remove(key)
}

// Purge drops every entry.
func (c *Cache[V]) Purge() {
	c.lruCache.Purge()
}

func (c *Cache[V]) Len() int {
	return c.lruCache.Len()
}

package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is the small surface the rest of the service needs from an
// in-memory TTL cache.
type Cache interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
	Flush()
}

type goCache struct {
	internal *cache.Cache
}

// NewCache returns a Cache backed by go-cache with the given default
// expiration and cleanup interval.
func NewCache(defaultExpiration, cleanupInterval time.Duration) Cache {
	return &goCache{internal: cache.New(defaultExpiration, cleanupInterval)}
}

func (c *goCache) Set(key string, value interface{}, duration time.Duration) {
	c.internal.Set(key, value, duration)
}

func (c *goCache) Get(key string) (interface{}, bool) {
	return c.internal.Get(key)
}

func (c *goCache) Delete(key string) {
	c.internal.Delete(key)
}

func (c *goCache) Flush() {
	c.internal.Flush()
}

// Typed retrieves a value of type T from the cache, reporting false on a
// miss or a type mismatch.
func Typed[T any](c Cache, key string) (T, bool) {
	val, found := c.Get(key)
	if !found {
		var zero T
		return zero, false
	}
	typed, ok := val.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return typed, true
}

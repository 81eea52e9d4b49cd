package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is an expiring in-process key/value table. The server uses it for
// per-client state such as rate limiters, never for persisted records.
type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

// GetOrCreate returns the value stored under key, creating it with create when
// missing. Every hit pushes the expiry forward so only idle entries are evicted.
func (c *Cache) GetOrCreate(key string, create func() interface{}) interface{} {
	if v, ok := c.Cache.Get(key); ok {
		c.Cache.SetDefault(key, v)
		return v
	}

	v := create()
	if err := c.Cache.Add(key, v, cache.DefaultExpiration); err != nil {
		// lost the race against another request for the same key
		if existing, ok := c.Cache.Get(key); ok {
			return existing
		}
	}

	return v
}

func CacheKeyClient(ip string) string {
	return "client:" + ip
}

package cache

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// ContentCache keeps recently read file contents keyed by location.
// Cached slices are shared between callers and must not be modified.
type ContentCache struct {
	cache *lru.Cache[string, []byte]
	group singleflight.Group
}

func NewContentCache(size int) (*ContentCache, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be positive")
	}
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &ContentCache{cache: c}, nil
}

func (c *ContentCache) Get(key string) ([]byte, bool) {
	return c.cache.Get(key)
}

func (c *ContentCache) Set(key string, content []byte) {
	c.cache.Add(key, content)
}

// GetOrLoad returns the cached content for key, calling load on a miss.
// Concurrent misses for the same key share a single load. Failed loads are not cached.
func (c *ContentCache) GetOrLoad(key string, load func() ([]byte, error)) ([]byte, error) {
	// Fast path
	if content, ok := c.cache.Get(key); ok {
		return content, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Double-check after winning the flight
		if content, ok := c.cache.Get(key); ok {
			return content, nil
		}
		content, err := load()
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, content)
		return content, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *ContentCache) Len() int {
	return c.cache.Len()
}

// Purge drops every cached entry.
func (c *ContentCache) Purge() {
	c.cache.Purge()
}

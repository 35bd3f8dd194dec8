package clangtool

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes the result of expensive per-invocation work, typically a
// parsed translation unit, keyed by Key. Concurrent requests for the same key
// share one computation. Failures are not cached.
type Cache[V any] struct {
	lru   *lru.Cache[string, V]
	group singleflight.Group
}

func NewCache[V any](size int) (*Cache[V], error) {
	c, err := lru.New[string, V](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lru: c}, nil
}

func (c *Cache[V]) Do(key string, fn func() (V, error)) (V, error) {
	if v, ok := c.lru.Get(key); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.lru.Get(key); ok {
			return v, nil
		}
		v, err := fn()
		if err != nil {
			return v, err
		}
		c.lru.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

package cache

import (
	"time"
)

// MultiLevelCache layers the in-process MemoryCache over an optional
// RedisCache. Reads check L1 first; L2 hits are promoted into L1 with a
// short TTL. With no Redis configured it degrades to a pure memory cache.
type MultiLevelCache struct {
	l1 *MemoryCache
	l2 *RedisCache
}

func NewMultiLevelCache(redisCache *RedisCache) *MultiLevelCache {
	return &MultiLevelCache{
		l1: NewMemoryCache(),
		l2: redisCache,
	}
}

func (c *MultiLevelCache) Set(key string, value interface{}, ttl time.Duration) error {
	if err := c.l1.Set(key, value, ttl); err != nil {
		return err
	}

	if c.l2 != nil {
		return c.l2.Set(key, value, ttl)
	}

	return nil
}

func (c *MultiLevelCache) Get(key string, dest interface{}) error {
	if err := c.l1.Get(key, dest); err == nil {
		return nil
	}

	if c.l2 != nil {
		err := c.l2.Get(key, dest)
		if err == nil {
			c.l1.Set(key, dest, 5*time.Minute)
		}
		return err
	}

	return ErrCacheMiss
}

func (c *MultiLevelCache) Delete(key string) error {
	c.l1.Delete(key)

	if c.l2 != nil {
		return c.l2.Delete(key)
	}

	return nil
}

func (c *MultiLevelCache) DeletePattern(pattern string) error {
	c.l1.DeletePattern(pattern)

	if c.l2 != nil {
		return c.l2.DeletePattern(pattern)
	}

	return nil
}

func (c *MultiLevelCache) Exists(key string) (bool, error) {
	if found, _ := c.l1.Exists(key); found {
		return true, nil
	}

	if c.l2 != nil {
		return c.l2.Exists(key)
	}

	return false, nil
}

func (c *MultiLevelCache) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"l1": c.l1.Stats(),
	}

	if c.l2 != nil {
		stats["l2"] = c.l2.Stats()
	}

	return stats
}

func (c *MultiLevelCache) Health() error {
	if c.l2 != nil {
		return c.l2.Health()
	}

	return nil
}

func (c *MultiLevelCache) Close() error {
	c.l1.Close()

	if c.l2 != nil {
		return c.l2.Close()
	}

	return nil
}

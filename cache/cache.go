package cache

import (
	"context"
	"errors"
	"path"
	"time"

	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"
)

var ErrClientNotInitialized = errors.New("Redis client is not initialized")

// Cache is the key/value cache used by the cache-aside record store.
// Get returns "" with a nil error when the key does not exist.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, pattern string) error
}

// RedisCache implements Cache on a Redis client.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new RedisCache instance, ensuring that the client is not nil.
func NewRedisCache(client *redis.Client) (*RedisCache, error) {
	if client == nil {
		return nil, ErrClientNotInitialized
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *RedisCache) DeleteAll(ctx context.Context, pattern string) error {
	// Use SCAN for better efficiency on large datasets
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil // key does not exist
	}
	return val, err
}

// MemoryCache implements Cache in process. Used when no Redis URL is configured.
type MemoryCache struct {
	items *gocache.Cache
}

func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{items: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	if v, ok := c.items.Get(key); ok {
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return "", nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	c.items.Set(key, value, expiration)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

// DeleteAll removes every key matching the glob pattern.
func (c *MemoryCache) DeleteAll(_ context.Context, pattern string) error {
	for key := range c.items.Items() {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return err
		}
		if matched {
			c.items.Delete(key)
		}
	}
	return nil
}

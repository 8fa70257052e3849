package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

var ErrLockNotOwned = errors.New("lock release failed: not the lock owner")

// Locker hands out short-lived named locks. value identifies the holder.
type Locker interface {
	Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, value string) error
}

const releaseLockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

var releaseScript = redis.NewScript(releaseLockScript)

// RedisLocker implements Locker with SETNX and a compare-and-delete script.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, value, ttl).Result()
}

func (l *RedisLocker) Release(ctx context.Context, key, value string) error {
	result, err := releaseScript.Run(ctx, l.client, []string{key}, value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return ErrLockNotOwned
	}
	return nil
}

// LocalLocker implements Locker inside one process.
type LocalLocker struct {
	mu    sync.Mutex
	locks *gocache.Cache
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: gocache.New(gocache.NoExpiration, time.Minute)}
}

func (l *LocalLocker) Acquire(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.locks.Add(key, value, ttl); err != nil {
		return false, nil
	}
	return true, nil
}

func (l *LocalLocker) Release(_ context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	held, ok := l.locks.Get(key)
	if !ok || held != value {
		return ErrLockNotOwned
	}
	l.locks.Delete(key)
	return nil
}

// WithLock runs fn while holding key, retrying acquisition a few times.
func WithLock(ctx context.Context, locker Locker, key, value string, ttl time.Duration, fn func() error) error {
	const maxRetries = 3
	retryDelay := 200 * time.Millisecond

	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = locker.Acquire(ctx, key, value, ttl)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock %s after retries", key)
	}

	defer func() {
		if err := locker.Release(ctx, key, value); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to release lock")
		}
	}()
	return fn()
}

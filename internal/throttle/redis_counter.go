package throttle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "jobboard:login-attempts"

// RedisCounter is a Counter shared by every instance pointing at the same
// Redis. Keys have no TTL.
type RedisCounter struct {
	client *redis.Client
	prefix string
}

// NewRedisCounter connects a counter to the Redis at addr.
func NewRedisCounter(addr, password, prefix string) (*RedisCounter, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis counter requires an address")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisCounter{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		prefix: prefix,
	}, nil
}

func (c *RedisCounter) key(key string) string {
	return c.prefix + ":" + key
}

// Increment adds one attempt for key and returns the new count.
func (c *RedisCounter) Increment(ctx context.Context, key string) (int64, error) {
	count, err := c.client.Incr(ctx, c.key(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment attempts for %s: %w", key, err)
	}
	return count, nil
}

// Reset zeroes the count for key if it is tracked.
func (c *RedisCounter) Reset(ctx context.Context, key string) error {
	if err := c.client.SetXX(ctx, c.key(key), 0, 0).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to reset attempts for %s: %w", key, err)
	}
	return nil
}

// Close releases the Redis connection pool.
func (c *RedisCounter) Close() error {
	return c.client.Close()
}

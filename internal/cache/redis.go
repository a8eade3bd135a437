package cache

import (
	"context"
	"errors"
	"time"

	"github.com/kdduha/genai-relay/internal/config"
	"github.com/redis/go-redis/v9"
)

const dialTimeout = 2 * time.Second

// RedisCache stores generated results under a configurable key namespace.
// Keys handed in by callers are already hashes of the request parts.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:        cfg.Addr,
			Password:    cfg.Password,
			DB:          cfg.DB,
			DialTimeout: dialTimeout,
		}),
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
	}
}

func (c *RedisCache) resultKey(key string) string {
	return c.prefix + key
}

// Get reports a miss as found=false with a nil error.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	result, err := c.client.Get(ctx, c.resultKey(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, result string) error {
	return c.client.Set(ctx, c.resultKey(key), result, c.ttl).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

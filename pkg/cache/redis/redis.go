// Package redis implements the cache interface on top of go-redis. It exists
// for deployments where several exporter replicas should share one warm
// cache; a restart then serves data immediately instead of answering 503
// until the first refresh completes.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	goredis "github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type RedisCache struct {
	client *goredis.Client
}

func NewCache(cfg *Config) (*RedisCache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("missing redis address for cache backend")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("failed to instrument redis client: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// NewCacheWithClient wraps an existing client. Used by tests with miniredis.
func NewCacheWithClient(client *goredis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (interface{}, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("key %q not found in cache: %w", key, err)
	}
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0 // redis treats zero as no expiration
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Package inmemory implements the cache interface on top of
// patrickmn/go-cache. This is the default backend: the exporter only keeps
// three small CSV blobs, so process memory is plenty.
package inmemory

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Config tunes the underlying go-cache instance. Durations are in seconds;
// zero values fall back to sane defaults.
type Config struct {
	DefaultExpiration int
	CleanupInterval   int
}

const (
	defaultExpirationSeconds = 0 // no expiration
	defaultCleanupSeconds    = 600
)

type InMemoryCache struct {
	cache *gocache.Cache
}

func NewCache(cfg *Config) (*InMemoryCache, error) {
	expiration := gocache.NoExpiration
	if cfg.DefaultExpiration > defaultExpirationSeconds {
		expiration = time.Duration(cfg.DefaultExpiration) * time.Second
	}
	cleanup := time.Duration(defaultCleanupSeconds) * time.Second
	if cfg.CleanupInterval > 0 {
		cleanup = time.Duration(cfg.CleanupInterval) * time.Second
	}

	return &InMemoryCache{
		cache: gocache.New(expiration, cleanup),
	}, nil
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, error) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, fmt.Errorf("key %q not found in cache", key)
	}
	return val, nil
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl < 0 {
		ttl = gocache.NoExpiration
	}
	c.cache.Set(key, value, ttl)
	return nil
}

func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

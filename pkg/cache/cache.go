/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cache defines the key-value cache abstraction backing the dataset
// store, with in-memory and Redis implementations selected by configuration.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/beemotools/beemo-exporter/pkg/cache/inmemory"
	"github.com/beemotools/beemo-exporter/pkg/cache/redis"
	"github.com/beemotools/beemo-exporter/pkg/config"
)

// NoExpiration keeps an entry until it is overwritten or deleted.
const NoExpiration time.Duration = -1

// Cache is the minimal key-value surface the store needs. Implementations do
// not synchronize callers; the store holds its own lock.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// New builds the cache backend named by the configuration.
func New(cfg *config.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case config.CacheBackendInMemory, "":
		return inmemory.NewCache(&inmemory.Config{})
	case config.CacheBackendRedis:
		return redis.NewCache(&redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unsupported cache backend: %q", cfg.Backend)
	}
}

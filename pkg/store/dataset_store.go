// Package store keeps the latest published CSV text per dataset on top of a
// cache backend, behind the single lock shared by the refresh job and the
// HTTP handlers.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/beemotools/beemo-exporter/pkg/cache"
)

// Interface is the store surface the HTTP handlers consume.
type Interface interface {
	// Get returns the cached CSV text for a dataset. The second return
	// value is false while the dataset has never been refreshed.
	Get(ctx context.Context, name string) (string, bool, error)

	// Set replaces a dataset's CSV text wholesale.
	Set(ctx context.Context, name, csvText string) error
}

// DatasetStore serializes every access on one mutex: the refresh job is the
// sole writer, the HTTP handlers are readers, and neither distinguishes read
// from write locking.
type DatasetStore struct {
	mu    sync.Mutex
	cache cache.Cache
}

var _ Interface = (*DatasetStore)(nil)

func New(c cache.Cache) *DatasetStore {
	return &DatasetStore{cache: c}
}

// datasetKey returns the prefixed cache key for a dataset.
func datasetKey(name string) string {
	return "dataset:" + name
}

func (s *DatasetStore) Get(ctx context.Context, name string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, err := s.cache.Get(ctx, datasetKey(name))
	if err != nil {
		// Not populated yet; not an error condition.
		return "", false, nil
	}
	text, ok := val.(string)
	if !ok {
		return "", false, fmt.Errorf("unexpected cache value type %T for dataset %q", val, name)
	}
	return text, true, nil
}

func (s *DatasetStore) Set(ctx context.Context, name, csvText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cache.Set(ctx, datasetKey(name), csvText, cache.NoExpiration); err != nil {
		return fmt.Errorf("failed to cache dataset %q: %w", name, err)
	}
	return nil
}

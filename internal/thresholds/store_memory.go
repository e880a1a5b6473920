package thresholds

import (
	"context"
	"sync"
)

// InMemoryFetcher holds raw config rows in memory for tests/dev.
type InMemoryFetcher struct {
	mu   sync.RWMutex
	rows map[string]RawConfig
}

// NewInMemoryFetcher constructs an empty in-memory settings fetcher.
func NewInMemoryFetcher() *InMemoryFetcher {
	return &InMemoryFetcher{rows: make(map[string]RawConfig)}
}

// SetConfig stores a raw config row under a key.
func (f *InMemoryFetcher) SetConfig(key string, raw RawConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[key] = raw
}

func (f *InMemoryFetcher) FetchConfig(_ context.Context, key string) (RawConfig, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.rows[key], nil
}

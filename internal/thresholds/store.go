package thresholds

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Fetcher reads one named raw configuration row from the external settings
// store. Returning (nil, nil) means the row is absent.
type Fetcher interface {
	FetchConfig(ctx context.Context, key string) (RawConfig, error)
}

// Store serves a threshold set from a TTL cache over the settings store.
//
// Fail-open by design: a fetch error or an absent row yields the built-in
// defaults, and that result is cached like any other so a transient outage
// does not turn into a fetch storm. Get never returns an error; degraded
// config must not become an evaluation outage.
type Store struct {
	fetcher Fetcher
	key     string
	ttl     time.Duration
	logger  *slog.Logger

	mu        sync.Mutex
	cached    Set
	fetchedAt time.Time
}

// NewStore constructs a cached threshold store for one settings key.
func NewStore(fetcher Fetcher, key string, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		fetcher: fetcher,
		key:     key,
		ttl:     ttl,
		logger:  logger,
	}
}

// Get returns the current threshold set, fetching and merging over defaults
// on cache miss. On hit no I/O is performed.
func (s *Store) Get(ctx context.Context) Set {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.cached != nil && now.Sub(s.fetchedAt) < s.ttl {
		return s.cached
	}

	defaults := DefaultsFor(s.key)
	merged := defaults
	if s.fetcher != nil {
		raw, err := s.fetcher.FetchConfig(ctx, s.key)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "threshold config fetch failed, using defaults",
				"key", s.key,
				"error", err,
			)
		case raw != nil:
			merged = raw.Merge(defaults)
		}
	}

	s.cached = merged
	s.fetchedAt = now
	return s.cached
}

// Invalidate clears the cache unconditionally. Call it after any write to the
// settings store so the next Get refetches.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.fetchedAt = time.Time{}
}

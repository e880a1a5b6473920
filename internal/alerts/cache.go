package alerts

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"vigil/internal/alerts/metrics"
	"vigil/internal/entities"
	"vigil/pkg/platform/sentinel"
)

// Cache memoizes generated alert lists per entity kind and coalesces
// concurrent generation requests.
//
// A cached list is served only while it is younger than the TTL and its
// input signature still matches the caller's entity snapshot. Anything else
// is a miss. Misses for the same kind share a single in-flight generation:
// every caller that arrives while one is running receives the identical
// result slice, so exactly one generation pass runs no matter how many
// requests race.
type Cache struct {
	ttl     time.Duration
	metrics *metrics.Metrics

	group singleflight.Group

	mu    sync.Mutex
	slots map[entities.Kind]*cacheEntry
}

type cacheEntry struct {
	alerts    []AlertRecord
	signature uint64
	fetchedAt time.Time
}

// NewCache constructs a cache with one slot per entity kind.
func NewCache(ttl time.Duration, m *metrics.Metrics) *Cache {
	return &Cache{
		ttl:     ttl,
		metrics: m,
		slots:   make(map[entities.Kind]*cacheEntry),
	}
}

// Signature derives a cheap content signature from an entity snapshot:
// FNV-1a over ids and expiry dates. Unlike a bare entity count it changes
// whenever any tracked date changes, so an edit within the TTL window is
// still detected.
func Signature(ents []entities.Entity) uint64 {
	h := fnv.New64a()
	for _, e := range ents {
		h.Write([]byte(e.ID))
		for _, doc := range entities.DocumentTypesFor(e.Kind) {
			if exp, ok := e.ExpiryFor(doc); ok {
				h.Write([]byte(doc))
				h.Write([]byte(exp.Format("2006-01-02")))
			}
		}
	}
	return h.Sum64()
}

// GetOrGenerate returns the cached alert list when it is fresh and matches
// the signature, otherwise runs generate under single-flight coalescing and
// stores the result. With force set the freshness check is skipped but the
// call still coalesces onto any in-flight generation.
//
// A generation that exceeds its deadline fails every coalesced caller with
// sentinel.ErrTimeout instead of hanging the queue.
func (c *Cache) GetOrGenerate(
	ctx context.Context,
	kind entities.Kind,
	signature uint64,
	force bool,
	generate func(ctx context.Context) ([]AlertRecord, error),
) ([]AlertRecord, error) {
	if !force {
		if alerts, ok := c.lookup(kind, signature); ok {
			c.metrics.IncrementCacheHit(string(kind))
			return alerts, nil
		}
	}
	c.metrics.IncrementCacheMiss(string(kind))

	v, err, shared := c.group.Do(string(kind), func() (any, error) {
		// A flight that finished while this caller was queueing may already
		// have stored a matching entry.
		if !force {
			if alerts, ok := c.lookup(kind, signature); ok {
				return alerts, nil
			}
		}

		alerts, err := generate(ctx)
		if err != nil {
			return nil, err
		}
		c.store(kind, signature, alerts)
		return alerts, nil
	})
	if shared {
		c.metrics.IncrementCoalesced(string(kind))
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("alert generation for %s: %w", kind, sentinel.ErrTimeout)
		}
		return nil, err
	}
	return v.([]AlertRecord), nil
}

// Invalidate clears one kind's slot immediately. Call it after any write
// that could change tracked entities.
func (c *Cache) Invalidate(kind entities.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.slots, kind)
}

// InvalidateAll clears both slots.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots = make(map[entities.Kind]*cacheEntry)
}

func (c *Cache) lookup(kind entities.Kind, signature uint64) ([]AlertRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.slots[kind]
	if !ok {
		return nil, false
	}
	if time.Since(entry.fetchedAt) >= c.ttl || entry.signature != signature {
		return nil, false
	}
	return entry.alerts, true
}

func (c *Cache) store(kind entities.Kind, signature uint64, alerts []AlertRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[kind] = &cacheEntry{
		alerts:    alerts,
		signature: signature,
		fetchedAt: time.Now(),
	}
}

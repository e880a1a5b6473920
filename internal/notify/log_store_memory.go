package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vigil/internal/entities"
)

// InMemoryLogStore keeps notification log entries in memory for tests/dev.
type InMemoryLogStore struct {
	mu      sync.RWMutex
	entries []LogEntry
	byDay   map[string]struct{}
}

// NewInMemoryLogStore constructs an empty in-memory notification log.
func NewInMemoryLogStore() *InMemoryLogStore {
	return &InMemoryLogStore{byDay: make(map[string]struct{})}
}

func dayKey(entityID string, doc entities.DocumentType, expiry, day time.Time) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		entityID, doc, expiry.Format("2006-01-02"), day.Format("2006-01-02"))
}

func (s *InMemoryLogStore) ExistsToday(_ context.Context, entityID string, doc entities.DocumentType, expiry, day time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byDay[dayKey(entityID, doc, expiry, day)]
	return ok, nil
}

func (s *InMemoryLogStore) Append(_ context.Context, entry LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	s.byDay[dayKey(entry.EntityID, entry.DocumentType, entry.ExpiryDate, entry.SentAt)] = struct{}{}
	return nil
}

// Entries returns a copy of the appended log for assertions.
func (s *InMemoryLogStore) Entries() []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

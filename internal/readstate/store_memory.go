package readstate

import (
	"context"
	"sync"
)

// InMemoryStore keeps read-state sets in memory for tests/dev.
type InMemoryStore struct {
	mu   sync.RWMutex
	read map[string]map[string]struct{}
}

// NewInMemoryStore constructs an empty in-memory read-state store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{read: make(map[string]map[string]struct{})}
}

func (s *InMemoryStore) MarkRead(_ context.Context, userID, alertID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.read[userID]
	if !ok {
		set = make(map[string]struct{})
		s.read[userID] = set
	}
	set[alertID] = struct{}{}
	return nil
}

func (s *InMemoryStore) List(_ context.Context, userID string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.read[userID]))
	for id := range s.read[userID] {
		out[id] = struct{}{}
	}
	return out, nil
}

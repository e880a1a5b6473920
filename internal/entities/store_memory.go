package entities

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore stores tracked entities in memory for tests/dev.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Entity
	order   []string
}

// NewInMemoryStore constructs an empty in-memory entity store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]Entity)}
}

// Put inserts or replaces an entity snapshot. Insertion order is retained so
// List output is deterministic across calls with unchanged contents.
func (s *InMemoryStore) Put(_ context.Context, entity Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[entity.ID]; !ok {
		s.order = append(s.order, entity.ID)
	}
	s.records[entity.ID] = entity
	return nil
}

func (s *InMemoryStore) List(_ context.Context, kind Kind) ([]Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entity
	for _, id := range s.order {
		e := s.records[id]
		if e.Kind != kind {
			continue
		}
		out = append(out, cloneEntity(e))
	}
	return out, nil
}

func cloneEntity(e Entity) Entity {
	if e.Expiries == nil {
		return e
	}
	expiries := make(map[DocumentType]time.Time, len(e.Expiries))
	for doc, exp := range e.Expiries {
		expiries[doc] = exp
	}
	e.Expiries = expiries
	return e
}

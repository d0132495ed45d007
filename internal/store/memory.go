package store

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/stackgarden/stackgarden/internal/snapshot"
)

// MemoryStore is the in-process StateStore. It backs local development and
// tests, and is the default when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	clock   clockwork.Clock
	records map[string]Record
}

func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		clock:   clock,
		records: make(map[string]Record),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (s *MemoryStore) Put(_ context.Context, userID string, state snapshot.CloudState) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	s.records[userID] = Record{State: state, UpdatedAt: now}
	return now, nil
}

// Len reports the number of stored users.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

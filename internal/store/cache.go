package store

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/stackgarden/stackgarden/internal/snapshot"
)

const (
	// DefaultCacheSize bounds the number of cached user snapshots.
	DefaultCacheSize = 1024

	// DefaultCacheTTL expires cached entries that a write never refreshed.
	DefaultCacheTTL = 5 * time.Minute
)

// CachedStore is a read-through cache in front of a StateStore. Writes go
// straight through and refresh the cached entry, so a user always reads
// their own latest write from this process.
type CachedStore struct {
	inner StateStore
	lru   *expirable.LRU[string, Record]
}

func NewCachedStore(inner StateStore, size int, ttl time.Duration) *CachedStore {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{
		inner: inner,
		lru:   expirable.NewLRU[string, Record](size, nil, ttl),
	}
}

func (s *CachedStore) Get(ctx context.Context, userID string) (*Record, error) {
	if rec, ok := s.lru.Get(userID); ok {
		out := rec
		return &out, nil
	}

	rec, err := s.inner.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		s.lru.Add(userID, *rec)
	}
	return rec, nil
}

func (s *CachedStore) Put(ctx context.Context, userID string, state snapshot.CloudState) (time.Time, error) {
	updatedAt, err := s.inner.Put(ctx, userID, state)
	if err != nil {
		// A failed write must not leave a stale entry claiming success.
		s.lru.Remove(userID)
		return time.Time{}, err
	}
	s.lru.Add(userID, Record{State: state, UpdatedAt: updatedAt})
	return updatedAt, nil
}

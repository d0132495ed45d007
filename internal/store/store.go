// Package store persists the per-user cloud state snapshot. Writes are
// best-effort last-write-wins: the payload is the app's own last-known-good
// state, so there is no conflict detection and no cross-user transaction.
package store

import (
	"context"
	"time"

	"github.com/stackgarden/stackgarden/internal/snapshot"
)

// Record is a stored snapshot tagged with its last-write timestamp.
type Record struct {
	State     snapshot.CloudState
	UpdatedAt time.Time
}

// StateStore is the persistence boundary for user snapshots.
//
// Get returns (nil, nil) for a user with no stored state yet; "no such user"
// is not an error. Put is an idempotent upsert: re-sending the same state
// produces the same stored result with a refreshed timestamp.
type StateStore interface {
	Get(ctx context.Context, userID string) (*Record, error)
	Put(ctx context.Context, userID string, state snapshot.CloudState) (time.Time, error)
}

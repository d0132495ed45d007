package session

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/stackgarden/stackgarden/internal/domain"
	"github.com/stackgarden/stackgarden/internal/event"
	"github.com/stackgarden/stackgarden/internal/history"
	"github.com/stackgarden/stackgarden/internal/logger"
	"github.com/stackgarden/stackgarden/internal/snapshot"
)

// syncConcurrency bounds parallel cloud writes during a dirty sweep.
const syncConcurrency = 4

func (s *service) Progress(_ context.Context, userID string) domain.UserProgress {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()
	return copyProgress(u.progress)
}

func (s *service) History(_ context.Context, userID string) (history.Buckets, history.Statistics) {
	u := s.user(userID)
	u.mu.Lock()
	sessions := append([]domain.Session(nil), u.progress.SessionHistory...)
	u.mu.Unlock()

	now := s.clock.Now()
	return history.GroupByDate(sessions, now), history.ComputeStatistics(sessions, now)
}

func (s *service) SetGoalAdvice(_ context.Context, userID string, advice domain.GoalAdvice) (domain.GoalAdvice, error) {
	for _, id := range advice.RecommendedItems {
		if _, ok := s.catalog.Item(id); !ok {
			return domain.GoalAdvice{}, fmt.Errorf("%w: recommended item %s", domain.ErrItemNotFound, id)
		}
	}
	if advice.CreatedAt.IsZero() {
		advice.CreatedAt = s.clock.Now()
	}

	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()
	u.advice = &advice
	return advice, nil
}

func (s *service) GoalAdvice(_ context.Context, userID string) (domain.GoalAdvice, bool) {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.advice == nil {
		return domain.GoalAdvice{}, false
	}
	return *u.advice, true
}

func (s *service) ClearGoalAdvice(_ context.Context, userID string) {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()
	u.advice = nil
}

func (s *service) Export(_ context.Context, userID string) snapshot.ExportFile {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()
	return snapshot.BuildExport(u.progress, u.arch.Components, u.arch.Connections, s.clock.Now())
}

// Import replaces the user's progress and canvas with a validated backup
// file. A rejected file leaves the current state untouched.
func (s *service) Import(ctx context.Context, userID string, data []byte) error {
	restored, verr := snapshot.ApplyExport(data)
	if verr != nil {
		return verr
	}

	u := s.user(userID)
	u.mu.Lock()
	u.progress = restored.Progress
	u.arch.Components = restored.PlacedComponents
	u.arch.Connections = restored.Connections
	u.dirty = true
	u.mu.Unlock()

	logger.FromContext(ctx).Info("state imported",
		"user_id", userID,
		"sessions", len(restored.Progress.SessionHistory))
	return nil
}

// Sync writes the user's snapshot to the state store. Best effort: the
// error is reported but the local state is already committed and a failed
// write is retried on the next dirty sweep.
func (s *service) Sync(ctx context.Context, userID string) error {
	u := s.user(userID)
	u.mu.Lock()
	state := snapshot.BuildCloudState(u.progress, u.arch.Components, u.arch.Connections)
	u.dirty = false
	u.mu.Unlock()

	_, err := s.stateStore.Put(ctx, userID, state)
	if err != nil {
		u.mu.Lock()
		u.dirty = true
		u.mu.Unlock()
		logger.FromContext(ctx).Warn("cloud sync failed", "user_id", userID, "error", err)
	}
	s.publish(ctx, event.NewSyncEvent(userID, err))
	return err
}

// SyncDirty writes every user whose state changed since the last sweep.
// Driven by the scheduler; failures are left dirty for the next sweep.
func (s *service) SyncDirty(ctx context.Context) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.users))
	for id, u := range s.users {
		u.mu.Lock()
		if u.dirty {
			ids = append(ids, id)
		}
		u.mu.Unlock()
	}
	s.mu.Unlock()

	// Last write wins; failed users stay dirty.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(syncConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			_ = s.Sync(gctx, id)
			return nil
		})
	}
	_ = g.Wait()
}

// LoadFromStore hydrates a user from their stored snapshot. A user with no
// stored state keeps the fresh empty state; that is not an error.
func (s *service) LoadFromStore(ctx context.Context, userID string) error {
	rec, err := s.stateStore.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user state: %w", err)
	}
	if rec == nil {
		return nil
	}

	restored := snapshot.RestoreCloudState(rec.State)

	u := s.user(userID)
	u.mu.Lock()
	u.progress = restored.Progress
	u.arch.Components = restored.PlacedComponents
	u.arch.Connections = restored.Connections
	u.dirty = false
	u.mu.Unlock()

	logger.FromContext(ctx).Info("state loaded",
		"user_id", userID,
		"updated_at", rec.UpdatedAt)
	return nil
}

func copyProgress(p domain.UserProgress) domain.UserProgress {
	out := p
	out.OwnedComponents = append([]string(nil), p.OwnedComponents...)
	out.SessionHistory = append([]domain.Session(nil), p.SessionHistory...)
	return out
}

package session

import (
	"context"
	"slices"

	"github.com/stackgarden/stackgarden/internal/agent"
	"github.com/stackgarden/stackgarden/internal/credit"
	"github.com/stackgarden/stackgarden/internal/domain"
	"github.com/stackgarden/stackgarden/internal/event"
	"github.com/stackgarden/stackgarden/internal/history"
	"github.com/stackgarden/stackgarden/internal/logger"
	"github.com/stackgarden/stackgarden/internal/timer"
)

func (s *service) StartSession(ctx context.Context, userID string, durationSeconds int) (domain.TimerState, error) {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	state, err := u.timer.Start(durationSeconds)
	if err != nil {
		return domain.TimerState{}, err
	}

	logger.FromContext(ctx).Info("session started",
		"user_id", userID,
		"duration", durationSeconds)
	s.publish(ctx, event.NewSessionStartedEvent(userID, durationSeconds))
	return state, nil
}

func (s *service) PauseSession(_ context.Context, userID string) (domain.TimerState, error) {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	state, ok := u.timer.Pause()
	if !ok {
		return domain.TimerState{}, domain.ErrNoActiveTimer
	}
	return state, nil
}

func (s *service) ResumeSession(_ context.Context, userID string) (domain.TimerState, error) {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	state, ok := u.timer.Resume()
	if !ok {
		return domain.TimerState{}, domain.ErrNoActiveTimer
	}
	return state, nil
}

func (s *service) TimerState(_ context.Context, userID string) (domain.TimerState, bool) {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.timer.Current()
}

func (s *service) CompleteSession(ctx context.Context, userID string) (Outcome, error) {
	u := s.user(userID)
	u.mu.Lock()
	outcome, ok := s.endSessionLocked(u, true)
	u.mu.Unlock()
	if !ok {
		return Outcome{}, domain.ErrNoActiveTimer
	}

	s.afterSessionEnd(ctx, userID, outcome)
	return outcome, nil
}

func (s *service) AbandonSession(ctx context.Context, userID string) (Outcome, error) {
	u := s.user(userID)
	u.mu.Lock()
	outcome, ok := s.endSessionLocked(u, false)
	u.mu.Unlock()
	if !ok {
		return Outcome{}, domain.ErrNoActiveTimer
	}

	s.afterSessionEnd(ctx, userID, outcome)
	return outcome, nil
}

// TickAll advances every live timer by one scheduler period. A timer that
// reaches zero completes its session in the same step.
func (s *service) TickAll(ctx context.Context) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		u := s.user(id)
		u.mu.Lock()
		before, running := u.timer.Current()
		state, ok := u.timer.Tick()
		if !ok {
			u.mu.Unlock()
			continue
		}
		if timer.IsSessionComplete(state) {
			outcome, ended := s.endSessionLocked(u, true)
			u.mu.Unlock()
			if ended {
				s.afterSessionEnd(ctx, id, outcome)
			}
			continue
		}
		crossed := running && !timer.IsFinalMinute(before) && timer.IsFinalMinute(state)
		u.mu.Unlock()

		if crossed {
			// The dispatcher's in-flight guard drops the message if a
			// previous final-minute call is still outstanding.
			s.wg.Add(1)
			go func(userID string) {
				defer s.wg.Done()
				s.CoachMessage(ctx, userID, agent.ModeFinalMinute)
			}(id)
		}
	}
}

// endSessionLocked applies the whole end-of-session transition under the
// user lock: drain the timer slot, award credits, append history, refresh
// the streak and aggregates. Callers publish events after unlocking.
func (s *service) endSessionLocked(u *userState, completed bool) (Outcome, bool) {
	// Drift-correct the remaining time first so the recorded duration
	// reflects wall-clock elapsed time even between scheduler ticks.
	u.timer.Tick()
	sess, ok := u.timer.Finish(completed)
	if !ok {
		return Outcome{}, false
	}

	now := s.clock.Now()

	// The just-ended session counts toward the streak used for its own
	// award, so a completion today extends yesterday's chain immediately.
	candidate := append(slices.Clone(u.progress.SessionHistory), sess)
	streak := history.ComputeStreak(candidate, now)

	breakdown := credit.TotalCredits(sess, streak)
	sess.CreditsEarned = breakdown.Total
	sess.Bonuses = domain.Bonuses{
		Completion:  breakdown.Completion,
		Streak:      breakdown.Streak,
		LongSession: breakdown.LongSession,
	}

	u.progress.SessionHistory = append(u.progress.SessionHistory, sess)
	u.progress.Credits += breakdown.Total
	u.progress.TotalSessionTime += sess.Duration
	u.progress.CurrentStreak = streak
	if completed {
		u.progress.SessionsCompleted++
		u.progress.LastSessionDate = domain.LocalDate(sess.StartTime)
	}
	u.dirty = true

	return Outcome{
		Session:   sess,
		Breakdown: breakdown,
		Streak:    streak,
		Credits:   u.progress.Credits,
	}, true
}

func (s *service) afterSessionEnd(ctx context.Context, userID string, outcome Outcome) {
	logger.FromContext(ctx).Info("session ended",
		"user_id", userID,
		"session_id", outcome.Session.ID,
		"completed", outcome.Session.Completed,
		"credits_earned", outcome.Session.CreditsEarned,
		"streak", outcome.Streak)

	s.publish(ctx, event.NewSessionEndedEvent(
		userID,
		outcome.Session.ID,
		outcome.Session.Duration,
		outcome.Session.PauseCount,
		outcome.Session.CreditsEarned,
		outcome.Streak,
		outcome.Session.Completed,
	))
}

package session

import (
	"context"

	"github.com/stackgarden/stackgarden/internal/agent"
	"github.com/stackgarden/stackgarden/internal/domain"
	"github.com/stackgarden/stackgarden/internal/event"
	"github.com/stackgarden/stackgarden/internal/history"
)

// CoachMessage requests a persona message for the given mode, feeding the
// persona a read-only summary of the user's state. All failure handling
// lives in the dispatcher; the caller always gets a complete response
// unless the in-flight guard suppressed the call.
func (s *service) CoachMessage(ctx context.Context, userID string, mode agent.Mode) (agent.Response, agent.Outcome) {
	req := agent.Request{Mode: mode}
	if agent.PersonaFor(mode) == agent.PersonaAdvisor {
		summary := s.architectureSummary(userID)
		req.Architecture = &summary
	} else {
		summary := s.sessionSummary(userID)
		req.Session = &summary
	}

	resp, outcome := s.dispatcher.Dispatch(ctx, req)
	if outcome != agent.OutcomeSuppressed {
		s.publish(ctx, event.NewAgentMessageEvent(userID, string(mode), string(outcome)))
	}
	return resp, outcome
}

// WelcomeBack fires the proactive welcome-back message if the cooldown
// gate allows it. Returns false when the gate is closed.
func (s *service) WelcomeBack(ctx context.Context, userID string) (agent.Response, bool) {
	if !s.welcome.TryFire() {
		return agent.Response{}, false
	}
	resp, outcome := s.CoachMessage(ctx, userID, agent.ModeWelcomeBack)
	if outcome == agent.OutcomeSuppressed {
		return agent.Fallback(agent.ModeWelcomeBack), true
	}
	return resp, true
}

func (s *service) sessionSummary(userID string) agent.SessionSummary {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	sessions := u.progress.SessionHistory
	stats := history.ComputeStatistics(sessions, s.clock.Now())

	summary := agent.SessionSummary{
		RecentSessions:    stats.TotalSessions,
		CompletedSessions: u.progress.SessionsCompleted,
		CompletionRate:    stats.CompletionRate,
		CurrentStreak:     u.progress.CurrentStreak,
	}
	if len(sessions) > 0 {
		last := sessions[len(sessions)-1]
		summary.LastDuration = last.Duration
		summary.LastCompleted = last.Completed
		summary.LastPauseCount = last.PauseCount
		summary.CreditsEarned = last.CreditsEarned
	}
	return summary
}

func (s *service) architectureSummary(userID string) agent.ArchitectureSummary {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	return agent.ArchitectureSummary{
		Credits:         u.progress.Credits,
		OwnedComponents: append([]string(nil), u.progress.OwnedComponents...),
		Placed:          append([]domain.PlacedComponent(nil), u.arch.Components...),
		Connections:     append([]domain.Connection(nil), u.arch.Connections...),
	}
}

// Package timer implements the countdown state machine. All operations are
// total functions over well-formed TimerState values: calls that are not
// eligible (pausing a paused timer, ticking an inactive one) return the
// state unchanged rather than erroring.
package timer

import (
	"math"

	"github.com/jonboulle/clockwork"

	"github.com/stackgarden/stackgarden/internal/domain"
)

// DriftToleranceSeconds is the skew threshold beyond which a tick snaps to
// wall-clock truth instead of decrementing. A consistently running 1s
// scheduler never trips it; a suspended or throttled host does.
const DriftToleranceSeconds = 2

// FinalMinuteSeconds marks the start of the final-minute warning window.
const FinalMinuteSeconds = 60

// Engine advances TimerState values against an injected clock.
type Engine struct {
	clock clockwork.Clock
}

// NewEngine creates an engine on the given clock. Tests pass a fake clock.
func NewEngine(clock clockwork.Clock) *Engine {
	return &Engine{clock: clock}
}

// Start returns a fresh active TimerState for the requested duration.
// The product layer restricts durations to a preset list; the engine only
// requires a positive number of seconds.
func (e *Engine) Start(durationSeconds int) (domain.TimerState, error) {
	if durationSeconds <= 0 {
		return domain.TimerState{}, domain.ErrInvalidDuration
	}
	return domain.TimerState{
		IsActive:      true,
		TimeRemaining: durationSeconds,
		TotalDuration: durationSeconds,
		StartTime:     e.clock.Now(),
	}, nil
}

// Pause marks the timer paused and records when. No-op unless the timer is
// active and running.
func (e *Engine) Pause(s domain.TimerState) domain.TimerState {
	if !s.IsActive || s.IsPaused {
		return s
	}
	now := e.clock.Now()
	s.IsPaused = true
	s.PausedAt = &now
	s.PauseCount++
	return s
}

// Resume folds the time spent paused into TotalPausedTime so it never counts
// against the countdown. No-op unless the timer is active and paused.
func (e *Engine) Resume(s domain.TimerState) domain.TimerState {
	if !s.IsActive || !s.IsPaused {
		return s
	}
	if s.PausedAt != nil {
		s.TotalPausedTime += e.clock.Now().Sub(*s.PausedAt)
	}
	s.PausedAt = nil
	s.IsPaused = false
	return s
}

// Tick advances the countdown by one nominal second, self-correcting against
// the wall clock whenever skew exceeds DriftToleranceSeconds. This is what
// keeps the timer honest when the host scheduler stalls.
func (e *Engine) Tick(s domain.TimerState) domain.TimerState {
	if !s.IsActive || s.IsPaused {
		return s
	}

	elapsed := e.clock.Now().Sub(s.StartTime) - s.TotalPausedTime
	// Floor the difference, not the elapsed time: with fractional elapsed
	// the two differ by one second.
	expected := int(math.Floor(float64(s.TotalDuration) - elapsed.Seconds()))
	naive := s.TimeRemaining - 1

	diff := naive - expected
	if diff < 0 {
		diff = -diff
	}

	if diff > DriftToleranceSeconds {
		s.TimeRemaining = clampNonNegative(expected)
	} else {
		s.TimeRemaining = clampNonNegative(naive)
	}
	return s
}

// IsSessionComplete reports whether an active countdown has run out.
func IsSessionComplete(s domain.TimerState) bool {
	return s.IsActive && s.TimeRemaining <= 0
}

// IsFinalMinute reports whether the countdown is inside its last minute.
func IsFinalMinute(s domain.TimerState) bool {
	return s.TimeRemaining > 0 && s.TimeRemaining <= FinalMinuteSeconds
}

// Progress returns percent complete in [0,100].
func Progress(s domain.TimerState) float64 {
	if s.TotalDuration <= 0 {
		return 0
	}
	p := float64(s.TotalDuration-s.TimeRemaining) / float64(s.TotalDuration) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Elapsed returns the active seconds consumed so far. Used for the
// partial-credit computation on abandonment.
func Elapsed(s domain.TimerState) int {
	return s.TotalDuration - s.TimeRemaining
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

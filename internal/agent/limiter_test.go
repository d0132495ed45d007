package agent

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterBudget(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := NewRateLimiter(3, clock)

	assert.True(t, limiter.CanSendRequest())
	for i := 0; i < 3; i++ {
		require.True(t, limiter.Consume(), "request %d should fit the budget", i)
	}
	assert.False(t, limiter.CanSendRequest())
	assert.False(t, limiter.Consume())
	assert.Equal(t, 0, limiter.Remaining())
}

func TestRateLimiterRollingWindow(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := NewRateLimiter(2, clock)

	require.True(t, limiter.Consume())
	clock.Advance(30 * time.Minute)
	require.True(t, limiter.Consume())
	assert.False(t, limiter.CanSendRequest())

	// The window opened at the first request, so 59 minutes in it is
	// still closed.
	clock.Advance(29 * time.Minute)
	assert.False(t, limiter.CanSendRequest())

	clock.Advance(time.Minute)
	assert.True(t, limiter.CanSendRequest())
	assert.Equal(t, 2, limiter.Remaining())
}

func TestRateLimiterWindowAnchoredOnFirstRequest(t *testing.T) {
	clock := clockwork.NewFakeClock()
	limiter := NewRateLimiter(1, clock)

	// Idle time before the first request must not pre-age the window.
	clock.Advance(2 * time.Hour)
	require.True(t, limiter.Consume())
	clock.Advance(59 * time.Minute)
	assert.False(t, limiter.CanSendRequest())
	clock.Advance(time.Minute)
	assert.True(t, limiter.CanSendRequest())
}

func TestRateLimiterDefaultBudget(t *testing.T) {
	limiter := NewRateLimiter(0, clockwork.NewFakeClock())
	assert.Equal(t, DefaultHourlyBudget, limiter.Remaining())
}

func TestWelcomeBackFiresOncePerProcess(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gate := NewWelcomeBackGate(clock)

	assert.True(t, gate.TryFire())
	assert.False(t, gate.TryFire())

	// Even well past the five-minute window it stays closed for the
	// lifetime of the gate.
	clock.Advance(time.Hour)
	assert.False(t, gate.TryFire())
}

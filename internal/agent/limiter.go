package agent

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// DefaultHourlyBudget caps persona requests per rolling hour.
	DefaultHourlyBudget = 20

	rateWindow = time.Hour

	// WelcomeBackWindow is the minimum gap between welcome-back messages.
	WelcomeBackWindow = 5 * time.Minute
)

// RateLimiter enforces a rolling one-hour request budget. The window opens
// on the first counted request and resets once a full hour has elapsed
// since it opened, not on a clock boundary.
type RateLimiter struct {
	mu          sync.Mutex
	clock       clockwork.Clock
	budget      int
	count       int
	windowStart time.Time
}

func NewRateLimiter(budget int, clock clockwork.Clock) *RateLimiter {
	if budget <= 0 {
		budget = DefaultHourlyBudget
	}
	return &RateLimiter{clock: clock, budget: budget}
}

// CanSendRequest reports whether a dispatch is currently permitted. It does
// not consume budget.
func (r *RateLimiter) CanSendRequest() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roll()
	return r.count < r.budget
}

// Consume counts one request against the window. Returns false without
// counting when the budget is exhausted.
func (r *RateLimiter) Consume() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roll()
	if r.count >= r.budget {
		return false
	}
	if r.count == 0 {
		r.windowStart = r.clock.Now()
	}
	r.count++
	return true
}

// Remaining reports the unconsumed budget in the current window.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roll()
	return r.budget - r.count
}

func (r *RateLimiter) roll() {
	if r.count > 0 && r.clock.Since(r.windowStart) >= rateWindow {
		r.count = 0
	}
}

// WelcomeBackGate governs the single proactive welcome-back message. It
// fires at most once per process and never twice within WelcomeBackWindow.
type WelcomeBackGate struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	fired     bool
	lastFired time.Time
}

func NewWelcomeBackGate(clock clockwork.Clock) *WelcomeBackGate {
	return &WelcomeBackGate{clock: clock}
}

// TryFire reports whether the welcome-back message may be shown now, and
// records the firing when it may.
func (g *WelcomeBackGate) TryFire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fired {
		return false
	}
	if !g.lastFired.IsZero() && g.clock.Since(g.lastFired) < WelcomeBackWindow {
		return false
	}
	g.fired = true
	g.lastFired = g.clock.Now()
	return true
}

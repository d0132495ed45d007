package timer

import (
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/stackgarden/stackgarden/internal/domain"
)

// Controller owns the single optional live timer slot for one user. Start is
// rejected while the slot is occupied; Finish drains the slot and produces
// the immutable session record in the same step.
//
// The controller is not goroutine-safe on its own; the session service
// serializes access per user.
type Controller struct {
	engine *Engine
	clock  clockwork.Clock
	state  *domain.TimerState
}

// NewController creates an idle controller.
func NewController(clock clockwork.Clock) *Controller {
	return &Controller{
		engine: NewEngine(clock),
		clock:  clock,
	}
}

// Start occupies the slot with a fresh countdown. Returns
// domain.ErrTimerAlreadyActive while a run is live.
func (c *Controller) Start(durationSeconds int) (domain.TimerState, error) {
	if c.state != nil {
		return *c.state, domain.ErrTimerAlreadyActive
	}
	state, err := c.engine.Start(durationSeconds)
	if err != nil {
		return domain.TimerState{}, err
	}
	c.state = &state
	return state, nil
}

// Pause pauses the live run. No-op when idle or already paused.
func (c *Controller) Pause() (domain.TimerState, bool) {
	if c.state == nil {
		return domain.TimerState{}, false
	}
	next := c.engine.Pause(*c.state)
	c.state = &next
	return next, true
}

// Resume resumes a paused run. No-op when idle or not paused.
func (c *Controller) Resume() (domain.TimerState, bool) {
	if c.state == nil {
		return domain.TimerState{}, false
	}
	next := c.engine.Resume(*c.state)
	c.state = &next
	return next, true
}

// Tick advances the live run by one scheduler period.
func (c *Controller) Tick() (domain.TimerState, bool) {
	if c.state == nil {
		return domain.TimerState{}, false
	}
	next := c.engine.Tick(*c.state)
	c.state = &next
	return next, true
}

// Current returns the live state, if any.
func (c *Controller) Current() (domain.TimerState, bool) {
	if c.state == nil {
		return domain.TimerState{}, false
	}
	return *c.state, true
}

// Active reports whether the slot is occupied.
func (c *Controller) Active() bool {
	return c.state != nil
}

// Finish drains the slot and returns the session record for the run.
// Duration is the active elapsed time, pauses excluded, so an abandoned run
// records only what was actually focused. Credits are filled in by the
// caller as part of the same state transition.
func (c *Controller) Finish(completed bool) (domain.Session, bool) {
	if c.state == nil {
		return domain.Session{}, false
	}
	state := *c.state
	c.state = nil

	return domain.Session{
		ID:         uuid.NewString(),
		StartTime:  state.StartTime,
		EndTime:    c.clock.Now(),
		Duration:   Elapsed(state),
		Completed:  completed,
		PauseCount: state.PauseCount,
	}, true
}

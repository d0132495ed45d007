package agent

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stackgarden/stackgarden/internal/logger"
)

// DefaultCallTimeout bounds a single persona call. It is deliberately short
// and independent of any timer period.
const DefaultCallTimeout = 3 * time.Second

// Client is one persona backend. Implementations must honor ctx deadlines.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Outcome records how a dispatch resolved, for metrics and logs.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeFallback    Outcome = "fallback"
	OutcomeRateLimited Outcome = "rate_limited"
	OutcomeSuppressed  Outcome = "suppressed"
)

// Dispatcher is the single entry point for persona messages. Every failure
// path converges on the per-mode fallback, so callers always receive a
// complete Response unless the call was suppressed by the in-flight guard.
type Dispatcher struct {
	client  Client
	limiter *RateLimiter
	timeout time.Duration

	mu       sync.Mutex
	inFlight map[Mode]bool
}

func NewDispatcher(client Client, limiter *RateLimiter, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &Dispatcher{
		client:   client,
		limiter:  limiter,
		timeout:  timeout,
		inFlight: make(map[Mode]bool),
	}
}

// Dispatch runs one persona call. Returns the message and the outcome.
// OutcomeSuppressed means a call for the same mode was already in flight
// and no message should be shown; callers must check for it.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Response, Outcome) {
	log := logger.FromContext(ctx)

	d.mu.Lock()
	if d.inFlight[req.Mode] {
		d.mu.Unlock()
		log.Debug("agent call suppressed, previous still in flight", "mode", string(req.Mode))
		return Response{}, OutcomeSuppressed
	}
	d.inFlight[req.Mode] = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.inFlight, req.Mode)
		d.mu.Unlock()
	}()

	if !d.limiter.Consume() {
		log.Debug("agent request rate limited", "mode", string(req.Mode))
		return Fallback(req.Mode), OutcomeRateLimited
	}

	resp, err := d.call(ctx, req)
	if err != nil {
		// Timeouts get exactly one retry; other failures do not.
		if isTimeout(err) {
			resp, err = d.call(ctx, req)
		}
		if err != nil {
			log.Warn("agent call failed, using fallback", "mode", string(req.Mode), "error", err)
			return Fallback(req.Mode), OutcomeFallback
		}
	}

	return Normalize(resp, req.Mode), OutcomeSuccess
}

func (d *Dispatcher) call(ctx context.Context, req Request) (Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.client.Generate(callCtx, req)
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

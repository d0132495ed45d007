package event

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	DeadLetter *DeadLetterWriter
}

// ResilientPublisher wraps an Event Bus to add retry logic and dead letter
// queuing. Callers never see a publish error: a failed publish is retried in
// the background with exponential backoff and finally dead-lettered.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	wg     sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = RetryInitialDelaySeconds * time.Second
	}
	return &ResilientPublisher{
		inner:  inner,
		config: config,
	}
}

// Publish attempts to publish an event. If the first attempt fails, a
// background retry loop takes over and the call returns nil immediately.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	slog.Default().Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(event, err)

	return nil
}

// retryLoop uses a detached context because the original request context may
// be cancelled before the retries finish.
func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()
	ctx := context.Background()

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		time.Sleep(CalculateRetryDelay(p.config.RetryDelay, attempt))

		err := p.inner.Publish(ctx, event)
		if err == nil {
			slog.Default().Info(LogMsgEventRetrySucceeded,
				"event_type", event.Type,
				"attempt", attempt)
			return
		}
		lastErr = err
	}

	slog.Default().Warn(LogMsgEventRetryExhausted, "event_type", event.Type)
	if p.config.DeadLetter != nil {
		if err := p.config.DeadLetter.Write(event, p.config.MaxRetries, lastErr); err != nil {
			slog.Default().Error(LogMsgDeadLetterWriteFailed, "error", err)
		}
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Wait blocks until all in-flight retry loops finish. Used on shutdown.
func (p *ResilientPublisher) Wait() {
	p.wg.Wait()
}

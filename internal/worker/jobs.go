package worker

import (
	"context"
)

// Ticker advances all live countdown timers by one period.
type Ticker interface {
	TickAll(ctx context.Context)
}

// Syncer pushes locally modified user state to the cloud store.
type Syncer interface {
	SyncDirty(ctx context.Context)
}

// TickJob drives the countdown engine. The scheduler enqueues one per
// second; each run advances every active timer and completes any that
// reach zero.
type TickJob struct {
	Ticker Ticker
}

// Process implements Job
func (j *TickJob) Process(ctx context.Context) error {
	j.Ticker.TickAll(ctx)
	return nil
}

// SyncJob sweeps users with unsynced changes and writes their state to
// the cloud store. Per-user failures are logged inside the sweep and
// retried on the next interval.
type SyncJob struct {
	Syncer Syncer
}

// Process implements Job
func (j *SyncJob) Process(ctx context.Context) error {
	j.Syncer.SyncDirty(ctx)
	return nil
}

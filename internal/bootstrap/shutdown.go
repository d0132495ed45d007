package bootstrap

import (
	"context"
	"log/slog"

	"github.com/stackgarden/stackgarden/internal/event"
	"github.com/stackgarden/stackgarden/internal/scheduler"
	"github.com/stackgarden/stackgarden/internal/server"
	"github.com/stackgarden/stackgarden/internal/session"
	"github.com/stackgarden/stackgarden/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	SessionService     session.Service
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops the application in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and worker pool (no new tick or sync jobs)
// 3. Session service (wait for in-flight background syncs)
// 4. Event publisher (flush pending retries and dead-letters)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if err := components.SessionService.Shutdown(ctx); err != nil {
		slog.Error(ServiceNameSession+LogMsgServiceShutdownFailed, "error", err)
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	components.ResilientPublisher.Wait()

	slog.Info(LogMsgServerStopped)
}

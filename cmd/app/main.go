package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/stackgarden/stackgarden/internal/agent"
	"github.com/stackgarden/stackgarden/internal/bootstrap"
	"github.com/stackgarden/stackgarden/internal/catalog"
	"github.com/stackgarden/stackgarden/internal/config"
	"github.com/stackgarden/stackgarden/internal/database"
	"github.com/stackgarden/stackgarden/internal/scheduler"
	"github.com/stackgarden/stackgarden/internal/server"
	"github.com/stackgarden/stackgarden/internal/session"
	"github.com/stackgarden/stackgarden/internal/worker"
)

const (
	// Worker pool sizing. Tick and sync jobs are cheap, a small pool is enough.
	DefaultWorkerCount = 2
	DefaultQueueSize   = 16

	// TickInterval drives the timer state machine for all users.
	TickInterval = 1 * time.Second

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx := context.Background()
	clock := clockwork.NewRealClock()

	// Catalog
	cat, err := catalog.NewLoader().Load(cfg.CatalogPath)
	if err != nil {
		slog.Error("Failed to load catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog loaded", "path", cfg.CatalogPath, "items", len(cat.Items()))

	// Events
	eventBus, publisher, err := bootstrap.InitializeEventSystem()
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}
	if err := bootstrap.RegisterEventHandlers(eventBus); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	// State store
	stateStore, dbPool, err := bootstrap.InitializeStateStore(cfg, clock)
	if err != nil {
		slog.Error("Failed to initialize state store", "error", err)
		os.Exit(1)
	}
	var readinessPool database.Pool
	if dbPool != nil {
		defer dbPool.Close()
		readinessPool = dbPool
	}

	// Persona backend. Without an API key the scripted client serves every
	// message, so the app runs fully local.
	var client agent.Client
	if cfg.GenAIAPIKey != "" {
		genai, err := agent.NewGenAIClient(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
		if err != nil {
			slog.Error("Failed to create GenAI client", "error", err)
			os.Exit(1)
		}
		client = genai
		slog.Info("Persona backend: GenAI", "model", cfg.GenAIModel)
	} else {
		client = agent.NewScriptedClient()
		slog.Info("Persona backend: scripted (no GENAI_API_KEY)")
	}
	limiter := agent.NewRateLimiter(cfg.AgentHourlyBudget, clock)
	dispatcher := agent.NewDispatcher(client, limiter, cfg.AgentCallTimeout)

	sessionService := session.NewService(cat, stateStore, publisher, dispatcher, clock)

	// Background jobs: timer ticks and dirty-state sync
	pool := worker.NewPool(DefaultWorkerCount, DefaultQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(TickInterval, &worker.TickJob{Ticker: sessionService})
	sched.Schedule(cfg.SyncInterval, &worker.SyncJob{Syncer: sessionService})

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, readinessPool, sessionService, stateStore)

	// Serve until interrupted
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		SessionService:     sessionService,
		ResilientPublisher: publisher,
	})
}

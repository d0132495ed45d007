package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/stackgarden/stackgarden/internal/config"
	"github.com/stackgarden/stackgarden/internal/database"
	"github.com/stackgarden/stackgarden/internal/store"
)

// InitializeStateStore picks the state store implementation from config.
// With DB_ENABLED=false the app runs fully local on the in-memory store;
// otherwise it connects to postgres, runs migrations and wraps the store
// in a read-through cache. The returned pool is nil in memory mode.
func InitializeStateStore(cfg *config.Config, clock clockwork.Clock) (store.StateStore, *pgxpool.Pool, error) {
	if !cfg.DBEnabled {
		slog.Info(LogMsgStateStoreMemory)
		return store.NewMemoryStore(clock), nil, nil
	}

	connString := cfg.GetDBConnString()
	if err := database.Migrate(connString); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDB, err)
	}

	pool, err := database.NewPool(connString, StoreMaxConnections, StoreMaxIdleTime, StoreMaxLifetime)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}

	cached := store.NewCachedStore(store.NewPostgresStore(pool), store.DefaultCacheSize, store.DefaultCacheTTL)
	slog.Info(LogMsgStateStorePostgres, "host", cfg.DBHost, "database", cfg.DBName)
	return cached, pool, nil
}

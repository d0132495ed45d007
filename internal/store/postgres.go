package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stackgarden/stackgarden/internal/snapshot"
)

const (
	sqlSelectState = `
		SELECT state, updated_at
		FROM user_states
		WHERE user_id = $1
	`

	sqlUpsertState = `
		INSERT INTO user_states (user_id, state, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET state = EXCLUDED.state, updated_at = NOW()
		RETURNING updated_at
	`
)

// PostgresStore persists snapshots as JSONB keyed by the opaque user id.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (*Record, error) {
	var (
		raw       []byte
		updatedAt time.Time
	)
	err := s.db.QueryRow(ctx, sqlSelectState, userID).Scan(&raw, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user state: %w", err)
	}

	var state snapshot.CloudState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode stored state: %w", err)
	}

	return &Record{State: state, UpdatedAt: updatedAt}, nil
}

func (s *PostgresStore) Put(ctx context.Context, userID string, state snapshot.CloudState) (time.Time, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to encode user state: %w", err)
	}

	var updatedAt time.Time
	if err := s.db.QueryRow(ctx, sqlUpsertState, userID, raw).Scan(&updatedAt); err != nil {
		return time.Time{}, fmt.Errorf("failed to upsert user state: %w", err)
	}
	return updatedAt, nil
}

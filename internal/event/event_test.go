package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(SessionCompleted, func(ctx context.Context, e Event) error {
		payload, err := DecodePayload[SessionEndedPayloadV1](e.Payload)
		require.NoError(t, err)
		assert.Equal(t, "u1", payload.UserID)
		assert.Equal(t, 62, payload.CreditsEarned)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), NewSessionEndedEvent("u1", "s1", 3600, 0, 62, 5, true))
	require.NoError(t, err)
	assert.True(t, handled)
}

func TestMemoryBus_AbandonedSessionRoutesToAbandonedType(t *testing.T) {
	bus := NewMemoryBus()
	completedCalls, abandonedCalls := 0, 0

	bus.Subscribe(SessionCompleted, func(ctx context.Context, e Event) error {
		completedCalls++
		return nil
	})
	bus.Subscribe(SessionAbandoned, func(ctx context.Context, e Event) error {
		abandonedCalls++
		return nil
	})

	err := bus.Publish(context.Background(), NewSessionEndedEvent("u1", "s1", 1000, 1, 5, 0, false))
	require.NoError(t, err)
	assert.Equal(t, 0, completedCalls)
	assert.Equal(t, 1, abandonedCalls)
}

func TestMemoryBus_MultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0

	handler := func(ctx context.Context, e Event) error {
		count++
		return nil
	}
	bus.Subscribe(PurchaseCompleted, handler)
	bus.Subscribe(PurchaseCompleted, handler)

	err := bus.Publish(context.Background(), NewPurchaseEvent("u1", "web_server", 100, 50))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMemoryBus_NoSubscribersIsNoop(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), NewSyncEvent("u1", nil))
	assert.NoError(t, err)
}

func TestMemoryBus_HandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(SyncFailed, func(ctx context.Context, e Event) error {
		return errors.New("handler boom")
	})
	bus.Subscribe(SyncFailed, func(ctx context.Context, e Event) error {
		return nil
	})

	err := bus.Publish(context.Background(), NewSyncEvent("u1", errors.New("network down")))
	assert.Error(t, err)
}

func TestDecodePayloadFromSerializedForm(t *testing.T) {
	raw := map[string]interface{}{
		"user_id": "u1",
		"item_id": "sql_db",
		"spent":   float64(150),
	}
	payload, err := DecodePayload[PurchasePayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, "sql_db", payload.ItemID)
	assert.Equal(t, 150, payload.Spent)
}

func TestNewSyncEventTypes(t *testing.T) {
	assert.Equal(t, SyncCompleted, NewSyncEvent("u1", nil).Type)
	assert.Equal(t, SyncFailed, NewSyncEvent("u1", errors.New("x")).Type)
}

package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Common event types
const (
	SessionStarted   Type = "session.started"
	SessionCompleted Type = "session.completed"
	SessionAbandoned Type = "session.abandoned"

	PurchaseCompleted  Type = "purchase.completed"
	ComponentUpgraded  Type = "component.upgraded"
	ComponentPlaced    Type = "component.placed"
	ComponentRemoved   Type = "component.removed"
	ConnectionCreated  Type = "connection.created"
	ConnectionRejected Type = "connection.rejected"

	SyncCompleted Type = "sync.completed"
	SyncFailed    Type = "sync.failed"

	AgentMessageSent Type = "agent.message_sent"
)

// Typed event payloads for type safety

// SessionStartedPayloadV1 is the typed payload for session start events
type SessionStartedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Duration  int    `json:"duration"`
	Timestamp int64  `json:"timestamp"`
}

// SessionEndedPayloadV1 is the typed payload for session completion and
// abandonment events
type SessionEndedPayloadV1 struct {
	UserID        string `json:"user_id"`
	SessionID     string `json:"session_id"`
	Duration      int    `json:"duration"`
	Completed     bool   `json:"completed"`
	PauseCount    int    `json:"pause_count"`
	CreditsEarned int    `json:"credits_earned"`
	CurrentStreak int    `json:"current_streak"`
	Timestamp     int64  `json:"timestamp"`
}

// PurchasePayloadV1 is the typed payload for purchase events
type PurchasePayloadV1 struct {
	UserID           string `json:"user_id"`
	ItemID           string `json:"item_id"`
	Spent            int    `json:"spent"`
	RemainingCredits int    `json:"remaining_credits"`
	Timestamp        int64  `json:"timestamp"`
}

// PlacementPayloadV1 is the typed payload for canvas placement events
type PlacementPayloadV1 struct {
	UserID     string `json:"user_id"`
	InstanceID string `json:"instance_id"`
	ItemType   string `json:"item_type"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Timestamp  int64  `json:"timestamp"`
}

// ConnectionPayloadV1 is the typed payload for connection events
type ConnectionPayloadV1 struct {
	UserID    string `json:"user_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Hint      string `json:"hint,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// SyncPayloadV1 is the typed payload for cloud sync events
type SyncPayloadV1 struct {
	UserID    string `json:"user_id"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// AgentMessagePayloadV1 is the typed payload for persona message events
type AgentMessagePayloadV1 struct {
	UserID    string `json:"user_id"`
	Mode      string `json:"mode"`
	Outcome   string `json:"outcome"`
	Timestamp int64  `json:"timestamp"`
}

// NewSessionStartedEvent creates a session.started event
func NewSessionStartedEvent(userID string, duration int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SessionStarted,
		Payload: SessionStartedPayloadV1{
			UserID:    userID,
			Duration:  duration,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSessionEndedEvent creates a session.completed or session.abandoned event
func NewSessionEndedEvent(userID, sessionID string, duration, pauseCount, creditsEarned, streak int, completed bool) Event {
	eventType := SessionCompleted
	if !completed {
		eventType = SessionAbandoned
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: SessionEndedPayloadV1{
			UserID:        userID,
			SessionID:     sessionID,
			Duration:      duration,
			Completed:     completed,
			PauseCount:    pauseCount,
			CreditsEarned: creditsEarned,
			CurrentStreak: streak,
			Timestamp:     time.Now().Unix(),
		},
	}
}

// NewPurchaseEvent creates a purchase.completed event
func NewPurchaseEvent(userID, itemID string, spent, remaining int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PurchaseCompleted,
		Payload: PurchasePayloadV1{
			UserID:           userID,
			ItemID:           itemID,
			Spent:            spent,
			RemainingCredits: remaining,
			Timestamp:        time.Now().Unix(),
		},
	}
}

// NewPlacementEvent creates a component.placed event
func NewPlacementEvent(userID, instanceID, itemType string, x, y int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ComponentPlaced,
		Payload: PlacementPayloadV1{
			UserID:     userID,
			InstanceID: instanceID,
			ItemType:   itemType,
			X:          x,
			Y:          y,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewConnectionRejectedEvent creates a connection.rejected event carrying
// the human-readable hint
func NewConnectionRejectedEvent(userID, from, to, hint string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ConnectionRejected,
		Payload: ConnectionPayloadV1{
			UserID:    userID,
			From:      from,
			To:        to,
			Hint:      hint,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSyncEvent creates a sync.completed or sync.failed event
func NewSyncEvent(userID string, syncErr error) Event {
	eventType := SyncCompleted
	payload := SyncPayloadV1{UserID: userID, Timestamp: time.Now().Unix()}
	if syncErr != nil {
		eventType = SyncFailed
		payload.Error = syncErr.Error()
	}
	return Event{Version: EventSchemaVersion, Type: eventType, Payload: payload}
}

// NewAgentMessageEvent creates an agent.message_sent event
func NewAgentMessageEvent(userID, mode, outcome string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AgentMessageSent,
		Payload: AgentMessagePayloadV1{
			UserID:    userID,
			Mode:      mode,
			Outcome:   outcome,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

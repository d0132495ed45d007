package metrics

import (
	"context"

	"github.com/stackgarden/stackgarden/internal/event"
	"github.com/stackgarden/stackgarden/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.SessionStarted,
		event.SessionCompleted,
		event.SessionAbandoned,
		event.PurchaseCompleted,
		event.ComponentUpgraded,
		event.ComponentPlaced,
		event.ComponentRemoved,
		event.ConnectionCreated,
		event.ConnectionRejected,
		event.SyncCompleted,
		event.SyncFailed,
		event.AgentMessageSent,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.SessionCompleted, event.SessionAbandoned:
		payload, err := event.DecodePayload[event.SessionEndedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		if evt.Type == event.SessionCompleted {
			SessionsCompleted.Inc()
		} else {
			SessionsAbandoned.Inc()
		}
		SessionSeconds.Add(float64(payload.Duration))
		CreditsAwarded.Add(float64(payload.CreditsEarned))

	case event.PurchaseCompleted:
		payload, err := event.DecodePayload[event.PurchasePayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		Purchases.WithLabelValues(payload.ItemID).Inc()
		CreditsSpent.Add(float64(payload.Spent))

	case event.ComponentUpgraded:
		payload, err := event.DecodePayload[event.PurchasePayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		CreditsSpent.Add(float64(payload.Spent))

	case event.ComponentPlaced:
		payload, err := event.DecodePayload[event.PlacementPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		ComponentsPlaced.WithLabelValues(payload.ItemType).Inc()

	case event.ConnectionCreated:
		ConnectionsCreated.Inc()

	case event.ConnectionRejected:
		ConnectionsRejected.Inc()

	case event.SyncCompleted:
		SyncOperations.WithLabelValues("completed").Inc()

	case event.SyncFailed:
		SyncOperations.WithLabelValues("failed").Inc()

	case event.AgentMessageSent:
		payload, err := event.DecodePayload[event.AgentMessagePayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		AgentMessages.WithLabelValues(payload.Mode, payload.Outcome).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/stackgarden/stackgarden/internal/canvas"
	"github.com/stackgarden/stackgarden/internal/domain"
	"github.com/stackgarden/stackgarden/internal/event"
	"github.com/stackgarden/stackgarden/internal/logger"
)

func (s *service) Architecture(_ context.Context, userID string) ([]domain.PlacedComponent, []domain.Connection) {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()
	components := append([]domain.PlacedComponent(nil), u.arch.Components...)
	connections := append([]domain.Connection(nil), u.arch.Connections...)
	return components, connections
}

func (s *service) PlaceComponent(ctx context.Context, userID, itemType string, pos domain.Position) (domain.PlacedComponent, error) {
	if _, ok := s.catalog.Item(itemType); !ok {
		return domain.PlacedComponent{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemType)
	}

	u := s.user(userID)
	u.mu.Lock()
	if !u.progress.Owns(itemType) {
		u.mu.Unlock()
		return domain.PlacedComponent{}, fmt.Errorf("%w: %s", domain.ErrNotOwned, itemType)
	}
	placed, err := u.arch.Place(itemType, pos)
	if err == nil {
		u.dirty = true
	}
	u.mu.Unlock()
	if err != nil {
		return domain.PlacedComponent{}, err
	}

	s.publish(ctx, event.NewPlacementEvent(userID, placed.ID, placed.Type, placed.Position.X, placed.Position.Y))
	return placed, nil
}

func (s *service) QuickPlaceComponent(ctx context.Context, userID, itemType string) (domain.PlacedComponent, error) {
	if _, ok := s.catalog.Item(itemType); !ok {
		return domain.PlacedComponent{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemType)
	}

	u := s.user(userID)
	u.mu.Lock()
	if !u.progress.Owns(itemType) {
		u.mu.Unlock()
		return domain.PlacedComponent{}, fmt.Errorf("%w: %s", domain.ErrNotOwned, itemType)
	}
	placed, err := u.arch.QuickPlace(itemType)
	if err == nil {
		u.dirty = true
	}
	u.mu.Unlock()
	if err != nil {
		return domain.PlacedComponent{}, err
	}

	s.publish(ctx, event.NewPlacementEvent(userID, placed.ID, placed.Type, placed.Position.X, placed.Position.Y))
	return placed, nil
}

func (s *service) MoveComponent(_ context.Context, userID, instanceID string, pos domain.Position) (domain.PlacedComponent, error) {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	moved, err := u.arch.Move(instanceID, pos)
	if err != nil {
		return domain.PlacedComponent{}, err
	}
	u.dirty = true
	return moved, nil
}

func (s *service) RemoveComponent(ctx context.Context, userID, instanceID string) error {
	u := s.user(userID)
	u.mu.Lock()
	err := u.arch.Remove(instanceID)
	if err == nil {
		u.dirty = true
	}
	u.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.ComponentRemoved,
		Payload: event.PlacementPayloadV1{UserID: userID, InstanceID: instanceID},
	})
	return nil
}

func (s *service) Connect(ctx context.Context, userID, fromID, toID, connType string) (domain.Connection, error) {
	u := s.user(userID)
	u.mu.Lock()
	conn, err := u.arch.Connect(fromID, toID, connType, s.resolver())
	if err == nil {
		u.dirty = true
	}
	u.mu.Unlock()

	if err != nil {
		if errors.Is(err, domain.ErrConnectionRejected) {
			logger.FromContext(ctx).Debug("connection rejected",
				"user_id", userID,
				"from", fromID,
				"to", toID)
			s.publish(ctx, event.NewConnectionRejectedEvent(userID, fromID, toID, err.Error()))
		}
		return domain.Connection{}, err
	}

	s.publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.ConnectionCreated,
		Payload: event.ConnectionPayloadV1{UserID: userID, From: fromID, To: toID},
	})
	return conn, nil
}

func (s *service) Disconnect(_ context.Context, userID, fromID, toID string) error {
	u := s.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.arch.Disconnect(fromID, toID); err != nil {
		return err
	}
	u.dirty = true
	return nil
}

// ConnectionGuidance exposes the matrix hint for a prospective pair without
// mutating anything. Both the placement UI and the advisor persona read the
// same matrix through this.
func (s *service) ConnectionGuidance(fromCategory, toCategory domain.Category) (bool, string) {
	return canvas.IsValidConnection(fromCategory, toCategory), canvas.ConnectionHint(fromCategory, toCategory)
}

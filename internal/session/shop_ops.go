package session

import (
	"context"
	"fmt"

	"github.com/stackgarden/stackgarden/internal/catalog"
	"github.com/stackgarden/stackgarden/internal/domain"
	"github.com/stackgarden/stackgarden/internal/event"
	"github.com/stackgarden/stackgarden/internal/logger"
)

func (s *service) Shop(_ context.Context, userID string) []ShopEntry {
	u := s.user(userID)
	u.mu.Lock()
	credits := u.progress.Credits
	owned := append([]string(nil), u.progress.OwnedComponents...)
	u.mu.Unlock()

	items := s.catalog.Items()
	entries := make([]ShopEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, ShopEntry{
			Item:  item,
			State: catalog.StateFor(item, credits, owned),
		})
	}
	return entries
}

func (s *service) Purchase(ctx context.Context, userID, itemID string) (catalog.Result, error) {
	item, ok := s.catalog.Item(itemID)
	if !ok {
		return catalog.Result{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	u := s.user(userID)
	u.mu.Lock()
	result := catalog.ProcessPurchase(item, u.progress.Credits, u.progress.OwnedComponents)
	if result.Check.Allowed {
		u.progress.Credits = result.Credits
		u.progress.OwnedComponents = result.Owned
		u.dirty = true
	}
	credits := u.progress.Credits
	u.mu.Unlock()

	if !result.Check.Allowed {
		return result, nil
	}

	logger.FromContext(ctx).Info("purchase completed",
		"user_id", userID,
		"item_id", itemID,
		"spent", result.Spent,
		"credits", credits)
	s.publish(ctx, event.NewPurchaseEvent(userID, itemID, result.Spent, credits))
	return result, nil
}

// UpgradeComponent raises a placed component to its next tier, charging the
// tier's cost. The whole check-and-charge happens under the user lock.
func (s *service) UpgradeComponent(ctx context.Context, userID, instanceID string) (domain.PlacedComponent, int, error) {
	u := s.user(userID)
	u.mu.Lock()

	comp, ok := u.arch.Component(instanceID)
	if !ok {
		u.mu.Unlock()
		return domain.PlacedComponent{}, 0, fmt.Errorf("%w: %s", domain.ErrComponentNotFound, instanceID)
	}

	item, ok := s.catalog.Item(comp.Type)
	if !ok {
		u.mu.Unlock()
		return domain.PlacedComponent{}, 0, fmt.Errorf("%w: %s", domain.ErrItemNotFound, comp.Type)
	}

	nextTier := comp.Tier + 1
	cost, ok := item.TierCost(nextTier)
	if !ok {
		u.mu.Unlock()
		return domain.PlacedComponent{}, 0, domain.ErrMaxTierReached
	}
	if u.progress.Credits < cost {
		u.mu.Unlock()
		return domain.PlacedComponent{}, 0, fmt.Errorf("%w: need %d more", domain.ErrInsufficientCredits, cost-u.progress.Credits)
	}

	upgraded, err := u.arch.UpgradeTier(instanceID)
	if err != nil {
		u.mu.Unlock()
		return domain.PlacedComponent{}, 0, err
	}
	u.progress.Credits -= cost
	u.dirty = true
	u.mu.Unlock()

	logger.FromContext(ctx).Info("component upgraded",
		"user_id", userID,
		"instance_id", instanceID,
		"tier", upgraded.Tier,
		"cost", cost)
	s.publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.ComponentUpgraded,
		Payload: event.PurchasePayloadV1{UserID: userID, ItemID: comp.Type, Spent: cost},
	})
	return upgraded, cost, nil
}

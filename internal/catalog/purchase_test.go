package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stackgarden/stackgarden/internal/domain"
)

func webServer() domain.CatalogItem {
	return domain.CatalogItem{
		ID:       "web_server",
		Name:     "Web Server",
		Category: domain.CategoryCompute,
		Cost:     50,
	}
}

func loadBalancer() domain.CatalogItem {
	return domain.CatalogItem{
		ID:            "load_balancer",
		Name:          "Load Balancer",
		Category:      domain.CategoryLoadBalancer,
		Cost:          120,
		Prerequisites: []string{"web_server"},
	}
}

func TestCanPurchaseAlreadyOwned(t *testing.T) {
	item := webServer()
	check := CanPurchase(item, 1000, []string{"web_server"})

	assert.False(t, check.Allowed)
	assert.Equal(t, DenialAlreadyOwned, check.Reason)
}

func TestCanPurchaseRepeatableItemAgain(t *testing.T) {
	item := webServer()
	item.Repeatable = true

	check := CanPurchase(item, 1000, []string{"web_server"})
	assert.True(t, check.Allowed)
}

func TestCanPurchasePrerequisitesBeforeCredits(t *testing.T) {
	item := loadBalancer()

	// Missing prerequisite is reported regardless of credit balance.
	check := CanPurchase(item, 1_000_000, nil)
	assert.False(t, check.Allowed)
	assert.Equal(t, DenialPrerequisitesNotMet, check.Reason)
	assert.Equal(t, []string{"web_server"}, check.MissingPrereqs)
}

func TestCanPurchaseInsufficientCreditsReportsShortage(t *testing.T) {
	item := webServer()

	check := CanPurchase(item, 49, nil)
	assert.False(t, check.Allowed)
	assert.Equal(t, DenialInsufficientCredits, check.Reason)
	assert.Equal(t, 1, check.Shortage)
}

func TestCanPurchaseSuccess(t *testing.T) {
	check := CanPurchase(webServer(), 50, nil)
	assert.True(t, check.Allowed)
	assert.Empty(t, check.Reason)
}

func TestProcessPurchaseAppliesTransaction(t *testing.T) {
	owned := []string{"cdn"}
	result := ProcessPurchase(webServer(), 80, owned)

	assert.True(t, result.Check.Allowed)
	assert.Equal(t, 30, result.Credits)
	assert.Equal(t, 50, result.Spent)
	assert.Equal(t, []string{"cdn", "web_server"}, result.Owned)

	// Original slice untouched.
	assert.Equal(t, []string{"cdn"}, owned)
}

func TestProcessPurchaseRejectionLeavesStateUnchanged(t *testing.T) {
	owned := []string{"web_server"}
	result := ProcessPurchase(webServer(), 80, owned)

	assert.False(t, result.Check.Allowed)
	assert.Equal(t, 80, result.Credits)
	assert.Equal(t, owned, result.Owned)
	assert.Equal(t, 0, result.Spent)
}

func TestStateForPriorityOrder(t *testing.T) {
	item := loadBalancer()

	// Owned beats everything.
	owned := append([]string{}, "load_balancer")
	assert.Equal(t, domain.PurchaseStateOwned, StateFor(item, 0, owned))

	// Locked beats insufficient even with zero credits.
	assert.Equal(t, domain.PurchaseStateLocked, StateFor(item, 0, nil))

	// Prereqs met, not enough credits.
	assert.Equal(t, domain.PurchaseStateInsufficient, StateFor(item, 10, []string{"web_server"}))

	// Everything lines up.
	assert.Equal(t, domain.PurchaseStateAvailable, StateFor(item, 120, []string{"web_server"}))
}

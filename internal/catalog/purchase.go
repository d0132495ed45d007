package catalog

import (
	"github.com/stackgarden/stackgarden/internal/domain"
)

// DenialReason classifies why a purchase was rejected.
type DenialReason string

const (
	DenialAlreadyOwned        DenialReason = "already_owned"
	DenialPrerequisitesNotMet DenialReason = "prerequisites_not_met"
	DenialInsufficientCredits DenialReason = "insufficient_credits"
)

// Check is the result of a purchase validation. Rejections carry the data a
// caller needs to render an actionable reason.
type Check struct {
	Allowed        bool         `json:"allowed"`
	Reason         DenialReason `json:"reason,omitempty"`
	MissingPrereqs []string     `json:"missingPrereqs,omitempty"`
	Shortage       int          `json:"shortage,omitempty"`
}

// Result is the outcome of applying a purchase. On rejection the returned
// credits and owned set are the caller's originals, untouched.
type Result struct {
	Check   Check    `json:"check"`
	Credits int      `json:"credits"`
	Owned   []string `json:"owned"`
	Spent   int      `json:"spent"`
}

// CanPurchase validates a purchase attempt in priority order: ownership
// first, then prerequisites, then affordability.
func CanPurchase(item domain.CatalogItem, credits int, owned []string) Check {
	if !item.Repeatable && contains(owned, item.ID) {
		return Check{Reason: DenialAlreadyOwned}
	}

	var missing []string
	for _, prereq := range item.Prerequisites {
		if !contains(owned, prereq) {
			missing = append(missing, prereq)
		}
	}
	if len(missing) > 0 {
		return Check{Reason: DenialPrerequisitesNotMet, MissingPrereqs: missing}
	}

	if credits < item.Cost {
		return Check{Reason: DenialInsufficientCredits, Shortage: item.Cost - credits}
	}

	return Check{Allowed: true}
}

// ProcessPurchase re-validates and applies a purchase. Inputs are never
// mutated; the result carries a fresh owned slice.
func ProcessPurchase(item domain.CatalogItem, credits int, owned []string) Result {
	check := CanPurchase(item, credits, owned)
	if !check.Allowed {
		return Result{Check: check, Credits: credits, Owned: owned}
	}

	next := make([]string, 0, len(owned)+1)
	next = append(next, owned...)
	next = append(next, item.ID)

	return Result{
		Check:   check,
		Credits: credits - item.Cost,
		Owned:   next,
		Spent:   item.Cost,
	}
}

// StateFor classifies an item for display. Evaluation order matters:
// ownership wins over prerequisites, prerequisites over affordability.
func StateFor(item domain.CatalogItem, credits int, owned []string) domain.PurchaseState {
	if !item.Repeatable && contains(owned, item.ID) {
		return domain.PurchaseStateOwned
	}
	for _, prereq := range item.Prerequisites {
		if !contains(owned, prereq) {
			return domain.PurchaseStateLocked
		}
	}
	if credits < item.Cost {
		return domain.PurchaseStateInsufficient
	}
	return domain.PurchaseStateAvailable
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

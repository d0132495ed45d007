package domain

// Category is the closed set of component categories. The connection
// permission matrix in the canvas engine is exhaustive over this set.
type Category string

const (
	CategoryEdge          Category = "edge"
	CategoryLoadBalancer  Category = "load_balancer"
	CategoryCompute       Category = "compute"
	CategoryServerless    Category = "serverless"
	CategoryStorage       Category = "storage"
	CategoryDatabase      Category = "database"
	CategoryCache         Category = "cache"
	CategoryAsync         Category = "async"
	CategoryAuth          Category = "auth"
	CategorySecurity      Category = "security"
	CategoryObservability Category = "observability"
)

// AllCategories lists every valid category, in display order.
var AllCategories = []Category{
	CategoryEdge,
	CategoryLoadBalancer,
	CategoryCompute,
	CategoryServerless,
	CategoryStorage,
	CategoryDatabase,
	CategoryCache,
	CategoryAsync,
	CategoryAuth,
	CategorySecurity,
	CategoryObservability,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// UpgradeTier is one paid upgrade step of a catalog item.
type UpgradeTier struct {
	Tier int    `json:"tier"`
	Cost int    `json:"cost"`
	Name string `json:"name"`
}

// CatalogItem is a static purchasable definition. Loaded once at startup,
// never mutated by gameplay.
type CatalogItem struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Category      Category      `json:"category"`
	Cost          int           `json:"cost"`
	Prerequisites []string      `json:"prerequisites,omitempty"`
	Tiers         []UpgradeTier `json:"tiers,omitempty"`
	// Repeatable items may be purchased more than once; everything else is
	// singleton-owned.
	Repeatable bool `json:"repeatable,omitempty"`
}

// MaxTier returns the highest upgrade tier defined for the item, or 1 when
// the item has no upgrade path.
func (i CatalogItem) MaxTier() int {
	max := 1
	for _, t := range i.Tiers {
		if t.Tier > max {
			max = t.Tier
		}
	}
	return max
}

// TierCost returns the cost of upgrading to the given tier, or (0, false)
// when the item defines no such tier.
func (i CatalogItem) TierCost(tier int) (int, bool) {
	for _, t := range i.Tiers {
		if t.Tier == tier {
			return t.Cost, true
		}
	}
	return 0, false
}

// PurchaseState is a display-only classification of an item for a user.
type PurchaseState string

const (
	PurchaseStateOwned        PurchaseState = "owned"
	PurchaseStateLocked       PurchaseState = "locked"
	PurchaseStateInsufficient PurchaseState = "insufficient"
	PurchaseStateAvailable    PurchaseState = "available"
)

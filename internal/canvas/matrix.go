package canvas

import (
	"fmt"
	"strings"

	"github.com/stackgarden/stackgarden/internal/domain"
)

// allowedTargets is the single source of truth for connection permissions.
// Both the placement surface and agent-generated guidance consume this
// table; it must not be re-derived anywhere else.
var allowedTargets = map[domain.Category][]domain.Category{
	domain.CategoryEdge: {
		domain.CategoryEdge,
		domain.CategoryLoadBalancer,
		domain.CategoryCompute,
		domain.CategoryServerless,
		domain.CategoryStorage,
		domain.CategoryObservability,
	},
	domain.CategoryLoadBalancer: {
		domain.CategoryCompute,
		domain.CategoryServerless,
		domain.CategoryObservability,
	},
	domain.CategoryCompute: {
		domain.CategoryDatabase,
		domain.CategoryCache,
		domain.CategoryStorage,
		domain.CategoryAsync,
		domain.CategoryObservability,
	},
	domain.CategoryServerless: {
		domain.CategoryDatabase,
		domain.CategoryCache,
		domain.CategoryStorage,
		domain.CategoryAsync,
		domain.CategoryObservability,
	},
	domain.CategoryStorage: {
		domain.CategoryAsync,
		domain.CategoryObservability,
	},
	domain.CategoryDatabase: {
		domain.CategoryAsync,
		domain.CategoryObservability,
	},
	domain.CategoryCache: {
		domain.CategoryObservability,
	},
	domain.CategoryAsync: {
		domain.CategoryServerless,
		domain.CategoryCompute,
		domain.CategoryObservability,
	},
	domain.CategoryAuth: {
		domain.CategoryEdge,
		domain.CategoryLoadBalancer,
		domain.CategoryServerless,
		domain.CategoryObservability,
	},
	domain.CategorySecurity: {
		domain.CategoryEdge,
		domain.CategoryLoadBalancer,
		domain.CategoryObservability,
	},
	// Observability is a sink: it never originates a connection.
	domain.CategoryObservability: {},
}

// IsValidConnection reports whether the source category is permitted to
// target the destination category.
func IsValidConnection(from, to domain.Category) bool {
	for _, target := range allowedTargets[from] {
		if target == to {
			return true
		}
	}
	return false
}

// AllowedTargets returns the permitted destination categories for a source.
// Callers must not mutate the returned slice.
func AllowedTargets(from domain.Category) []domain.Category {
	return allowedTargets[from]
}

// reversedPairHints covers the specific directional mistakes users actually
// make, where the fix is flipping the arrow.
var reversedPairHints = map[[2]domain.Category]string{
	{domain.CategoryDatabase, domain.CategoryCompute}:       "Databases don't call compute. Draw the connection from compute to the database instead.",
	{domain.CategoryDatabase, domain.CategoryServerless}:    "Databases don't invoke functions. Draw the connection from the function to the database instead.",
	{domain.CategoryCache, domain.CategoryCompute}:          "Caches are read by compute, not the other way around. Reverse the connection.",
	{domain.CategoryCache, domain.CategoryServerless}:       "Caches are read by functions, not the other way around. Reverse the connection.",
	{domain.CategoryCompute, domain.CategoryEdge}:           "Traffic flows from the edge inward. Connect the edge component to compute instead.",
	{domain.CategoryCompute, domain.CategoryLoadBalancer}:   "Load balancers route to compute, not the reverse. Flip the connection.",
	{domain.CategoryServerless, domain.CategoryLoadBalancer}: "Load balancers route to functions, not the reverse. Flip the connection.",
	{domain.CategoryStorage, domain.CategoryCompute}:        "Storage doesn't push to compute. Connect compute to the storage instead.",
}

// ConnectionHint explains why a pairing is invalid in terms a user can act
// on. For valid pairs it confirms the connection.
func ConnectionHint(from, to domain.Category) string {
	if IsValidConnection(from, to) {
		return fmt.Sprintf("%s can connect to %s.", from, to)
	}

	if from == domain.CategoryObservability {
		return "Observability components only receive data. Connect other components to them, not the other way around."
	}

	if from == to && from != domain.CategoryEdge {
		return fmt.Sprintf("Two %s components don't connect directly. Route them through the tiers between them.", from)
	}

	if hint, ok := reversedPairHints[[2]domain.Category{from, to}]; ok {
		return hint
	}

	targets := allowedTargets[from]
	if len(targets) == 0 {
		return fmt.Sprintf("%s components can't originate connections.", from)
	}
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = string(t)
	}
	return fmt.Sprintf("%s can't connect to %s. Valid targets are: %s.", from, to, strings.Join(names, ", "))
}

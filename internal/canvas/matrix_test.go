package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stackgarden/stackgarden/internal/domain"
)

func TestObservabilityNeverASource(t *testing.T) {
	for _, to := range domain.AllCategories {
		assert.False(t, IsValidConnection(domain.CategoryObservability, to),
			"observability -> %s must be invalid", to)
	}
}

func TestKnownValidConnections(t *testing.T) {
	tests := []struct {
		from, to domain.Category
	}{
		{domain.CategoryEdge, domain.CategoryCompute},
		{domain.CategoryEdge, domain.CategoryEdge},
		{domain.CategoryLoadBalancer, domain.CategoryServerless},
		{domain.CategoryCompute, domain.CategoryDatabase},
		{domain.CategoryServerless, domain.CategoryCache},
		{domain.CategoryStorage, domain.CategoryAsync},
		{domain.CategoryDatabase, domain.CategoryObservability},
		{domain.CategoryCache, domain.CategoryObservability},
		{domain.CategoryAsync, domain.CategoryCompute},
		{domain.CategoryAuth, domain.CategoryEdge},
		{domain.CategorySecurity, domain.CategoryLoadBalancer},
	}

	for _, tt := range tests {
		assert.True(t, IsValidConnection(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestKnownInvalidConnections(t *testing.T) {
	tests := []struct {
		from, to domain.Category
	}{
		{domain.CategoryDatabase, domain.CategoryCompute},
		{domain.CategoryCache, domain.CategoryServerless},
		{domain.CategoryCompute, domain.CategoryCompute},
		{domain.CategoryCompute, domain.CategoryEdge},
		{domain.CategorySecurity, domain.CategoryDatabase},
		{domain.CategoryAuth, domain.CategoryCompute},
	}

	for _, tt := range tests {
		assert.False(t, IsValidConnection(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestEveryMatrixEntryUsesKnownCategories(t *testing.T) {
	for _, from := range domain.AllCategories {
		for _, to := range AllowedTargets(from) {
			assert.True(t, to.Valid(), "%s lists unknown target %s", from, to)
		}
	}
}

func TestConnectionHintObservabilitySource(t *testing.T) {
	hint := ConnectionHint(domain.CategoryObservability, domain.CategoryCompute)
	assert.Contains(t, hint, "only receive")
}

func TestConnectionHintSameCategory(t *testing.T) {
	hint := ConnectionHint(domain.CategoryCompute, domain.CategoryCompute)
	assert.Contains(t, hint, "don't connect directly")
}

func TestConnectionHintReversedPair(t *testing.T) {
	hint := ConnectionHint(domain.CategoryDatabase, domain.CategoryCompute)
	assert.Contains(t, hint, "compute to the database")
}

func TestConnectionHintGenericFallback(t *testing.T) {
	hint := ConnectionHint(domain.CategoryAuth, domain.CategoryDatabase)
	assert.Contains(t, hint, "Valid targets are:")
	assert.Contains(t, hint, "edge")
}

func TestConnectionHintValidPair(t *testing.T) {
	hint := ConnectionHint(domain.CategoryEdge, domain.CategoryCompute)
	assert.Contains(t, hint, "can connect")
}

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackgarden/stackgarden/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `{
		"version": "1.0.0",
		"items": [
			{"id": "web_server", "name": "Web Server", "category": "compute", "cost": 50},
			{"id": "load_balancer", "name": "Load Balancer", "category": "load_balancer", "cost": 120,
			 "prerequisites": ["web_server"],
			 "tiers": [{"tier": 2, "cost": 60, "name": "HA Pair"}]}
		]
	}`)

	cat, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	item, ok := cat.Item("load_balancer")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryLoadBalancer, item.Category)
	assert.Equal(t, []string{"web_server"}, item.Prerequisites)
	assert.Equal(t, 2, item.MaxTier())

	cost, ok := item.TierCost(2)
	require.True(t, ok)
	assert.Equal(t, 60, cost)
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	path := writeConfig(t, `{
		"version": "1.0.0",
		"items": [
			{"id": "web_server", "name": "A", "category": "compute", "cost": 1},
			{"id": "web_server", "name": "B", "category": "compute", "cost": 2}
		]
	}`)

	_, err := NewLoader().Load(path)
	assert.ErrorIs(t, err, ErrDuplicateItemID)
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	path := writeConfig(t, `{
		"version": "1.0.0",
		"items": [{"id": "x", "name": "X", "category": "blockchain", "cost": 1}]
	}`)

	_, err := NewLoader().Load(path)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestLoadRejectsDanglingPrerequisite(t *testing.T) {
	path := writeConfig(t, `{
		"version": "1.0.0",
		"items": [{"id": "x", "name": "X", "category": "compute", "cost": 1, "prerequisites": ["ghost"]}]
	}`)

	_, err := NewLoader().Load(path)
	assert.ErrorIs(t, err, ErrUnknownPrerequisite)
}

func TestLoadRejectsMissingVersion(t *testing.T) {
	path := writeConfig(t, `{
		"items": [{"id": "x", "name": "X", "category": "compute", "cost": 1}]
	}`)

	_, err := NewLoader().Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadShippedCatalog(t *testing.T) {
	cat, err := NewLoader().Load(filepath.Join("..", "..", "configs", "catalog.json"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cat.Len(), 11)

	// Every category should be represented by at least one item.
	seen := make(map[domain.Category]bool)
	for _, item := range cat.Items() {
		seen[item.Category] = true
	}
	for _, category := range domain.AllCategories {
		assert.True(t, seen[category], "no catalog item for category %s", category)
	}
}

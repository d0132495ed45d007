package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackgarden/stackgarden/internal/domain"
)

var testCategories = map[string]domain.Category{
	"web_server":    domain.CategoryCompute,
	"sql_db":        domain.CategoryDatabase,
	"cdn":           domain.CategoryEdge,
	"metrics_stack": domain.CategoryObservability,
}

func resolveTestCategory(itemType string) (domain.Category, bool) {
	c, ok := testCategories[itemType]
	return c, ok
}

func TestPlaceSnapsAndAssignsID(t *testing.T) {
	arch := &Architecture{}

	placed, err := arch.Place("web_server", domain.Position{X: 47, Y: 82})
	require.NoError(t, err)

	assert.Equal(t, "web_server-1", placed.ID)
	assert.Equal(t, domain.Position{X: 40, Y: 80}, placed.Position)
	assert.Equal(t, 1, placed.Tier)
}

func TestPlaceRejectsOverlap(t *testing.T) {
	arch := &Architecture{}

	_, err := arch.Place("web_server", domain.Position{X: 100, Y: 100})
	require.NoError(t, err)

	_, err = arch.Place("sql_db", domain.Position{X: 100, Y: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidPlacement)
	assert.Len(t, arch.Components, 1)
}

func TestQuickPlaceUsesFirstFreePosition(t *testing.T) {
	arch := &Architecture{}

	first, err := arch.QuickPlace("web_server")
	require.NoError(t, err)
	assert.Equal(t, domain.Position{X: 0, Y: 0}, first.Position)

	second, err := arch.QuickPlace("web_server")
	require.NoError(t, err)
	assert.Equal(t, domain.Position{X: ComponentSize, Y: 0}, second.Position)
	assert.Equal(t, "web_server-2", second.ID)
}

func TestMoveRevalidatesExcludingSelf(t *testing.T) {
	arch := &Architecture{}

	placed, err := arch.Place("web_server", domain.Position{X: 100, Y: 100})
	require.NoError(t, err)
	_, err = arch.Place("sql_db", domain.Position{X: 200, Y: 100})
	require.NoError(t, err)

	// Nudging within its own footprint is fine: the mover is excluded.
	moved, err := arch.Move(placed.ID, domain.Position{X: 110, Y: 100})
	require.NoError(t, err)
	assert.Equal(t, domain.Position{X: 120, Y: 100}, moved.Position)

	// Moving onto the other component is rejected.
	_, err = arch.Move(placed.ID, domain.Position{X: 200, Y: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidPlacement)

	_, err = arch.Move("ghost-1", domain.Position{X: 0, Y: 0})
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)
}

func TestRemoveCascadesConnections(t *testing.T) {
	arch := &Architecture{}

	web, err := arch.Place("web_server", domain.Position{X: 0, Y: 0})
	require.NoError(t, err)
	db, err := arch.Place("sql_db", domain.Position{X: 100, Y: 0})
	require.NoError(t, err)
	metrics, err := arch.Place("metrics_stack", domain.Position{X: 200, Y: 0})
	require.NoError(t, err)

	_, err = arch.Connect(web.ID, db.ID, "data", resolveTestCategory)
	require.NoError(t, err)
	_, err = arch.Connect(db.ID, metrics.ID, "telemetry", resolveTestCategory)
	require.NoError(t, err)

	require.NoError(t, arch.Remove(db.ID))

	assert.Len(t, arch.Components, 2)
	assert.Empty(t, arch.Connections, "both edges referenced the removed component")

	assert.ErrorIs(t, arch.Remove(db.ID), domain.ErrComponentNotFound)
}

func TestConnectValidations(t *testing.T) {
	arch := &Architecture{}

	web, err := arch.Place("web_server", domain.Position{X: 0, Y: 0})
	require.NoError(t, err)
	db, err := arch.Place("sql_db", domain.Position{X: 100, Y: 0})
	require.NoError(t, err)

	// Missing endpoint.
	_, err = arch.Connect(web.ID, "ghost-1", "data", resolveTestCategory)
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)

	// Valid edge.
	_, err = arch.Connect(web.ID, db.ID, "data", resolveTestCategory)
	require.NoError(t, err)

	// Same unordered pair, either direction, is a duplicate.
	_, err = arch.Connect(db.ID, web.ID, "data", resolveTestCategory)
	assert.ErrorIs(t, err, domain.ErrDuplicateEdge)

	// Self-connection is rejected even when the category pair would
	// permit the direction.
	cdn, err := arch.Place("cdn", domain.Position{X: 200, Y: 0})
	require.NoError(t, err)
	_, err = arch.Connect(cdn.ID, cdn.ID, "traffic", resolveTestCategory)
	assert.ErrorIs(t, err, domain.ErrConnectionRejected)
	assert.Contains(t, err.Error(), "itself")
}

func TestConnectEnforcesMatrix(t *testing.T) {
	arch := &Architecture{}

	db, err := arch.Place("sql_db", domain.Position{X: 0, Y: 0})
	require.NoError(t, err)
	web, err := arch.Place("web_server", domain.Position{X: 100, Y: 0})
	require.NoError(t, err)

	_, err = arch.Connect(db.ID, web.ID, "data", resolveTestCategory)
	require.ErrorIs(t, err, domain.ErrConnectionRejected)
	// The rejection carries the actionable hint.
	assert.Contains(t, err.Error(), "compute to the database")
}

func TestDisconnect(t *testing.T) {
	arch := &Architecture{}

	web, err := arch.Place("web_server", domain.Position{X: 0, Y: 0})
	require.NoError(t, err)
	db, err := arch.Place("sql_db", domain.Position{X: 100, Y: 0})
	require.NoError(t, err)

	_, err = arch.Connect(web.ID, db.ID, "data", resolveTestCategory)
	require.NoError(t, err)

	require.NoError(t, arch.Disconnect(db.ID, web.ID)) // either direction
	assert.Empty(t, arch.Connections)

	assert.Error(t, arch.Disconnect(web.ID, db.ID))
}

func TestUpgradeTier(t *testing.T) {
	arch := &Architecture{}

	web, err := arch.Place("web_server", domain.Position{X: 0, Y: 0})
	require.NoError(t, err)

	upgraded, err := arch.UpgradeTier(web.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, upgraded.Tier)

	_, err = arch.UpgradeTier("ghost-1")
	assert.ErrorIs(t, err, domain.ErrComponentNotFound)
}

// Package canvas implements the grid placement engine and the
// category-to-category connection permission matrix.
package canvas

import (
	"fmt"
	"math"

	"github.com/stackgarden/stackgarden/internal/domain"
)

// Grid geometry. Every placed component occupies a 2x2 block of cells.
const (
	CanvasWidth  = 1200
	CanvasHeight = 800
	CellSize     = 20
	// ComponentSize is the footprint side length: 2 cells.
	ComponentSize = 2 * CellSize
)

// SnapToGrid rounds each coordinate to the nearest cell boundary,
// half away from zero.
func SnapToGrid(p domain.Position) domain.Position {
	return domain.Position{
		X: int(math.Round(float64(p.X)/CellSize)) * CellSize,
		Y: int(math.Round(float64(p.Y)/CellSize)) * CellSize,
	}
}

// IsValidPlacement reports whether a component footprint at p stays inside
// the canvas and clear of every existing footprint. excludeID skips one
// component, used when moving it.
func IsValidPlacement(p domain.Position, existing []domain.PlacedComponent, excludeID string) bool {
	if p.X < 0 || p.Y < 0 || p.X+ComponentSize > CanvasWidth || p.Y+ComponentSize > CanvasHeight {
		return false
	}
	for _, other := range existing {
		if excludeID != "" && other.ID == excludeID {
			continue
		}
		if footprintsOverlap(p, other.Position) {
			return false
		}
	}
	return true
}

// footprintsOverlap is the standard AABB separation test: two footprints
// overlap unless one is entirely to the left, right, above, or below the
// other. Touching edges do not overlap.
func footprintsOverlap(a, b domain.Position) bool {
	if a.X+ComponentSize <= b.X || b.X+ComponentSize <= a.X {
		return false
	}
	if a.Y+ComponentSize <= b.Y || b.Y+ComponentSize <= a.Y {
		return false
	}
	return true
}

// FindAvailablePosition scans grid-aligned candidates top-to-bottom,
// left-to-right and returns the first valid one. The deterministic order is
// what gives quick-place a stable default position.
func FindAvailablePosition(existing []domain.PlacedComponent) (domain.Position, bool) {
	for y := 0; y+ComponentSize <= CanvasHeight; y += CellSize {
		for x := 0; x+ComponentSize <= CanvasWidth; x += CellSize {
			p := domain.Position{X: x, Y: y}
			if IsValidPlacement(p, existing, "") {
				return p, true
			}
		}
	}
	return domain.Position{}, false
}

// GenerateInstanceID returns "{type}-{n}" where n is one past the number of
// live instances of the type, advanced until free so removals can never
// cause a collision. IDs are monotonically increasing per type and are not
// recycled.
func GenerateInstanceID(componentType string, existing []domain.PlacedComponent) string {
	count := 0
	taken := make(map[string]bool)
	for _, c := range existing {
		if c.Type == componentType {
			count++
		}
		taken[c.ID] = true
	}

	n := count + 1
	for {
		id := fmt.Sprintf("%s-%d", componentType, n)
		if !taken[id] {
			return id
		}
		n++
	}
}

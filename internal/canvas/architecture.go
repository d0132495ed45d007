package canvas

import (
	"fmt"

	"github.com/stackgarden/stackgarden/internal/domain"
)

// CategoryResolver maps a catalog item id to its category. The catalog
// provides the implementation; canvas stays independent of catalog loading.
type CategoryResolver func(itemType string) (domain.Category, bool)

// Architecture is the mutable canvas state: placed components plus the
// directed connections between them.
type Architecture struct {
	Components  []domain.PlacedComponent
	Connections []domain.Connection
}

// Component finds a placed component by instance id.
func (a *Architecture) Component(id string) (domain.PlacedComponent, bool) {
	for _, c := range a.Components {
		if c.ID == id {
			return c, true
		}
	}
	return domain.PlacedComponent{}, false
}

// Place validates the position and instantiates a component of the given
// type at tier 1. The position is snapped to the grid before validation.
func (a *Architecture) Place(componentType string, p domain.Position) (domain.PlacedComponent, error) {
	snapped := SnapToGrid(p)
	if !IsValidPlacement(snapped, a.Components, "") {
		return domain.PlacedComponent{}, domain.ErrInvalidPlacement
	}

	placed := domain.PlacedComponent{
		ID:       GenerateInstanceID(componentType, a.Components),
		Type:     componentType,
		Position: snapped,
		Tier:     1,
	}
	a.Components = append(a.Components, placed)
	return placed, nil
}

// QuickPlace instantiates a component at the first free grid position.
func (a *Architecture) QuickPlace(componentType string) (domain.PlacedComponent, error) {
	p, ok := FindAvailablePosition(a.Components)
	if !ok {
		return domain.PlacedComponent{}, domain.ErrCanvasFull
	}
	return a.Place(componentType, p)
}

// Move re-validates the target position excluding the moving component
// itself, then updates it in place.
func (a *Architecture) Move(id string, p domain.Position) (domain.PlacedComponent, error) {
	idx := -1
	for i, c := range a.Components {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.PlacedComponent{}, domain.ErrComponentNotFound
	}

	snapped := SnapToGrid(p)
	if !IsValidPlacement(snapped, a.Components, id) {
		return domain.PlacedComponent{}, domain.ErrInvalidPlacement
	}

	a.Components[idx].Position = snapped
	return a.Components[idx], nil
}

// Remove deletes a component and cascades: every connection referencing it
// goes with it.
func (a *Architecture) Remove(id string) error {
	idx := -1
	for i, c := range a.Components {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrComponentNotFound
	}

	a.Components = append(a.Components[:idx], a.Components[idx+1:]...)

	kept := a.Connections[:0]
	for _, conn := range a.Connections {
		if conn.From != id && conn.To != id {
			kept = append(kept, conn)
		}
	}
	a.Connections = kept
	return nil
}

// UpgradeTier raises a component's tier by one. Tiers are monotonically
// non-decreasing; the paid validation happens in the session service.
func (a *Architecture) UpgradeTier(id string) (domain.PlacedComponent, error) {
	for i, c := range a.Components {
		if c.ID == id {
			a.Components[i].Tier++
			return a.Components[i], nil
		}
	}
	return domain.PlacedComponent{}, domain.ErrComponentNotFound
}

// Connect creates a directed edge after checking that both endpoints exist,
// the unordered pair isn't already connected, and the category matrix
// permits the direction. Rejections carry the human-readable hint.
func (a *Architecture) Connect(fromID, toID, connType string, resolve CategoryResolver) (domain.Connection, error) {
	from, ok := a.Component(fromID)
	if !ok {
		return domain.Connection{}, fmt.Errorf("%w: %s", domain.ErrComponentNotFound, fromID)
	}
	to, ok := a.Component(toID)
	if !ok {
		return domain.Connection{}, fmt.Errorf("%w: %s", domain.ErrComponentNotFound, toID)
	}

	if fromID == toID {
		return domain.Connection{}, fmt.Errorf("%w: a component cannot connect to itself", domain.ErrConnectionRejected)
	}

	for _, conn := range a.Connections {
		if (conn.From == fromID && conn.To == toID) || (conn.From == toID && conn.To == fromID) {
			return domain.Connection{}, domain.ErrDuplicateEdge
		}
	}

	fromCat, ok := resolve(from.Type)
	if !ok {
		return domain.Connection{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, from.Type)
	}
	toCat, ok := resolve(to.Type)
	if !ok {
		return domain.Connection{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, to.Type)
	}

	if !IsValidConnection(fromCat, toCat) {
		return domain.Connection{}, fmt.Errorf("%w: %s", domain.ErrConnectionRejected, ConnectionHint(fromCat, toCat))
	}

	conn := domain.Connection{From: fromID, To: toID, Type: connType}
	a.Connections = append(a.Connections, conn)
	return conn, nil
}

// Disconnect removes the edge between two components, either direction.
func (a *Architecture) Disconnect(fromID, toID string) error {
	for i, conn := range a.Connections {
		if (conn.From == fromID && conn.To == toID) || (conn.From == toID && conn.To == fromID) {
			a.Connections = append(a.Connections[:i], a.Connections[i+1:]...)
			return nil
		}
	}
	return domain.ErrComponentNotFound
}

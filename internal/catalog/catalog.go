// Package catalog owns the static item definitions and the purchase rules.
package catalog

import (
	"github.com/stackgarden/stackgarden/internal/domain"
)

// Catalog is the immutable set of purchasable items, loaded once at startup.
type Catalog struct {
	items []domain.CatalogItem
	byID  map[string]domain.CatalogItem
}

// New builds a catalog from item definitions. Ordering is preserved for
// display purposes.
func New(items []domain.CatalogItem) *Catalog {
	byID := make(map[string]domain.CatalogItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &Catalog{items: items, byID: byID}
}

// Item looks up a definition by id.
func (c *Catalog) Item(id string) (domain.CatalogItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Items returns the definitions in load order. Callers must not mutate the
// returned slice.
func (c *Catalog) Items() []domain.CatalogItem {
	return c.items
}

// Category returns the category of the item with the given id.
func (c *Catalog) Category(id string) (domain.Category, bool) {
	item, ok := c.byID[id]
	if !ok {
		return "", false
	}
	return item.Category, true
}

// Len returns the number of defined items.
func (c *Catalog) Len() int {
	return len(c.items)
}

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/stackgarden/stackgarden/internal/domain"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateItemID     = errors.New("duplicate item id")
	ErrUnknownCategory     = errors.New("unknown category")
	ErrUnknownPrerequisite = errors.New("unknown prerequisite id")
	ErrInvalidConfig       = errors.New("invalid catalog configuration")
)

// Config represents the JSON configuration for the catalog
type Config struct {
	Version     string `json:"version" validate:"required"`
	Description string `json:"description"`

	Items []Def `json:"items" validate:"required,min=1,dive"`
}

// Def represents a single item definition in the JSON
type Def struct {
	ID            string    `json:"id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Category      string    `json:"category" validate:"required"`
	Cost          int       `json:"cost" validate:"gte=0"`
	Prerequisites []string  `json:"prerequisites,omitempty"`
	Tiers         []TierDef `json:"tiers,omitempty" validate:"omitempty,dive"`
	Repeatable    bool      `json:"repeatable,omitempty"`
}

// TierDef represents one upgrade tier in the JSON
type TierDef struct {
	Tier int    `json:"tier" validate:"gte=2"`
	Cost int    `json:"cost" validate:"gte=0"`
	Name string `json:"name" validate:"required"`
}

// Loader handles loading and validating the catalog configuration
type Loader interface {
	Load(path string) (*Catalog, error)
}

type catalogLoader struct {
	validate *validator.Validate
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &catalogLoader{validate: validator.New()}
}

// Load reads, validates and indexes a catalog JSON file.
func (l *catalogLoader) Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog config: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse catalog config: %w", err)
	}

	if err := l.validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	items, err := buildItems(config)
	if err != nil {
		return nil, err
	}
	return New(items), nil
}

func buildItems(config Config) ([]domain.CatalogItem, error) {
	seen := make(map[string]bool, len(config.Items))
	for _, def := range config.Items {
		if seen[def.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateItemID, def.ID)
		}
		seen[def.ID] = true

		if !domain.Category(def.Category).Valid() {
			return nil, fmt.Errorf("%w: %q on item %s", ErrUnknownCategory, def.Category, def.ID)
		}
	}

	items := make([]domain.CatalogItem, 0, len(config.Items))
	for _, def := range config.Items {
		for _, prereq := range def.Prerequisites {
			if !seen[prereq] {
				return nil, fmt.Errorf("%w: %q on item %s", ErrUnknownPrerequisite, prereq, def.ID)
			}
		}

		tiers := make([]domain.UpgradeTier, 0, len(def.Tiers))
		for _, t := range def.Tiers {
			tiers = append(tiers, domain.UpgradeTier{Tier: t.Tier, Cost: t.Cost, Name: t.Name})
		}

		items = append(items, domain.CatalogItem{
			ID:            def.ID,
			Name:          def.Name,
			Category:      domain.Category(def.Category),
			Cost:          def.Cost,
			Prerequisites: def.Prerequisites,
			Tiers:         tiers,
			Repeatable:    def.Repeatable,
		})
	}
	return items, nil
}

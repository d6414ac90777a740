package domain

import "github.com/google/uuid"

// Grouping for cost settings: fixed overheads, distance/time-driven items,
// and surcharges that depend on the cargo itself.
type CostCategory string

const (
	CategoryBase     CostCategory = "base"
	CategoryVariable CostCategory = "variable"
	CategoryCargo    CostCategory = "cargo_specific"
)

// ValidCategory reports whether c is one of the known cost categories.
func ValidCategory(c CostCategory) bool {
	switch c {
	case CategoryBase, CategoryVariable, CategoryCargo:
		return true
	}
	return false
}

// A configurable pricing component. Read-only during a cost calculation;
// mutated only through the settings-update operation, which validates it.
type CostSetting struct {
	ID          uuid.UUID
	Type        string
	Category    CostCategory
	BaseValue   float64
	Multiplier  float64
	Currency    string
	IsEnabled   bool
	Description string
}

// Categorized result of one cost calculation. Produced fresh on every call;
// amounts are kept unrounded, rounding happens at the serialization boundary.
type CostBreakdown struct {
	Categories map[CostCategory]map[string]float64
	Subtotals  map[CostCategory]float64
	Total      float64
	Currency   string
}

package services

import (
	"log"

	"cargo-offer-service/internal/domain"
)

// Variable cost types that scale with route duration rather than distance.
// Any other variable type scales per kilometer, falling back to a flat
// amount when it matches neither convention.
var perHourCostTypes = map[string]bool{
	"driver": true,
	"time":   true,
}

var perKmCostTypes = map[string]bool{
	"fuel":          true,
	"toll":          true,
	"maintenance":   true,
	"adr_surcharge": true,
	"refrigeration": true,
}

const defaultCurrency = "EUR"

// CalculateCosts aggregates all enabled cost settings over a route into a
// categorized breakdown with a grand total.
//
// Disabled settings never appear in the output, not even with a zero amount.
// Amounts are summed unrounded; rounding is a presentation concern. Settings
// with mixed currencies are rejected rather than silently summed.
func CalculateCosts(route *domain.Route, settings []domain.CostSetting) (*domain.CostBreakdown, error) {
	breakdown := &domain.CostBreakdown{
		Categories: make(map[domain.CostCategory]map[string]float64),
		Subtotals:  make(map[domain.CostCategory]float64),
		Currency:   defaultCurrency,
	}

	enabled := make([]domain.CostSetting, 0, len(settings))
	for _, s := range settings {
		if s.IsEnabled {
			enabled = append(enabled, s)
		}
	}

	if len(enabled) == 0 {
		// An all-zero breakdown is valid output: the operator disabled
		// everything. Worth a warning, not an error.
		log.Printf("cost calculation: no enabled cost settings, returning zero breakdown route_id=%s", route.ID)
		return breakdown, nil
	}

	currency := enabled[0].Currency
	for _, s := range enabled[1:] {
		if s.Currency != currency {
			return nil, &domain.ValidationError{
				Code:    domain.CodeMixedCurrency,
				Message: "cost settings use mixed currencies: " + currency + " and " + s.Currency,
			}
		}
	}
	breakdown.Currency = currency

	totalKm := route.TotalDistanceKm()
	totalHours := route.TotalDurationHours

	for _, s := range enabled {
		amount := itemAmount(s, route, totalKm, totalHours)

		if breakdown.Categories[s.Category] == nil {
			breakdown.Categories[s.Category] = make(map[string]float64)
		}
		breakdown.Categories[s.Category][s.Type] += amount
		breakdown.Subtotals[s.Category] += amount
	}

	for _, subtotal := range breakdown.Subtotals {
		breakdown.Total += subtotal
	}

	return breakdown, nil
}

// itemAmount applies the category-specific scaling driver to one setting.
func itemAmount(s domain.CostSetting, route *domain.Route, totalKm, totalHours float64) float64 {
	base := s.BaseValue * s.Multiplier

	switch s.Category {
	case domain.CategoryVariable:
		switch {
		case perKmCostTypes[s.Type]:
			return base * totalKm
		case perHourCostTypes[s.Type]:
			return base * totalHours
		default:
			return base
		}
	case domain.CategoryCargo:
		// Cargo surcharges apply per kilogram when weight is known, flat
		// otherwise.
		if route.Cargo != nil && route.Cargo.WeightKg > 0 {
			return base * route.Cargo.WeightKg
		}
		return base
	default:
		// base/fixed: the value stands regardless of distance or duration.
		return base
	}
}

package dto

import (
	"math"

	"cargo-offer-service/internal/domain"

	"github.com/google/uuid"
)

// Round2 rounds to two decimals. Applied only at the presentation boundary;
// service-layer amounts stay unrounded so subtotals reconcile exactly.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type CostSettingPayload struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	BaseValue   float64 `json:"base_value"`
	Multiplier  float64 `json:"multiplier"`
	Currency    string  `json:"currency"`
	IsEnabled   bool    `json:"is_enabled"`
	Description string  `json:"description"`
}

type UpdateCostSettingsRequest struct {
	Settings []CostSettingPayload `json:"settings"`
}

type ListCostSettingsResponse struct {
	Settings []CostSettingPayload `json:"settings"`
}

// ToDomain converts a settings payload; an absent or malformed id yields
// uuid.Nil, which the repositories replace with a fresh id on upsert.
func (p CostSettingPayload) ToDomain() domain.CostSetting {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		id = uuid.Nil
	}
	return domain.CostSetting{
		ID:          id,
		Type:        p.Type,
		Category:    domain.CostCategory(p.Category),
		BaseValue:   p.BaseValue,
		Multiplier:  p.Multiplier,
		Currency:    p.Currency,
		IsEnabled:   p.IsEnabled,
		Description: p.Description,
	}
}

func NewCostSettingPayload(s domain.CostSetting) CostSettingPayload {
	return CostSettingPayload{
		ID:          s.ID.String(),
		Type:        s.Type,
		Category:    string(s.Category),
		BaseValue:   s.BaseValue,
		Multiplier:  s.Multiplier,
		Currency:    s.Currency,
		IsEnabled:   s.IsEnabled,
		Description: s.Description,
	}
}

type CostBreakdownResponse struct {
	Categories map[string]map[string]float64 `json:"categories"`
	Subtotals  map[string]float64            `json:"subtotals"`
	Total      float64                       `json:"total"`
	Currency   string                        `json:"currency"`
}

type CalculateCostsResponse struct {
	RouteID   string                `json:"route_id"`
	Breakdown CostBreakdownResponse `json:"breakdown"`
}

func NewCostBreakdownResponse(b *domain.CostBreakdown) CostBreakdownResponse {
	categories := make(map[string]map[string]float64, len(b.Categories))
	for cat, items := range b.Categories {
		rounded := make(map[string]float64, len(items))
		for typ, amount := range items {
			rounded[typ] = Round2(amount)
		}
		categories[string(cat)] = rounded
	}

	subtotals := make(map[string]float64, len(b.Subtotals))
	for cat, amount := range b.Subtotals {
		subtotals[string(cat)] = Round2(amount)
	}

	return CostBreakdownResponse{
		Categories: categories,
		Subtotals:  subtotals,
		Total:      Round2(b.Total),
		Currency:   b.Currency,
	}
}

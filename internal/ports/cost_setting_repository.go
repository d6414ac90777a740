package ports

import (
	"context"

	"cargo-offer-service/internal/domain"
)

// Port: boundary for reading and updating cost settings. Settings are
// validated before UpdateCostSettings is called; the store persists them
// as given.
type CostSettingRepository interface {
	ListCostSettings(ctx context.Context) ([]domain.CostSetting, error)
	ListEnabledCostSettings(ctx context.Context) ([]domain.CostSetting, error)
	UpdateCostSettings(ctx context.Context, settings []domain.CostSetting) ([]domain.CostSetting, error)
}

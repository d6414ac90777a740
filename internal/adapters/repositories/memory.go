package repositories

import (
	"context"
	"sync"

	"cargo-offer-service/internal/domain"

	"github.com/google/uuid"
)

// Memory is a mutex-guarded in-memory store implementing the route, offer,
// and cost-setting repository ports. Used in tests and when no database is
// configured.
type Memory struct {
	mu       sync.Mutex
	routes   map[uuid.UUID]*domain.Route
	offers   []*domain.Offer
	settings []domain.CostSetting
}

func NewMemory(settings []domain.CostSetting) *Memory {
	return &Memory{
		routes:   make(map[uuid.UUID]*domain.Route),
		settings: append([]domain.CostSetting(nil), settings...),
	}
}

func (m *Memory) SaveRoute(ctx context.Context, route *domain.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[route.ID] = route
	return nil
}

func (m *Memory) GetRoute(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.routes[id], nil
}

func (m *Memory) SaveOffer(ctx context.Context, offer *domain.Offer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offers = append(m.offers, offer)
	return nil
}

func (m *Memory) ListOffers(ctx context.Context) ([]*domain.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Newest first, matching the SQL repositories.
	out := make([]*domain.Offer, 0, len(m.offers))
	for i := len(m.offers) - 1; i >= 0; i-- {
		out = append(out, m.offers[i])
	}
	return out, nil
}

func (m *Memory) ListCostSettings(ctx context.Context) ([]domain.CostSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CostSetting(nil), m.settings...), nil
}

func (m *Memory) ListEnabledCostSettings(ctx context.Context) ([]domain.CostSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.CostSetting, 0, len(m.settings))
	for _, s := range m.settings {
		if s.IsEnabled {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *Memory) UpdateCostSettings(ctx context.Context, settings []domain.CostSetting) ([]domain.CostSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID := make(map[uuid.UUID]int, len(m.settings))
	for i, s := range m.settings {
		byID[s.ID] = i
	}

	for _, s := range settings {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		if i, ok := byID[s.ID]; ok {
			m.settings[i] = s
		} else {
			byID[s.ID] = len(m.settings)
			m.settings = append(m.settings, s)
		}
	}

	return append([]domain.CostSetting(nil), m.settings...), nil
}

// DefaultCostSettings mirrors the seed data shipped with the service.
func DefaultCostSettings() []domain.CostSetting {
	return []domain.CostSetting{
		{ID: uuid.New(), Type: "fuel", Category: domain.CategoryVariable, BaseValue: 1.5, Multiplier: 1, Currency: "EUR", IsEnabled: true, Description: "Fuel cost per kilometer"},
		{ID: uuid.New(), Type: "driver", Category: domain.CategoryVariable, BaseValue: 30, Multiplier: 1, Currency: "EUR", IsEnabled: true, Description: "Driver wages per hour"},
		{ID: uuid.New(), Type: "toll", Category: domain.CategoryVariable, BaseValue: 0.2, Multiplier: 1, Currency: "EUR", IsEnabled: true, Description: "Toll rate per kilometer"},
		{ID: uuid.New(), Type: "maintenance", Category: domain.CategoryVariable, BaseValue: 0.2, Multiplier: 1, Currency: "EUR", IsEnabled: true, Description: "Vehicle maintenance per kilometer"},
		{ID: uuid.New(), Type: "insurance", Category: domain.CategoryBase, BaseValue: 100, Multiplier: 1, Currency: "EUR", IsEnabled: true, Description: "Fixed insurance cost per transport"},
	}
}

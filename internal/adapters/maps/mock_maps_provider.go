package maps

import (
	"context"

	"cargo-offer-service/internal/domain"
)

// MockRoute pairs an origin/destination address with a canned main route.
type MockRoute struct {
	From string
	To   string
	Main domain.MainRoute
}

// MockMapsProvider implements the maps port with static data. Unknown
// address pairs fall back to a default central-European corridor so the
// service stays usable without a real mapping integration.
type MockMapsProvider struct {
	m map[string]domain.MainRoute
}

func NewMockMapsProvider(routes []MockRoute) *MockMapsProvider {
	m := make(map[string]domain.MainRoute, len(routes))
	for _, r := range routes {
		m[r.From+"|"+r.To] = r.Main
	}
	return &MockMapsProvider{m: m}
}

func (p *MockMapsProvider) GetMainRoute(ctx context.Context, origin, destination domain.Location) (domain.MainRoute, error) {
	if r, ok := p.m[origin.Address+"|"+destination.Address]; ok {
		return r, nil
	}
	return DefaultMainRoute(), nil
}

// DefaultMainRoute is the canned 1000 km / 10 h two-country corridor used
// whenever no specific mock data matches.
func DefaultMainRoute() domain.MainRoute {
	return domain.MainRoute{
		DistanceKm:    1000,
		DurationHours: 10,
		CountrySegments: []domain.CountrySegment{
			{Country: "Germany", DistanceKm: 400, DurationHours: 5},
			{Country: "France", DistanceKm: 600, DurationHours: 7},
		},
	}
}

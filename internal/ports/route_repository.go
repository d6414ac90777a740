package ports

import (
	"context"

	"cargo-offer-service/internal/domain"

	"github.com/google/uuid"
)

// Port: hand-off boundary for generated routes. The core never performs I/O
// itself; repositories serialize the aggregate as they see fit.
type RouteRepository interface {
	SaveRoute(ctx context.Context, route *domain.Route) error
	// GetRoute returns (nil, nil) when the route does not exist.
	GetRoute(ctx context.Context, id uuid.UUID) (*domain.Route, error)
}

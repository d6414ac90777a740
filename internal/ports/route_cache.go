package ports

import (
	"context"

	"cargo-offer-service/internal/domain"

	"github.com/google/uuid"
)

// Optional read-through cache for generated routes, keyed by route ID.
// GetRoute returns (nil, nil) on a miss; callers fall back to the repository.
type RouteCache interface {
	GetRoute(ctx context.Context, id uuid.UUID) (*domain.Route, error)
	PutRoute(ctx context.Context, route *domain.Route) error
}

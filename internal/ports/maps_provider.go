package ports

import (
	"context"

	"cargo-offer-service/internal/domain"
)

// Contract for retrieving the loaded transport leg between two locations,
// including per-country segments. Mocked in this deployment; a real mapping
// integration implements the same interface.
type MapsProvider interface {
	GetMainRoute(ctx context.Context, origin, destination domain.Location) (domain.MainRoute, error)
}

// Source of the truck repositioning leg to the pickup point. Fixed constants
// today, a computed reposition calculation later.
type EmptyDrivingSource interface {
	GetEmptyDriving(ctx context.Context, origin domain.Location) (domain.EmptyDriving, error)
}

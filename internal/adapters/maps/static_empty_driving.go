package maps

import (
	"context"

	"cargo-offer-service/internal/domain"
)

// StaticEmptyDrivingSource returns a fixed repositioning leg regardless of
// origin. Stands in for a future calculation from actual truck positions.
type StaticEmptyDrivingSource struct {
	DistanceKm    float64
	DurationHours float64
	BaseCost      float64
}

// NewStaticEmptyDrivingSource returns the default 200 km / 4 h / 100 EUR leg.
func NewStaticEmptyDrivingSource() *StaticEmptyDrivingSource {
	return &StaticEmptyDrivingSource{DistanceKm: 200, DurationHours: 4, BaseCost: 100}
}

func (s *StaticEmptyDrivingSource) GetEmptyDriving(ctx context.Context, origin domain.Location) (domain.EmptyDriving, error) {
	return domain.EmptyDriving{
		DistanceKm:    s.DistanceKm,
		DurationHours: s.DurationHours,
		BaseCost:      s.BaseCost,
	}, nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Per-country slice of the loaded transport leg.
type CountrySegment struct {
	Country       string
	DistanceKm    float64
	DurationHours float64
}

// Repositioning trip to the cargo pickup point. The values are supplied by a
// pluggable source (fixed 200 km / 4 h in this deployment) so a computed
// reposition calculation can be swapped in later.
type EmptyDriving struct {
	DistanceKm    float64
	DurationHours float64
	BaseCost      float64
}

// Loaded transport leg from origin to destination, split by country.
type MainRoute struct {
	DistanceKm      float64
	DurationHours   float64
	CountrySegments []CountrySegment
}

// Route is the output of the timeline generator: a timed event sequence plus
// the distance/duration aggregates the cost engine consumes. Immutable once
// generated; it is only ever wrapped into an Offer afterwards.
type Route struct {
	ID                 uuid.UUID
	Origin             Location
	Destination        Location
	PickupTime         time.Time
	DeliveryTime       time.Time
	Cargo              *Cargo
	TransportType      *TransportType
	EmptyDriving       EmptyDriving
	MainRoute          MainRoute
	Timeline           []TimelineEvent
	TotalDurationHours float64
	IsFeasible         bool
	DurationValidated  bool
	CreatedAt          time.Time
}

// TotalDistanceKm covers both the empty repositioning leg and the main leg.
func (r *Route) TotalDistanceKm() float64 {
	return r.EmptyDriving.DistanceKm + r.MainRoute.DistanceKm
}

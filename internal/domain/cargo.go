package domain

import "github.com/google/uuid"

// Cargo details attached to a route request. Optional; absence means no
// restrictions apply.
type Cargo struct {
	ID                  uuid.UUID
	Type                string
	WeightKg            float64
	Value               float64
	SpecialRequirements []string
}

// Transport vehicle profile. Optional; absence means default capacity.
type TransportType struct {
	Name                string
	CapacityKg          float64
	RestrictedCountries []string
}

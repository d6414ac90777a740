package dto

import (
	"fmt"
	"time"

	"cargo-offer-service/internal/domain"
)

type LocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

type CargoPayload struct {
	Type                string   `json:"type"`
	WeightKg            float64  `json:"weight_kg"`
	Value               float64  `json:"value"`
	SpecialRequirements []string `json:"special_requirements"`
}

type TransportTypePayload struct {
	Name                string   `json:"name"`
	CapacityKg          float64  `json:"capacity_kg"`
	RestrictedCountries []string `json:"restricted_countries"`
}

type RouteRequest struct {
	Origin        LocationPayload       `json:"origin"`
	Destination   LocationPayload       `json:"destination"`
	PickupTime    string                `json:"pickup_time"`
	DeliveryTime  string                `json:"delivery_time"`
	Cargo         *CargoPayload         `json:"cargo"`
	TransportType *TransportTypePayload `json:"transport_type"`
}

// ParseTimestamp accepts RFC 3339 timestamps only. A value that parses as a
// local date-time but carries no UTC offset is reported as naive, so clients
// get a schedule validation error instead of a bare decode failure.
func ParseTimestamp(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &domain.ValidationError{
			Code:    domain.CodeNaiveTimestamp,
			Message: field + " is required and must be timezone-aware",
		}
	}

	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t, nil
	}

	if _, naiveErr := time.Parse("2006-01-02T15:04:05", value); naiveErr == nil {
		return time.Time{}, &domain.ValidationError{
			Code:    domain.CodeNaiveTimestamp,
			Message: fmt.Sprintf("%s %q has no UTC offset", field, value),
		}
	}

	return time.Time{}, fmt.Errorf("%s: invalid timestamp %q", field, value)
}

type EmptyDrivingResponse struct {
	DistanceKm    float64 `json:"distance_km"`
	DurationHours float64 `json:"duration_hours"`
	BaseCost      float64 `json:"base_cost"`
}

type CountrySegmentResponse struct {
	Country       string  `json:"country"`
	DistanceKm    float64 `json:"distance_km"`
	DurationHours float64 `json:"duration_hours"`
}

type MainRouteResponse struct {
	DistanceKm      float64                  `json:"distance_km"`
	DurationHours   float64                  `json:"duration_hours"`
	CountrySegments []CountrySegmentResponse `json:"country_segments"`
}

type TimelineEventResponse struct {
	Kind          string          `json:"kind"`
	Time          time.Time       `json:"time"`
	Location      LocationPayload `json:"location"`
	DurationHours float64         `json:"duration_hours"`
	Note          string          `json:"note,omitempty"`
}

type RouteResponse struct {
	RouteID            string                  `json:"route_id"`
	Origin             LocationPayload         `json:"origin"`
	Destination        LocationPayload         `json:"destination"`
	PickupTime         time.Time               `json:"pickup_time"`
	DeliveryTime       time.Time               `json:"delivery_time"`
	EmptyDriving       EmptyDrivingResponse    `json:"empty_driving"`
	MainRoute          MainRouteResponse       `json:"main_route"`
	Timeline           []TimelineEventResponse `json:"timeline"`
	TotalDurationHours float64                 `json:"total_duration_hours"`
	TotalDistanceKm    float64                 `json:"total_distance_km"`
	IsFeasible         bool                    `json:"is_feasible"`
	CreatedAt          time.Time               `json:"created_at"`
}

func NewRouteResponse(route *domain.Route) RouteResponse {
	segments := make([]CountrySegmentResponse, 0, len(route.MainRoute.CountrySegments))
	for _, s := range route.MainRoute.CountrySegments {
		segments = append(segments, CountrySegmentResponse{
			Country:       s.Country,
			DistanceKm:    Round2(s.DistanceKm),
			DurationHours: Round2(s.DurationHours),
		})
	}

	timeline := make([]TimelineEventResponse, 0, len(route.Timeline))
	for _, e := range route.Timeline {
		timeline = append(timeline, TimelineEventResponse{
			Kind:          string(e.Kind),
			Time:          e.Time,
			Location:      newLocationPayload(e.Location),
			DurationHours: Round2(e.DurationHours),
			Note:          e.Note,
		})
	}

	return RouteResponse{
		RouteID:      route.ID.String(),
		Origin:       newLocationPayload(route.Origin),
		Destination:  newLocationPayload(route.Destination),
		PickupTime:   route.PickupTime,
		DeliveryTime: route.DeliveryTime,
		EmptyDriving: EmptyDrivingResponse{
			DistanceKm:    Round2(route.EmptyDriving.DistanceKm),
			DurationHours: Round2(route.EmptyDriving.DurationHours),
			BaseCost:      Round2(route.EmptyDriving.BaseCost),
		},
		MainRoute: MainRouteResponse{
			DistanceKm:      Round2(route.MainRoute.DistanceKm),
			DurationHours:   Round2(route.MainRoute.DurationHours),
			CountrySegments: segments,
		},
		Timeline:           timeline,
		TotalDurationHours: Round2(route.TotalDurationHours),
		TotalDistanceKm:    Round2(route.TotalDistanceKm()),
		IsFeasible:         route.IsFeasible,
		CreatedAt:          route.CreatedAt,
	}
}

func newLocationPayload(loc domain.Location) LocationPayload {
	return LocationPayload{Latitude: loc.Latitude, Longitude: loc.Longitude, Address: loc.Address}
}

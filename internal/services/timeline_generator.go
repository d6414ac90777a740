package services

import (
	"fmt"
	"math"
	"time"

	"cargo-offer-service/internal/domain"

	"github.com/google/uuid"
)

// EU driving-time rules (Regulation (EC) 561/2006, simplified) and the
// loading window enforced by the timeline generator.
const (
	MaxDailyDrivingHours   = 9.0
	RequiredRestAfterHours = 4.5
	MinRestDurationHours   = 0.75
	LoadingWindowStart     = 6
	LoadingWindowEnd       = 22
	LoadingDurationHours   = 0.5
	UnloadingDurationHours = 0.5
)

// TimelineRequest carries the validated inputs for one route calculation.
// EmptyDriving and MainRoute come from their collaborator ports and are
// treated as positive, already-validated distances and durations.
type TimelineRequest struct {
	Origin        domain.Location
	Destination   domain.Location
	PickupTime    time.Time
	DeliveryTime  time.Time
	Cargo         *domain.Cargo
	TransportType *domain.TransportType
	EmptyDriving  domain.EmptyDriving
	MainRoute     domain.MainRoute
}

// GenerateRoute builds the timed event sequence for a transport:
// start, pickup, interleaved driving/rest/border events, delivery, end.
//
// A rest of at least 45 minutes is inserted whenever accumulated continuous
// driving reaches 4.5 h, and a border crossing is emitted at every
// country-segment boundary. The start event is back-computed so the pickup
// lands exactly at the requested pickup time; the delivery is anchored at
// the requested delivery time, any slack being waiting time at destination.
//
// Schedule violations fail with domain.ValidationErrors; nothing is ever
// silently clamped.
func GenerateRoute(req TimelineRequest) (*domain.Route, error) {
	if errs := ValidateTimeline(req); len(errs) > 0 {
		return nil, errs
	}

	totalDriving := req.EmptyDriving.DurationHours + req.MainRoute.DurationHours

	// Elapsed time of the repositioning leg, rests included, so the start
	// event can be placed exactly far enough before the pickup.
	emptyElapsed, _ := elapsedWithRests(req.EmptyDriving.DurationHours, 0)

	w := &timelineWalker{
		origin:      req.Origin,
		destination: req.Destination,
		totalKm:     req.EmptyDriving.DistanceKm + req.MainRoute.DistanceKm,
		now:         req.PickupTime.Add(-hoursToDuration(emptyElapsed)),
	}

	w.emit(domain.EventStart, req.Origin, 0, "Route start (empty driving to pickup)")
	w.drive(req.EmptyDriving.DurationHours, req.EmptyDriving.DistanceKm)

	// Pickup is anchored to the requested time; loading takes 30 minutes and
	// does not count as rest.
	w.now = req.PickupTime
	w.emit(domain.EventPickup, req.Origin, LoadingDurationHours, "Loading cargo")
	w.now = w.now.Add(hoursToDuration(LoadingDurationHours))

	segments := req.MainRoute.CountrySegments
	if len(segments) == 0 {
		segments = []domain.CountrySegment{{
			DistanceKm:    req.MainRoute.DistanceKm,
			DurationHours: req.MainRoute.DurationHours,
		}}
	}
	for i, seg := range segments {
		w.drive(seg.DurationHours, seg.DistanceKm)
		if i < len(segments)-1 {
			next := segments[i+1]
			loc := w.progressPoint()
			loc.Address = fmt.Sprintf("%s/%s border", seg.Country, next.Country)
			w.emit(domain.EventBorderCrossing, loc, 0,
				fmt.Sprintf("Crossing from %s into %s", seg.Country, next.Country))
		}
	}

	deliveryStart := req.DeliveryTime.Add(-hoursToDuration(UnloadingDurationHours))
	if w.now.After(deliveryStart) {
		return nil, domain.ValidationErrors{{
			Code: domain.CodeScheduleTooTight,
			Message: fmt.Sprintf(
				"computed arrival %s is after the latest delivery start %s",
				w.now.Format(time.RFC3339), deliveryStart.Format(time.RFC3339),
			),
		}}
	}

	w.now = deliveryStart
	w.emit(domain.EventDelivery, req.Destination, UnloadingDurationHours, "Unloading cargo")
	w.now = req.DeliveryTime
	w.emit(domain.EventEnd, req.Destination, 0, "Route complete")

	return &domain.Route{
		ID:                 uuid.New(),
		Origin:             req.Origin,
		Destination:        req.Destination,
		PickupTime:         req.PickupTime,
		DeliveryTime:       req.DeliveryTime,
		Cargo:              req.Cargo,
		TransportType:      req.TransportType,
		EmptyDriving:       req.EmptyDriving,
		MainRoute:          req.MainRoute,
		Timeline:           w.events,
		TotalDurationHours: totalDriving + float64(w.restCount)*MinRestDurationHours,
		IsFeasible:         true,
		DurationValidated:  true,
		CreatedAt:          time.Now().UTC(),
	}, nil
}

// timelineWalker advances wall-clock time and driven distance while
// appending events, inserting rests whenever the continuous-driving budget
// is exhausted.
type timelineWalker struct {
	events      []domain.TimelineEvent
	origin      domain.Location
	destination domain.Location
	now         time.Time
	continuous  float64
	drivenKm    float64
	totalKm     float64
	restCount   int
}

func (w *timelineWalker) emit(kind domain.EventKind, loc domain.Location, durationHours float64, note string) {
	w.events = append(w.events, domain.TimelineEvent{
		Kind:          kind,
		Time:          w.now,
		Location:      loc,
		DurationHours: durationHours,
		Note:          note,
	})
}

func (w *timelineWalker) drive(durationHours, distanceKm float64) {
	if durationHours <= 0 {
		return
	}
	kmPerHour := distanceKm / durationHours
	remaining := durationHours

	for remaining > 1e-9 {
		drivable := RequiredRestAfterHours - w.continuous
		if drivable <= 1e-9 {
			w.rest()
			continue
		}
		step := math.Min(remaining, drivable)
		w.now = w.now.Add(hoursToDuration(step))
		w.drivenKm += step * kmPerHour
		w.continuous += step
		remaining -= step
	}
}

func (w *timelineWalker) rest() {
	w.restCount++
	loc := w.progressPoint()
	loc.Address = fmt.Sprintf("Rest area %d", w.restCount)
	w.emit(domain.EventRest, loc, MinRestDurationHours, "Mandatory rest break")
	w.now = w.now.Add(hoursToDuration(MinRestDurationHours))
	w.continuous = 0
}

// progressPoint interpolates the current position along the straight line
// between origin and destination by distance driven. A stand-in for real
// road geometry.
func (w *timelineWalker) progressPoint() domain.Location {
	if w.totalKm <= 0 {
		return w.origin
	}
	return w.origin.Interpolate(w.destination, w.drivenKm/w.totalKm)
}

// elapsedWithRests simulates driving a leg and returns its wall-clock
// duration including inserted rests, plus the continuous-driving carry-over.
func elapsedWithRests(drivingHours, continuousBefore float64) (elapsed, continuousAfter float64) {
	continuous := continuousBefore
	remaining := drivingHours

	for remaining > 1e-9 {
		drivable := RequiredRestAfterHours - continuous
		if drivable <= 1e-9 {
			elapsed += MinRestDurationHours
			continuous = 0
			continue
		}
		step := math.Min(remaining, drivable)
		elapsed += step
		continuous += step
		remaining -= step
	}

	return elapsed, continuous
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

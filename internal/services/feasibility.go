package services

import (
	"fmt"
	"math"

	"cargo-offer-service/internal/domain"
)

// ValidateTimeline checks a route request against the schedule rules before
// any events are generated: timezone-aware ordering, the loading window, and
// the driving-time ceiling with mandatory rests. It returns every violation
// found, in check order; an empty result means the timeline is generatable.
func ValidateTimeline(req TimelineRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if req.PickupTime.IsZero() || req.DeliveryTime.IsZero() {
		errs = append(errs, &domain.ValidationError{
			Code:    domain.CodeNaiveTimestamp,
			Message: "pickup and delivery times must be set and timezone-aware",
		})
		return errs
	}

	if !req.DeliveryTime.After(req.PickupTime) {
		errs = append(errs, &domain.ValidationError{
			Code:    domain.CodeInvalidSchedule,
			Message: "delivery time must be after pickup time",
		})
	}

	// The window closes at 22:00 sharp; any pickup in the 22:xx band is out.
	if hour := req.PickupTime.Hour(); hour < LoadingWindowStart || hour >= LoadingWindowEnd {
		errs = append(errs, &domain.ValidationError{
			Code: domain.CodeLoadingWindow,
			Message: fmt.Sprintf(
				"pickup at %02d:%02d is outside the loading window %02d:00-%02d:00",
				hour, req.PickupTime.Minute(), LoadingWindowStart, LoadingWindowEnd,
			),
		})
	}

	// The window must absorb all driving, the rests those hours mandate, and
	// one hour of cargo handling. Anything tighter is rejected outright: a
	// request spanning more driving than legally fits is infeasible, not
	// clampable.
	if req.DeliveryTime.After(req.PickupTime) {
		totalDriving := req.EmptyDriving.DurationHours + req.MainRoute.DurationHours
		rests := RequiredRestStops(totalDriving)
		required := totalDriving +
			float64(rests)*MinRestDurationHours +
			LoadingDurationHours + UnloadingDurationHours
		available := req.DeliveryTime.Sub(req.PickupTime).Hours()

		if available < required {
			errs = append(errs, &domain.ValidationError{
				Code: domain.CodeScheduleTooTight,
				Message: fmt.Sprintf(
					"schedule too tight: need %.1f h of driving, rest and handling but only %.1f h between pickup and delivery",
					required, available,
				),
			})
		}
	}

	return errs
}

// RequiredRestStops returns how many mandatory rests a stretch of driving
// needs under the rest-after-4.5h rule.
func RequiredRestStops(drivingHours float64) int {
	if drivingHours <= RequiredRestAfterHours {
		return 0
	}
	// Each full continuous-driving block except the last is followed by a rest.
	return int(math.Ceil(drivingHours/RequiredRestAfterHours)) - 1
}

package services

import (
	"errors"
	"testing"
	"time"

	"cargo-offer-service/internal/domain"
)

var cet = time.FixedZone("CET", 3600)

func berlinParisRequest() TimelineRequest {
	return TimelineRequest{
		Origin:       domain.Location{Latitude: 52.52, Longitude: 13.405, Address: "Berlin, Germany"},
		Destination:  domain.Location{Latitude: 48.8566, Longitude: 2.3522, Address: "Paris, France"},
		PickupTime:   time.Date(2024, 12, 8, 9, 0, 0, 0, cet),
		DeliveryTime: time.Date(2024, 12, 9, 17, 0, 0, 0, cet),
		EmptyDriving: domain.EmptyDriving{DistanceKm: 200, DurationHours: 4, BaseCost: 100},
		MainRoute: domain.MainRoute{
			DistanceKm:    1000,
			DurationHours: 10,
			CountrySegments: []domain.CountrySegment{
				{Country: "Germany", DistanceKm: 400, DurationHours: 5},
				{Country: "France", DistanceKm: 600, DurationHours: 7},
			},
		},
	}
}

func TestGenerateRouteBerlinParis(t *testing.T) {
	route, err := GenerateRoute(berlinParisRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(route.Timeline) == 0 {
		t.Fatal("timeline is empty")
	}
	if route.Timeline[0].Kind != domain.EventStart {
		t.Fatalf("first event = %q, want start", route.Timeline[0].Kind)
	}
	if last := route.Timeline[len(route.Timeline)-1]; last.Kind != domain.EventEnd {
		t.Fatalf("last event = %q, want end", last.Kind)
	}

	var rests, borders int
	var firstRest domain.TimelineEvent
	for _, ev := range route.Timeline {
		switch ev.Kind {
		case domain.EventRest:
			if rests == 0 {
				firstRest = ev
			}
			rests++
			if ev.DurationHours < MinRestDurationHours {
				t.Errorf("rest duration = %v h, want >= %v", ev.DurationHours, MinRestDurationHours)
			}
		case domain.EventBorderCrossing:
			borders++
		}
	}

	// 14 h of driving under the rest-after-4.5h rule needs three rests.
	if rests != 3 {
		t.Fatalf("rest events = %d, want 3", rests)
	}
	if borders != 1 {
		t.Fatalf("border crossings = %d, want 1", borders)
	}

	// Empty leg is 4 h, loading 30 min, so the continuous-driving budget runs
	// out 30 min after loading ends: 10:00 on pickup day.
	wantFirstRest := time.Date(2024, 12, 8, 10, 0, 0, 0, cet)
	if !firstRest.Time.Equal(wantFirstRest) {
		t.Errorf("first rest at %v, want %v", firstRest.Time, wantFirstRest)
	}

	// 14 h driving + 3 rests of 45 min.
	if got, want := route.TotalDurationHours, 16.25; got != want {
		t.Errorf("TotalDurationHours = %v, want %v", got, want)
	}
	if got, want := route.TotalDistanceKm(), 1200.0; got != want {
		t.Errorf("TotalDistanceKm = %v, want %v", got, want)
	}
	if !route.IsFeasible {
		t.Error("route should be feasible")
	}
}

func TestGenerateRouteEventsChronological(t *testing.T) {
	route, err := GenerateRoute(berlinParisRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(route.Timeline); i++ {
		prev, cur := route.Timeline[i-1], route.Timeline[i]
		if cur.Time.Before(prev.Time) {
			t.Fatalf("event %d (%s at %v) precedes event %d (%s at %v)",
				i, cur.Kind, cur.Time, i-1, prev.Kind, prev.Time)
		}
	}
}

func TestGenerateRouteContinuousDrivingBounded(t *testing.T) {
	route, err := GenerateRoute(berlinParisRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Wall-clock driving between consecutive non-driving pauses must never
	// exceed the continuous-driving budget. The delivery event is anchored to
	// the requested time and may include waiting slack, so the check stops
	// there.
	lastPauseEnd := route.Timeline[0].Time
	for _, ev := range route.Timeline {
		if ev.Kind == domain.EventDelivery {
			break
		}
		if ev.Kind != domain.EventRest && ev.Kind != domain.EventPickup {
			continue
		}
		driving := ev.Time.Sub(lastPauseEnd).Hours()
		if driving > RequiredRestAfterHours+1e-9 {
			t.Fatalf("%.2f h of driving before %s at %v exceeds %.1f h",
				driving, ev.Kind, ev.Time, RequiredRestAfterHours)
		}
		lastPauseEnd = ev.Time.Add(hoursToDuration(ev.DurationHours))
	}
}

func TestGenerateRouteRejectsInvertedWindow(t *testing.T) {
	req := berlinParisRequest()
	req.DeliveryTime = req.PickupTime.Add(-time.Hour)

	_, err := GenerateRoute(req)
	assertViolation(t, err, domain.CodeInvalidSchedule)
}

func TestGenerateRouteRejectsPickupOutsideLoadingWindow(t *testing.T) {
	req := berlinParisRequest()
	req.PickupTime = time.Date(2024, 12, 8, 23, 0, 0, 0, cet)

	_, err := GenerateRoute(req)
	assertViolation(t, err, domain.CodeLoadingWindow)
}

func TestGenerateRouteLoadingWindowBoundaries(t *testing.T) {
	// The window is [06:00, 22:00): 06:00 loads, 22:00 and later does not.
	cases := []struct {
		hour, minute int
		ok           bool
	}{
		{5, 59, false},
		{6, 0, true},
		{21, 59, true},
		{22, 0, false},
		{22, 30, false},
	}

	for _, c := range cases {
		req := berlinParisRequest()
		req.PickupTime = time.Date(2024, 12, 8, c.hour, c.minute, 0, 0, cet)
		req.DeliveryTime = req.PickupTime.Add(32 * time.Hour)

		_, err := GenerateRoute(req)
		if c.ok {
			if err != nil {
				t.Errorf("pickup %02d:%02d: unexpected error: %v", c.hour, c.minute, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("pickup %02d:%02d was accepted, want loading window violation", c.hour, c.minute)
			continue
		}
		assertViolation(t, err, domain.CodeLoadingWindow)
	}
}

func TestGenerateRouteRejectsTooTightSchedule(t *testing.T) {
	// Ten hours of driving cannot fit a ten-hour window once mandatory rests
	// and cargo handling are added.
	req := berlinParisRequest()
	req.EmptyDriving = domain.EmptyDriving{}
	req.MainRoute = domain.MainRoute{DistanceKm: 900, DurationHours: 10}
	req.PickupTime = time.Date(2024, 12, 8, 9, 0, 0, 0, cet)
	req.DeliveryTime = time.Date(2024, 12, 8, 19, 0, 0, 0, cet)

	_, err := GenerateRoute(req)
	assertViolation(t, err, domain.CodeScheduleTooTight)
}

func TestGenerateRouteWithoutCargoUsesPermissiveDefaults(t *testing.T) {
	req := berlinParisRequest()
	req.Cargo = nil
	req.TransportType = nil

	route, err := GenerateRoute(req)
	if err != nil {
		t.Fatalf("missing cargo must not be an error, got: %v", err)
	}
	if route.Cargo != nil || route.TransportType != nil {
		t.Error("absent cargo and transport type should stay nil on the route")
	}
}

func TestGenerateRouteWithoutSegmentsHasNoBorders(t *testing.T) {
	req := berlinParisRequest()
	req.MainRoute.CountrySegments = nil

	route, err := GenerateRoute(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ev := range route.Timeline {
		if ev.Kind == domain.EventBorderCrossing {
			t.Fatal("no border crossings expected without country segments")
		}
	}
}

func TestRequiredRestStops(t *testing.T) {
	cases := []struct {
		hours float64
		want  int
	}{
		{0, 0},
		{4.5, 0},
		{4.6, 1},
		{9, 1},
		{13.5, 2},
		{14, 3},
	}
	for _, c := range cases {
		if got := RequiredRestStops(c.hours); got != c.want {
			t.Errorf("RequiredRestStops(%v) = %d, want %d", c.hours, got, c.want)
		}
	}
}

func assertViolation(t *testing.T, err error, code string) {
	t.Helper()

	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}

	var errs domain.ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	for _, e := range errs {
		if e.Code == code {
			return
		}
	}
	t.Fatalf("no violation with code %q in %v", code, errs)
}

package domain

import "testing"

func TestNewLocationValidatesRanges(t *testing.T) {
	if _, err := NewLocation(52.52, 13.405, "Berlin, Germany"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewLocation(91, 0, ""); err == nil {
		t.Error("expected an error for latitude 91")
	}
	if _, err := NewLocation(0, -181, ""); err == nil {
		t.Error("expected an error for longitude -181")
	}
}

func TestInterpolate(t *testing.T) {
	a := Location{Latitude: 0, Longitude: 0}
	b := Location{Latitude: 10, Longitude: 20}

	mid := a.Interpolate(b, 0.5)
	if mid.Latitude != 5 || mid.Longitude != 10 {
		t.Errorf("midpoint = %+v, want lat 5 lon 10", mid)
	}

	// Fractions outside [0, 1] clamp to the endpoints.
	if got := a.Interpolate(b, -1); got != a {
		t.Errorf("t=-1 gave %+v, want origin", got)
	}
	if got := a.Interpolate(b, 2); got.Latitude != 10 || got.Longitude != 20 {
		t.Errorf("t=2 gave %+v, want destination", got)
	}
}

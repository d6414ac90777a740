package domain

import "fmt"

// Immutable geographic point with a human-readable address.
type Location struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// NewLocation validates coordinate ranges at construction time.
func NewLocation(lat, lon float64, address string) (Location, error) {
	if lat < -90 || lat > 90 {
		return Location{}, fmt.Errorf("new location: latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return Location{}, fmt.Errorf("new location: longitude %v out of range [-180, 180]", lon)
	}
	return Location{Latitude: lat, Longitude: lon, Address: address}, nil
}

// Interpolate returns a point at fraction t along the straight line to other.
// Used to place rest stops and border crossings along a route without a real
// road geometry source.
func (l Location) Interpolate(other Location, t float64) Location {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return Location{
		Latitude:  l.Latitude + (other.Latitude-l.Latitude)*t,
		Longitude: l.Longitude + (other.Longitude-l.Longitude)*t,
	}
}

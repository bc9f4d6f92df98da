// Package geo holds the coordinate helpers shared by the route adapters
// and the planner: great-circle distance, coordinate validation and a
// coarse country lookup.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the sphere radius used by HaversineMeters.
const EarthRadiusMeters = 6371000.0

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String formats the pair as "lat,lng" for provider query strings.
func (p LatLng) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// Valid reports whether both components are finite numbers.
func (p LatLng) Valid() bool {
	return ValidateCoordinatePair(p.Lat, p.Lng, "point") == nil
}

// HaversineMeters returns the great-circle distance between a and b. It
// reports false when either point is nil or holds NaN.
func HaversineMeters(a, b *LatLng) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	if math.IsNaN(a.Lat) || math.IsNaN(a.Lng) || math.IsNaN(b.Lat) || math.IsNaN(b.Lng) {
		return 0, false
	}

	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c, true
}

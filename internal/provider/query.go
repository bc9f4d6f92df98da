package provider

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tripline/internal/cache"
	"github.com/alexanderramin/tripline/internal/geo"
)

// Place is a route endpoint: a coordinate when known, otherwise a name
// for the provider to geocode.
type Place struct {
	Point *geo.LatLng
	Name  string
}

// Param renders the endpoint as a provider query value.
func (p Place) Param() string {
	if p.Point != nil {
		return p.Point.String()
	}
	return p.Name
}

// Empty reports whether the endpoint carries nothing usable.
func (p Place) Empty() bool {
	return p.Point == nil && p.Name == ""
}

func queryKey(kind string, from, to Place, at time.Time) string {
	stamp := ""
	if !at.IsZero() {
		stamp = at.Truncate(time.Minute).Format(time.RFC3339)
	}
	if from.Point != nil && to.Point != nil {
		return cache.RouteKey(kind, from.Point.Lat, from.Point.Lng, to.Point.Lat, to.Point.Lng, stamp)
	}
	return fmt.Sprintf("%s|%s->%s|%s", kind, from.Param(), to.Param(), stamp)
}

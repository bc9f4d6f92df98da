package planner

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/geo"
	"github.com/alexanderramin/tripline/internal/provider"
)

// ErrUnresolvableEndpoint indicates that no item on one side of the
// insertion point has coordinates or a place name.
var ErrUnresolvableEndpoint = errors.New("unresolvable route endpoint")

// CountryResolver maps a coordinate to an ISO country code, "" when
// unknown.
type CountryResolver interface {
	CountryOf(p geo.LatLng) string
}

// Endpoint is one side of a requested leg.
type Endpoint struct {
	Index   int
	Item    *domain.Item
	Point   *geo.LatLng
	Name    string
	Country string
}

// Place converts the endpoint into a provider query place.
func (e Endpoint) Place() provider.Place {
	return provider.Place{Point: e.Point, Name: e.Name}
}

// Label is the display name of the endpoint.
func (e Endpoint) Label() string {
	if e.Name != "" {
		return e.Name
	}
	if e.Point != nil {
		return e.Point.String()
	}
	return ""
}

// ResolveEndpoints walks outward from insertionIndex to the closest place
// on each side that has coordinates or a name. The origin is searched
// before the insertion point, the destination at or after it.
func ResolveEndpoints(day *domain.Day, insertionIndex int, countries CountryResolver) (Endpoint, Endpoint, error) {
	from, ok := resolveSide(day.Timeline, insertionIndex-1, -1, countries)
	if !ok {
		return Endpoint{}, Endpoint{}, fmt.Errorf("origin before position %d: %w", insertionIndex, ErrUnresolvableEndpoint)
	}
	to, ok := resolveSide(day.Timeline, insertionIndex, 1, countries)
	if !ok {
		return Endpoint{}, Endpoint{}, fmt.Errorf("destination after position %d: %w", insertionIndex, ErrUnresolvableEndpoint)
	}
	return from, to, nil
}

func resolveSide(items []*domain.Item, start, step int, countries CountryResolver) (Endpoint, bool) {
	for i := start; i >= 0 && i < len(items); i += step {
		it := items[i]
		if !it.IsAnchor() {
			continue
		}
		point, hasPoint := it.Coordinates()
		if hasPoint && !point.Valid() {
			point, hasPoint = nil, false
		}
		name := it.PlaceName()
		if !hasPoint && name == "" {
			continue
		}

		e := Endpoint{Index: i, Item: it, Point: point, Name: name}
		if hasPoint && countries != nil {
			e.Country = countries.CountryOf(*point)
		}
		return e, true
	}
	return Endpoint{}, false
}

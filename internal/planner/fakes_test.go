package planner

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/provider"
	"github.com/alexanderramin/tripline/internal/route"
)

type fakeDirections struct {
	mu      sync.Mutex
	queries []provider.DirectionsQuery
	answer  func(ctx context.Context, q provider.DirectionsQuery) ([]route.DirectionsRoute, error)
}

func (f *fakeDirections) Directions(ctx context.Context, q provider.DirectionsQuery) ([]route.DirectionsRoute, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.answer == nil {
		return nil, provider.ErrNoRoute
	}
	return f.answer(ctx, q)
}

func (f *fakeDirections) calls() []provider.DirectionsQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]provider.DirectionsQuery(nil), f.queries...)
}

type fakeRail struct {
	calls  int
	answer func(ctx context.Context, q provider.RailQuery) ([]route.RailCourse, error)
}

func (f *fakeRail) Courses(ctx context.Context, q provider.RailQuery) ([]route.RailCourse, error) {
	f.calls++
	if f.answer == nil {
		return nil, provider.ErrNoRoute
	}
	return f.answer(ctx, q)
}

// busRoute is a one-ride directions route of the given minutes.
func busRoute(line string, minutes int) route.DirectionsRoute {
	return route.DirectionsRoute{Legs: []route.DirectionsLeg{{
		Duration: route.TextValue{Value: minutes * 60},
		Steps: []route.DirectionsStep{{
			TravelMode: route.TravelTransit,
			Duration:   route.TextValue{Value: minutes * 60},
			TransitDetails: &route.TransitDetails{
				DepartureStop: route.TransitStop{Name: "A stop"},
				ArrivalStop:   route.TransitStop{Name: "B stop"},
				Line:          route.TransitLine{ShortName: line, Vehicle: route.Vehicle{Type: "BUS"}},
			},
		}},
	}}}
}

func walkRoute(minutes int) route.DirectionsRoute {
	return route.DirectionsRoute{Legs: []route.DirectionsLeg{{
		Duration: route.TextValue{Value: minutes * 60},
		Steps:    []route.DirectionsStep{{TravelMode: route.TravelWalking, Duration: route.TextValue{Value: minutes * 60}}},
	}}}
}

func anchor(id, at string, lat, lng float64, dwell ...int) *domain.Item {
	p := domain.NewPlace(id, at, "place "+id, "")
	p.SetCoordinates(lat, lng)
	if len(dwell) > 0 {
		p.Duration = domain.IntPtr(dwell[0])
	}
	return p
}

func testDay(items ...*domain.Item) *domain.Day {
	d := domain.NewDay("day-1", "trip-1", "2026-05-01", 0)
	d.Timeline = items
	return d
}

var (
	fixedNow = time.Date(2026, 4, 20, 8, 0, 0, 0, time.UTC)
	idSeq    int
)

func newTestPlanner(t *testing.T, dir *fakeDirections, rail *fakeRail, mutate ...func(*Options)) *Planner {
	t.Helper()
	opts := Options{
		HeuristicCountries: []string{"JP"},
		MaxDaysAhead:       60,
		SearchTimeout:      time.Second,
		Location:           time.UTC,
		Now:                func() time.Time { return fixedNow },
		NewID: func() string {
			idSeq++
			return fmt.Sprintf("leg-%d", idSeq)
		},
	}
	for _, m := range mutate {
		m(&opts)
	}
	return New(dir, rail, opts)
}

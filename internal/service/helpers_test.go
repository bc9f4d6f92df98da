package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/tripline/internal/db"
	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/planner"
	"github.com/alexanderramin/tripline/internal/provider"
	"github.com/alexanderramin/tripline/internal/repository"
	"github.com/alexanderramin/tripline/internal/route"
	"github.com/alexanderramin/tripline/internal/testutil"
	"github.com/stretchr/testify/require"
)

const (
	tokyoLat, tokyoLng = 35.6812, 139.7671
	nearbyLat          = 35.70809
)

type noDirections struct{}

func (noDirections) Directions(context.Context, provider.DirectionsQuery) ([]route.DirectionsRoute, error) {
	return nil, provider.ErrNoRoute
}

type noRail struct{}

func (noRail) Courses(context.Context, provider.RailQuery) ([]route.RailCourse, error) {
	return nil, provider.ErrNoRoute
}

type services struct {
	db       *sql.DB
	uow      db.UnitOfWork
	trips    TripService
	timeline TimelineService
	routes   RouteService
	imports  ImportService
}

func newServices(t *testing.T) *services {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	days := repository.NewSQLiteDayRepo(database)

	p := planner.New(noDirections{}, noRail{}, planner.Options{
		HeuristicCountries: []string{"JP"},
		Location:           time.UTC,
		SearchTimeout:      time.Second,
	})
	return &services{
		db:       database,
		uow:      uow,
		trips:    NewTripService(repository.NewSQLiteTripRepo(database), uow),
		timeline: NewTimelineService(days, uow),
		routes:   NewRouteService(days, uow, p),
		imports:  NewImportService(uow),
	}
}

func (s *services) createTrip(t *testing.T, title string) *domain.Trip {
	t.Helper()
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	trip, err := s.trips.Create(context.Background(), CreateTripRequest{
		Title: title, Start: start, End: start.AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	return trip
}

// tokyoMorning fills day one with two anchors about 3 km apart.
func (s *services) tokyoMorning(t *testing.T) (DayRef, *domain.Day) {
	t.Helper()
	trip := s.createTrip(t, "Tokyo")
	ref := DayRef{TripID: trip.ID}
	ctx := context.Background()

	a := testutil.Place("Tokyo Station", "09:00", tokyoLat, tokyoLng)
	a.Duration = domain.IntPtr(30)
	_, err := s.timeline.Add(ctx, ref, -1, a)
	require.NoError(t, err)
	day, err := s.timeline.Add(ctx, ref, -1, testutil.Place("Ueno Park", "11:00", nearbyLat, tokyoLng))
	require.NoError(t, err)
	return ref, day
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tripline/internal/clock"
	"github.com/alexanderramin/tripline/internal/db"
	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/repository"
	"github.com/google/uuid"
)

// DefaultDepartTime is used for the home anchor when none is given.
const DefaultDepartTime = "09:00"

type tripService struct {
	trips    repository.TripRepo
	uow      db.UnitOfWork
	newID    domain.IDGenerator
	observer UseCaseObserver
}

func NewTripService(trips repository.TripRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TripService {
	return &tripService{
		trips:    trips,
		uow:      uow,
		newID:    uuid.NewString,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *tripService) Create(ctx context.Context, req CreateTripRequest) (trip *domain.Trip, err error) {
	sp := startSpan(s.observer, "create-trip", "", 0)
	defer func() { sp.end(ctx, err) }()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("trip title is required")
	}
	depart := req.DepartTime
	if depart == "" {
		depart = DefaultDepartTime
	}
	if m, ok := clock.ParseClock(depart); ok {
		depart = clock.FormatClock(m)
	} else {
		return nil, fmt.Errorf("depart time %q: invalid clock", req.DepartTime)
	}

	trip, err = domain.NewTrip(s.newID(), title, req.Start, req.End, strings.TrimSpace(req.Home), depart, s.newID)
	if err != nil {
		return nil, err
	}
	sp.event.TripID = trip.ID
	sp.set("days", len(trip.Days))

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTripRepo(tx).Create(ctx, trip)
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) Get(ctx context.Context, id string) (*domain.Trip, error) {
	return s.trips.GetByID(ctx, id)
}

func (s *tripService) List(ctx context.Context) ([]*domain.Trip, error) {
	return s.trips.List(ctx)
}

func (s *tripService) Rename(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("trip title is required")
	}
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return err
	}
	trip.Title = title
	trip.UpdatedAt = time.Now().UTC()
	return s.trips.Update(ctx, trip)
}

func (s *tripService) Resize(ctx context.Context, id string, start, end time.Time) (trip *domain.Trip, err error) {
	sp := startSpan(s.observer, "resize-trip", id, 0)
	defer func() { sp.end(ctx, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		trips := repository.NewSQLiteTripRepo(tx)
		days := repository.NewSQLiteDayRepo(tx)

		t, err := trips.GetByID(ctx, id)
		if err != nil {
			return err
		}
		before := make(map[string]*domain.Day, len(t.Days))
		for _, d := range t.Days {
			before[d.ID] = d
		}
		if err := t.SetDateRange(start, end, s.newID); err != nil {
			return err
		}

		for _, d := range t.Days {
			if _, kept := before[d.ID]; kept {
				delete(before, d.ID)
				if err := days.Update(ctx, d, d.Revision); err != nil {
					return err
				}
				continue
			}
			if err := days.Create(ctx, d); err != nil {
				return err
			}
		}
		for _, gone := range before {
			if err := days.Delete(ctx, gone.ID); err != nil {
				return err
			}
		}
		sp.set("removed_days", len(before))

		trip = t
		return trips.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *tripService) Delete(ctx context.Context, id string) error {
	return s.trips.Delete(ctx, id)
}

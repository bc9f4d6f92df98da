package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tripline/internal/contract"
	"github.com/alexanderramin/tripline/internal/db"
	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/repository"
)

type routeService struct {
	days     repository.DayRepo
	uow      db.UnitOfWork
	planner  RoutePlanner
	observer UseCaseObserver
}

func NewRouteService(days repository.DayRepo, uow db.UnitOfWork, planner RoutePlanner, observers ...UseCaseObserver) RouteService {
	return &routeService{
		days:     days,
		uow:      uow,
		planner:  planner,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Search runs outside any transaction: provider calls can take seconds
// and the result is only applied later, guarded by the day revision.
func (s *routeService) Search(ctx context.Context, req contract.RouteSearchRequest) (res *contract.RouteSearchResult, err error) {
	sp := startSpan(s.observer, "search-route", req.TripID, req.DayIndex)
	defer func() { sp.end(ctx, err) }()

	day, err := s.days.GetByIndex(ctx, req.TripID, req.DayIndex)
	if err != nil {
		return nil, err
	}

	res, err = s.planner.SearchRoute(ctx, day, req.InsertionIndex, req.TimeHint)
	if err != nil {
		return nil, err
	}
	sp.set("status", string(res.Status))
	sp.set("candidates", len(res.Candidates))
	if len(res.Causes) > 0 {
		sp.set("causes", res.Causes)
	}
	return res, nil
}

func (s *routeService) Insert(ctx context.Context, req contract.RouteInsertRequest) (resp *contract.RouteInsertResponse, err error) {
	sp := startSpan(s.observer, "insert-route", req.TripID, req.DayIndex)
	defer func() { sp.end(ctx, err) }()
	sp.set("source", string(req.Candidate.Source))

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		days := repository.NewSQLiteDayRepo(tx)
		day, err := days.GetByIndex(ctx, req.TripID, req.DayIndex)
		if err != nil {
			return err
		}
		var item *domain.Item
		item, err = s.planner.InsertRoute(day, req.InsertionIndex, req.Candidate, req.Revision)
		if err != nil {
			return err
		}
		if err := days.Update(ctx, day, req.Revision); err != nil {
			return fmt.Errorf("saving day: %w", err)
		}
		resp = &contract.RouteInsertResponse{Item: item, Day: day}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

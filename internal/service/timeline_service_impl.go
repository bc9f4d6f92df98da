package service

import (
	"context"

	"github.com/alexanderramin/tripline/internal/db"
	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/repository"
	"github.com/alexanderramin/tripline/internal/timeline"
	"github.com/google/uuid"
)

type timelineService struct {
	days     repository.DayRepo
	uow      db.UnitOfWork
	newID    domain.IDGenerator
	observer UseCaseObserver
}

func NewTimelineService(days repository.DayRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TimelineService {
	return &timelineService{
		days:     days,
		uow:      uow,
		newID:    uuid.NewString,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *timelineService) Day(ctx context.Context, ref DayRef) (*domain.Day, error) {
	return s.days.GetByIndex(ctx, ref.TripID, ref.DayIndex)
}

// mutate loads the day inside a transaction, applies fn and saves the day
// only if nobody else wrote it in between.
func (s *timelineService) mutate(ctx context.Context, name string, ref DayRef, fn func(*domain.Day) error) (day *domain.Day, err error) {
	sp := startSpan(s.observer, name, ref.TripID, ref.DayIndex)
	defer func() { sp.end(ctx, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		days := repository.NewSQLiteDayRepo(tx)
		d, err := days.GetByIndex(ctx, ref.TripID, ref.DayIndex)
		if err != nil {
			return err
		}
		revision := d.Revision
		if err := fn(d); err != nil {
			return err
		}
		sp.set("revision", d.Revision)
		day = d
		return days.Update(ctx, d, revision)
	})
	if err != nil {
		return nil, err
	}
	return day, nil
}

func (s *timelineService) Add(ctx context.Context, ref DayRef, position int, item *domain.Item) (*domain.Day, error) {
	if item.ID == "" {
		item.ID = s.newID()
	}
	return s.mutate(ctx, "add-item", ref, func(d *domain.Day) error {
		if position < 0 {
			return timeline.Append(d, item)
		}
		return timeline.Insert(d, position, item)
	})
}

func (s *timelineService) Remove(ctx context.Context, ref DayRef, itemID string) (*domain.Day, error) {
	return s.mutate(ctx, "remove-item", ref, func(d *domain.Day) error {
		_, err := timeline.Remove(d, itemID)
		return err
	})
}

func (s *timelineService) Move(ctx context.Context, ref DayRef, itemID string, position int) (*domain.Day, error) {
	return s.mutate(ctx, "move-item", ref, func(d *domain.Day) error {
		return timeline.Move(d, itemID, position)
	})
}

func (s *timelineService) Copy(ctx context.Context, ref DayRef, itemID string) (*domain.Item, error) {
	var copied *domain.Item
	_, err := s.mutate(ctx, "copy-item", ref, func(d *domain.Day) error {
		var err error
		copied, err = timeline.Copy(d, itemID, s.newID())
		return err
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

func (s *timelineService) Update(ctx context.Context, ref DayRef, itemID string, edit func(*domain.Item)) (*domain.Day, error) {
	return s.mutate(ctx, "update-item", ref, func(d *domain.Day) error {
		return timeline.Update(d, itemID, edit)
	})
}

func (s *timelineService) CheckTransit(ctx context.Context, ref DayRef, position int, start, end string) (timeline.TransitCheck, error) {
	day, err := s.Day(ctx, ref)
	if err != nil {
		return timeline.TransitCheck{}, err
	}
	return timeline.CheckTransitEntry(day, position, start, end)
}

func (s *timelineService) AddTransit(ctx context.Context, req AddTransitRequest) (*domain.Item, timeline.TransitCheck, error) {
	var item *domain.Item
	var check timeline.TransitCheck
	_, err := s.mutate(ctx, "add-transit", req.Day, func(d *domain.Day) error {
		position := req.Position
		if position < 0 {
			position = len(d.Timeline)
		}
		entry := timeline.NewTransitEntry(d, position)
		entry.Start, entry.End = req.Start, req.End

		var err error
		item, check, err = entry.Build(s.newID(), req.Type, req.Title)
		if err != nil {
			return err
		}
		return timeline.Insert(d, position, item)
	})
	if err != nil {
		return nil, check, err
	}
	return item, check, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tripline/internal/db"
	"github.com/alexanderramin/tripline/internal/importer"
	"github.com/alexanderramin/tripline/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportTrip(ctx context.Context, filePath string) (*ImportResult, error) {
	doc, err := importer.LoadDocument(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportDocument(ctx, doc)
}

func (s *importService) ImportDocument(ctx context.Context, doc *importer.TripDocument) (res *ImportResult, err error) {
	sp := startSpan(s.observer, "import-trip", "", 0)
	defer func() { sp.end(ctx, err) }()

	if errs := importer.ValidateDocument(doc); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	converted, err := importer.Convert(doc, uuid.NewString)
	if err != nil {
		return nil, fmt.Errorf("converting itinerary: %w", err)
	}
	trip := converted.Trip
	sp.event.TripID = trip.ID
	sp.set("items", converted.ItemCount)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTripRepo(tx).Create(ctx, trip)
	})
	if err != nil {
		return nil, fmt.Errorf("saving trip: %w", err)
	}
	return &ImportResult{Trip: trip, DayCount: len(trip.Days), ItemCount: converted.ItemCount}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

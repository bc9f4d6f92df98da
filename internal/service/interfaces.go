package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tripline/internal/contract"
	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/importer"
	"github.com/alexanderramin/tripline/internal/route"
	"github.com/alexanderramin/tripline/internal/timeline"
)

// CreateTripRequest describes a new trip. Home, when set, seeds day one
// with a departure anchor at DepartTime.
type CreateTripRequest struct {
	Title      string
	Start      time.Time
	End        time.Time
	Home       string
	DepartTime string
}

type TripService interface {
	Create(ctx context.Context, req CreateTripRequest) (*domain.Trip, error)
	Get(ctx context.Context, id string) (*domain.Trip, error)
	List(ctx context.Context) ([]*domain.Trip, error)
	Rename(ctx context.Context, id, title string) error
	// Resize changes the date range. Days outside the new range are
	// deleted together with their timelines.
	Resize(ctx context.Context, id string, start, end time.Time) (*domain.Trip, error)
	Delete(ctx context.Context, id string) error
}

// DayRef addresses one day of a trip by zero-based index.
type DayRef struct {
	TripID   string
	DayIndex int
}

// AddTransitRequest is a hand-typed transit leg.
type AddTransitRequest struct {
	Day      DayRef
	Position int
	Type     domain.TransitType
	Title    string
	Start    string
	End      string
}

type TimelineService interface {
	Day(ctx context.Context, ref DayRef) (*domain.Day, error)
	// Add inserts item at position, or appends when position is negative.
	Add(ctx context.Context, ref DayRef, position int, item *domain.Item) (*domain.Day, error)
	Remove(ctx context.Context, ref DayRef, itemID string) (*domain.Day, error)
	Move(ctx context.Context, ref DayRef, itemID string, position int) (*domain.Day, error)
	Copy(ctx context.Context, ref DayRef, itemID string) (*domain.Item, error)
	Update(ctx context.Context, ref DayRef, itemID string, edit func(*domain.Item)) (*domain.Day, error)
	// CheckTransit evaluates a hand-typed leg without saving it.
	CheckTransit(ctx context.Context, ref DayRef, position int, start, end string) (timeline.TransitCheck, error)
	AddTransit(ctx context.Context, req AddTransitRequest) (*domain.Item, timeline.TransitCheck, error)
}

// RoutePlanner searches and inserts routes on a loaded day.
type RoutePlanner interface {
	SearchRoute(ctx context.Context, day *domain.Day, insertionIndex int, timeHint string) (*contract.RouteSearchResult, error)
	InsertRoute(day *domain.Day, insertionIndex int, chosen route.NormalizedRoute, revision int64) (*domain.Item, error)
}

type RouteService interface {
	Search(ctx context.Context, req contract.RouteSearchRequest) (*contract.RouteSearchResult, error)
	Insert(ctx context.Context, req contract.RouteInsertRequest) (*contract.RouteInsertResponse, error)
}

// ImportResult holds the outcome of an itinerary import.
type ImportResult struct {
	Trip      *domain.Trip
	DayCount  int
	ItemCount int
}

type ImportService interface {
	ImportTrip(ctx context.Context, filePath string) (*ImportResult, error)
	ImportDocument(ctx context.Context, doc *importer.TripDocument) (*ImportResult, error)
}

package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/google/uuid"
)

var testIDCounter atomic.Int64

// SeqID returns short readable ids ("item-1", "item-2", ...) for fixtures
// whose ids show up in assertions.
func SeqID(prefix string) domain.IDGenerator {
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, testIDCounter.Add(1))
	}
}

// Trip options
type TripOption func(*tripOpts)

type tripOpts struct {
	start, end  time.Time
	home, clock string
}

// WithDates sets the inclusive date range; the default is three days
// starting 2026-05-01.
func WithDates(start, end time.Time) TripOption {
	return func(s *tripOpts) {
		s.start, s.end = start, end
	}
}

// WithHome seeds day one with a departure anchor.
func WithHome(home, clock string) TripOption {
	return func(s *tripOpts) {
		s.home, s.clock = home, clock
	}
}

// NewTestTrip builds an unsaved trip.
func NewTestTrip(title string, opts ...TripOption) *domain.Trip {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	cfg := tripOpts{start: start, end: start.AddDate(0, 0, 2)}
	for _, o := range opts {
		o(&cfg)
	}
	t, err := domain.NewTrip(uuid.New().String(), title, cfg.start, cfg.end, cfg.home, cfg.clock, SeqID("day"))
	if err != nil {
		panic(err)
	}
	return t
}

// Place builds a place anchor with coordinates.
func Place(title, clock string, lat, lng float64) *domain.Item {
	p := domain.NewPlace(uuid.New().String(), clock, title, "")
	p.SetCoordinates(lat, lng)
	return p
}

// Memo builds a memo item.
func Memo(text string) *domain.Item {
	return domain.NewMemo(uuid.New().String(), text)
}

// Bus builds a flexible bus leg.
func Bus(title, duration string) *domain.Item {
	return domain.NewTransit(uuid.New().String(), domain.TransitBus, title, duration)
}

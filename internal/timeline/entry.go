package timeline

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tripline/internal/clock"
	"github.com/alexanderramin/tripline/internal/domain"
)

// ErrInvalidClock indicates a manually entered time that cannot be parsed.
var ErrInvalidClock = errors.New("invalid clock time")

// Warning is an advisory chronology problem. Warnings never block saving.
type Warning string

const (
	WarningNextDay               Warning = "next_day_arrival"
	WarningDepartsBeforePrevious Warning = "departs_before_previous_end"
)

// Message returns the user-facing text for w.
func (w Warning) Message() string {
	switch w {
	case WarningNextDay:
		return "arrival is earlier than departure; treating it as next-day arrival"
	case WarningDepartsBeforePrevious:
		return "departs before the previous item ends"
	default:
		return string(w)
	}
}

// TransitCheck is the evaluation of a manually typed transit leg.
type TransitCheck struct {
	DurationMinutes int
	DurationText    string
	PreviousEnd     string
	Warnings        []Warning
}

// Has reports whether w was raised.
func (c TransitCheck) Has(w Warning) bool {
	for _, got := range c.Warnings {
		if got == w {
			return true
		}
	}
	return false
}

// TransitEntry tracks a transit leg being typed by hand at a position of
// a day. Start and End are updated as the user edits them; Check is
// re-evaluated on every change.
type TransitEntry struct {
	day   *domain.Day
	index int

	Start string
	End   string
}

// NewTransitEntry prepares an entry that will be inserted at index.
func NewTransitEntry(day *domain.Day, index int) *TransitEntry {
	return &TransitEntry{day: day, index: index}
}

// Check computes the duration and warnings for the current Start/End.
func (e *TransitEntry) Check() (TransitCheck, error) {
	return CheckTransitEntry(e.day, e.index, e.Start, e.End)
}

// Build returns a non-fixed transit item for the entry.
func (e *TransitEntry) Build(id string, t domain.TransitType, title string) (*domain.Item, TransitCheck, error) {
	check, err := e.Check()
	if err != nil {
		return nil, check, err
	}
	item := domain.NewTransit(id, t, title, check.DurationText)
	item.Transit.Info.Start = e.Start
	item.Transit.Info.End = e.End
	return item, check, nil
}

// CheckTransitEntry evaluates a leg from start to end that would sit at
// index. The end wraps to the next day when earlier than the start, and
// the start is compared with the effective end of the closest preceding
// non-memo item.
func CheckTransitEntry(day *domain.Day, index int, start, end string) (TransitCheck, error) {
	s, ok := clock.ParseClock(start)
	if !ok {
		return TransitCheck{}, fmt.Errorf("start %q: %w", start, ErrInvalidClock)
	}
	e, ok := clock.ParseClock(end)
	if !ok {
		return TransitCheck{}, fmt.Errorf("end %q: %w", end, ErrInvalidClock)
	}

	var check TransitCheck
	diff := e - s
	if diff < 0 {
		diff += clock.MinutesPerDay
		check.Warnings = append(check.Warnings, WarningNextDay)
	}
	check.DurationMinutes = diff
	check.DurationText = clock.FormatDuration(diff)

	if day != nil {
		if prevEnd, ok := previousEnd(day.Timeline, index); ok {
			check.PreviousEnd = clock.FormatClock(prevEnd)
			if s < prevEnd {
				check.Warnings = append(check.Warnings, WarningDepartsBeforePrevious)
			}
		}
	}
	return check, nil
}

// previousEnd returns the clock at which the item before index finishes.
func previousEnd(items []*domain.Item, index int) (int, bool) {
	if index > len(items) {
		index = len(items)
	}
	for i := index - 1; i >= 0; i-- {
		it := items[i]
		switch it.Kind {
		case domain.KindMemo:
			continue
		case domain.KindPlace:
			c, ok := clock.ParseClock(it.Time)
			if !ok {
				return 0, false
			}
			return c + it.Dwell(), true
		case domain.KindTransit:
			if it.Transit == nil {
				return 0, false
			}
			if c, ok := clock.ParseClock(it.Transit.Info.End); ok {
				return c, true
			}
			if c, ok := clock.ParseClock(it.Transit.Info.Start); ok {
				return c + clock.ParseDuration(it.Time), true
			}
			return 0, false
		}
	}
	return 0, false
}

// EndBefore returns the clock at which the closest non-memo item before
// index finishes, as used to infer when a new leg at index departs.
func EndBefore(day *domain.Day, index int) (int, bool) {
	if day == nil {
		return 0, false
	}
	return previousEnd(day.Timeline, index)
}

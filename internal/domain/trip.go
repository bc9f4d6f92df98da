package domain

import (
	"fmt"
	"time"
)

// HomeAnchorTitle is the title of the synthetic first-day anchor.
const HomeAnchorTitle = "집에서 출발"

type Trip struct {
	ID        string
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Days      []*Day
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IDGenerator produces identifiers for days and items.
type IDGenerator func() string

// NewTrip creates a trip with one empty day per date in [start, end]. A
// non-empty home seeds day 1 with a "depart from home" anchor at
// departClock.
func NewTrip(id, title string, start, end time.Time, home, departClock string, newID IDGenerator) (*Trip, error) {
	now := time.Now().UTC()
	t := &Trip{ID: id, Title: title, CreatedAt: now, UpdatedAt: now}
	if err := t.SetDateRange(start, end, newID); err != nil {
		return nil, err
	}
	if home != "" {
		anchor := NewPlace(newID(), departClock, HomeAnchorTitle, home)
		anchor.Icon = "🏠"
		zero := 0
		anchor.Duration = &zero
		first := t.Days[0]
		first.Timeline = append([]*Item{anchor}, first.Timeline...)
		first.Touch()
	}
	return t, nil
}

// DayCount returns the inclusive number of dates in the trip.
func (t *Trip) DayCount() int {
	return int(t.EndDate.Sub(t.StartDate).Hours()/24) + 1
}

// SetDateRange resizes the trip. Days whose date stays inside the range
// keep their timeline; dates that fall outside are removed and new dates
// get empty days.
func (t *Trip) SetDateRange(start, end time.Time, newID IDGenerator) error {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return fmt.Errorf("trip end %s is before start %s", end.Format(DateLayout), start.Format(DateLayout))
	}

	existing := make(map[string]*Day, len(t.Days))
	for _, d := range t.Days {
		existing[d.Date] = d
	}

	var days []*Day
	for cur, i := start, 0; !cur.After(end); cur, i = cur.AddDate(0, 0, 1), i+1 {
		date := cur.Format(DateLayout)
		d, ok := existing[date]
		if !ok {
			d = NewDay(newID(), t.ID, date, i)
		}
		d.Index = i
		days = append(days, d)
	}

	t.StartDate = start
	t.EndDate = end
	t.Days = days
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Day returns the day at zero-based index.
func (t *Trip) Day(index int) (*Day, error) {
	if index < 0 || index >= len(t.Days) {
		return nil, fmt.Errorf("day %d out of range (trip has %d days)", index+1, len(t.Days))
	}
	return t.Days[index], nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

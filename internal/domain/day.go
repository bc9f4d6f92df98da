package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for days and trips.
const DateLayout = "2006-01-02"

// Day is one calendar date of a trip. Timeline order is the display order
// and the single source of truth; nothing indexes it by time.
type Day struct {
	ID       string  `json:"id"`
	TripID   string  `json:"tripId"`
	Date     string  `json:"date"`
	Index    int     `json:"dayIndex"`
	Timeline []*Item `json:"timeline"`

	// Revision increases on every timeline mutation. Route searches
	// remember it so a result computed against an older timeline can be
	// recognized and discarded.
	Revision int64 `json:"revision"`

	UpdatedAt time.Time `json:"-"`
}

// NewDay returns an empty day.
func NewDay(id, tripID, date string, index int) *Day {
	return &Day{ID: id, TripID: tripID, Date: date, Index: index, Timeline: []*Item{}}
}

// Touch records a mutation.
func (d *Day) Touch() {
	d.Revision++
}

// IndexOf returns the timeline position of the item with id, or -1.
func (d *Day) IndexOf(id string) int {
	for i, it := range d.Timeline {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// DateValue parses Date.
func (d *Day) DateValue() (time.Time, error) {
	t, err := time.Parse(DateLayout, d.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day date %q: %w", d.Date, err)
	}
	return t, nil
}

// Anchors returns the place items in timeline order.
func (d *Day) Anchors() []*Item {
	var out []*Item
	for _, it := range d.Timeline {
		if it.IsAnchor() {
			out = append(out, it)
		}
	}
	return out
}

// Validate checks every item.
func (d *Day) Validate() error {
	if _, err := d.DateValue(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(d.Timeline))
	for _, it := range d.Timeline {
		if it == nil {
			return fmt.Errorf("day %s: nil timeline item", d.Date)
		}
		if seen[it.ID] {
			return fmt.Errorf("day %s: duplicate item id %s", d.Date, it.ID)
		}
		seen[it.ID] = true
		if err := it.Validate(); err != nil {
			return fmt.Errorf("day %s: %w", d.Date, err)
		}
	}
	return nil
}

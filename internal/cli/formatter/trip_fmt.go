package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tripline/internal/domain"
)

// FormatTripList renders trips as a table relative to now.
func FormatTripList(trips []*domain.Trip, now time.Time) string {
	if len(trips) == 0 {
		return Dim("No trips yet. Create one with: tripline trip add") + "\n"
	}

	headers := []string{"ID", "TITLE", "DATES", "DAYS", "WHEN"}
	rows := make([][]string, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, []string{
			Dim(ShortID(t.ID)),
			Bold(t.Title),
			DateRange(t.StartDate, t.EndDate),
			strconv.Itoa(t.DayCount()),
			CountdownStyled(t.StartDate, t.EndDate, now),
		})
	}
	return RenderTable(headers, rows)
}

// FormatTrip renders the trip header and a one-line summary per day.
func FormatTrip(t *domain.Trip) string {
	var b strings.Builder
	b.WriteString(Header(t.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n\n", DateRange(t.StartDate, t.EndDate), Dim("updated "+Updated(t.UpdatedAt)))

	headers := []string{"DAY", "DATE", "ITEMS", "FIRST", "LAST"}
	rows := make([][]string, 0, len(t.Days))
	for _, d := range t.Days {
		first, last := dayBounds(d)
		rows = append(rows, []string{
			strconv.Itoa(d.Index + 1),
			d.Date,
			strconv.Itoa(len(d.Timeline)),
			first,
			last,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// dayBounds returns the first and last anchor titles of a day.
func dayBounds(d *domain.Day) (string, string) {
	anchors := d.Anchors()
	if len(anchors) == 0 {
		return Dim("--"), Dim("--")
	}
	return anchors[0].Title, anchors[len(anchors)-1].Title
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tripline/internal/clock"
	"github.com/alexanderramin/tripline/internal/domain"
)

// FormatDay renders a day's timeline, one numbered row per item.
// Positions are zero-based so they can be passed back to item commands.
func FormatDay(d *domain.Day) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Day %d · %s", d.Index+1, d.Date)))
	b.WriteString("\n")

	if len(d.Timeline) == 0 {
		b.WriteString(Dim("Empty day. Add a place with: tripline item place") + "\n")
		return b.String()
	}
	for i, it := range d.Timeline {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%2d", i)), FormatItem(it))
	}
	b.WriteString(Dim(fmt.Sprintf("revision %d", d.Revision)) + "\n")
	return b.String()
}

// FormatItem renders one timeline row without its position.
func FormatItem(it *domain.Item) string {
	switch {
	case it.IsTransit():
		return formatTransit(it)
	case it.IsMemo():
		return "      " + Dim("📝 "+it.Title)
	default:
		return formatPlace(it)
	}
}

func formatPlace(it *domain.Item) string {
	at := it.Time
	if _, ok := clock.ParseClock(at); !ok {
		at = "--:--"
	}
	line := fmt.Sprintf("%s %s %s", StyleHeader.Render(at), it.Icon, Bold(it.Title))
	if it.Location != "" && it.Location != it.Title {
		line += " " + Dim(it.Location)
	}
	line += Dim(fmt.Sprintf(" · %s", clock.FormatDuration(it.Dwell())))
	if it.Place != nil && len(it.Place.Expenses) > 0 {
		line += " " + StyleYellow.Render(ExpenseTotal(it.Place.Expenses))
	}
	return line
}

func formatTransit(it *domain.Item) string {
	tr := it.Transit
	style := TransitStyle(tr.Type)

	line := "      " + it.Icon + " "
	if tr.Info.Start != "" || tr.Info.End != "" {
		line += Dim(orDash(tr.Info.Start)+"→"+orDash(tr.Info.End)) + " "
	}
	line += style.Render(it.Title) + " " + Dim(it.Time)
	if tr.FixedDuration {
		line += Dim(" (fixed)")
	}
	if tr.Flight != nil && tr.Flight.FlightNumber != "" {
		line += " " + StylePurple.Render(tr.Flight.FlightNumber)
		if tr.Flight.DepAirport != "" || tr.Flight.ArrAirport != "" {
			line += Dim(fmt.Sprintf(" %s→%s", orDash(tr.Flight.DepAirport), orDash(tr.Flight.ArrAirport)))
		}
	}
	if len(tr.Steps) > 1 {
		line += "\n        " + FormatSteps(tr.Steps)
	}
	return line
}

// FormatSteps renders the ride chips of a route, walks dimmed.
func FormatSteps(steps []domain.DetailedStep) string {
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		if s.Type == domain.StepWalk {
			parts = append(parts, Dim(fmt.Sprintf("🚶%d", s.Info.Duration)))
			continue
		}
		parts = append(parts, s.Icon+" "+LineChip(s))
	}
	return strings.Join(parts, Dim(" › "))
}

func orDash(s string) string {
	if s == "" {
		return "--"
	}
	return s
}

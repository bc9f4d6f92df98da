package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/alexanderramin/tripline/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Countdown describes how far a trip start is from now: "Today",
// "In 5d", "In 3w", or "Ongoing" and "Past" once it has begun.
func Countdown(start, end, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, start.Location())
	days := int(math.Round(start.Sub(today).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days > 1 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days >= 14 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days >= 60:
		return fmt.Sprintf("In %dmo", days/30)
	case !end.Before(today):
		return "Ongoing"
	default:
		return "Past"
	}
}

// CountdownStyled colors Countdown by urgency.
func CountdownStyled(start, end, now time.Time) string {
	text := Countdown(start, end, now)
	switch {
	case text == "Ongoing" || text == "Today":
		return StyleGreen.Render(text)
	case text == "Past":
		return StyleDim.Render(text)
	case text == "Tomorrow" || strings.HasSuffix(text, "d"):
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// DateRange renders "May 1 → May 3, 2026", collapsing single-day trips.
func DateRange(start, end time.Time) string {
	if start.Equal(end) {
		return start.Format("Jan 2, 2006")
	}
	if start.Year() != end.Year() {
		return start.Format("Jan 2, 2006") + " → " + end.Format("Jan 2, 2006")
	}
	return start.Format("Jan 2") + " → " + end.Format("Jan 2, 2006")
}

// Distance renders meters as "850 m" or "12.3 km".
func Distance(meters float64) string {
	if meters <= 0 {
		return ""
	}
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return humanize.FtoaWithDigits(meters/1000, 1) + " km"
}

// ExpenseTotal sums expenses per currency, e.g. "2,000 JPY · 15.5 EUR".
func ExpenseTotal(expenses []domain.Expense) string {
	var order []string
	totals := make(map[string]float64)
	for _, e := range expenses {
		if _, ok := totals[e.Currency]; !ok {
			order = append(order, e.Currency)
		}
		totals[e.Currency] += e.Amount
	}
	parts := make([]string, 0, len(order))
	for _, cur := range order {
		parts = append(parts, strings.TrimSpace(humanize.CommafWithDigits(totals[cur], 2)+" "+cur))
	}
	return strings.Join(parts, " · ")
}

// Updated renders a last-modified time relative to now.
func Updated(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return humanize.Time(t)
}

// ShortID returns the first eight characters of id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "--"
	}
	return id
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tripline/internal/contract"
	"github.com/alexanderramin/tripline/internal/route"
	"github.com/alexanderramin/tripline/internal/timeline"
)

// CandidateLabel is the one-line description of a route used in lists
// and pickers.
func CandidateLabel(r route.NormalizedRoute) string {
	parts := []string{r.Summary.Icon + " " + r.Summary.Title, r.DurationText()}
	if r.DepartureTime != "" && r.ArrivalTime != "" {
		parts = append(parts, r.DepartureTime+"→"+r.ArrivalTime)
	}
	if r.TransferCount > 0 {
		parts = append(parts, fmt.Sprintf("%d transfer(s)", r.TransferCount))
	}
	if d := Distance(r.DistanceMeters); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, " · ")
}

// FormatSearchResult renders either the candidate list or the failure
// causes of a route search.
func FormatSearchResult(res *contract.RouteSearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", Bold(orDash(res.Origin)), Dim("→"), Bold(orDash(res.Destination)))
	if !res.DepartAt.IsZero() {
		b.WriteString(Dim("departing "+res.DepartAt.Format("Jan 2 15:04")) + "\n")
	}
	b.WriteString("\n")

	if res.Status == contract.StatusFailed {
		b.WriteString(StyleRed.Render("No route found") + "\n")
		for _, c := range res.Causes {
			fmt.Fprintf(&b, "  • %s\n", c.Message())
		}
		if len(res.Attempts) > 0 {
			b.WriteString("\n" + Dim("tried:") + "\n")
			for _, a := range res.Attempts {
				b.WriteString(Dim("  "+a) + "\n")
			}
		}
		return b.String()
	}

	for i, r := range res.Candidates {
		marker := " "
		if r.Recommended {
			marker = StyleGreen.Render("★")
		}
		fmt.Fprintf(&b, "%s %s %s %s\n", marker, Dim(fmt.Sprintf("[%d]", i+1)), CandidateLabel(r), Dim(string(r.Source)))
		if len(r.Steps) > 1 {
			b.WriteString("      " + FormatSteps(r.Steps) + "\n")
		}
	}
	return b.String()
}

// FormatTransitCheck renders the computed duration and any warnings of
// a hand-typed leg.
func FormatTransitCheck(c timeline.TransitCheck) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("duration"), Bold(c.DurationText))
	if c.PreviousEnd != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("previous item ends"), c.PreviousEnd)
	}
	for _, w := range c.Warnings {
		b.WriteString(Warn(w.Message()) + "\n")
	}
	return b.String()
}

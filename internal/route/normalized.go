// Package route turns provider-specific routing payloads into one
// canonical route shape. Adapters never touch a timeline; the planner
// decides what to do with the routes they produce.
package route

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tripline/internal/clock"
	"github.com/alexanderramin/tripline/internal/domain"
)

// ErrEmptyRoute indicates a provider payload that holds no usable segment.
var ErrEmptyRoute = errors.New("route has no segments")

// Source names the adapter that produced a route.
type Source string

const (
	SourceDirections Source = "directions"
	SourceRail       Source = "rail"
	SourceHeuristic  Source = "heuristic"
)

// Mode is the coarse travel mode of a whole route.
type Mode string

const (
	ModeWalk             Mode = "walk"
	ModeTransit          Mode = "transit"
	ModeTransitLocal     Mode = "transit-local"
	ModeTransitIntercity Mode = "transit-intercity"
)

// Summary is the one-line label of a route: what the inserted transit
// item shows as its title, icon and tag.
type Summary struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Tag   string `json:"tag"`
}

// NormalizedRoute is the provider-independent result of every adapter.
type NormalizedRoute struct {
	TotalDurationMinutes int                   `json:"totalDurationMinutes"`
	Summary              Summary               `json:"summary"`
	Steps                []domain.DetailedStep `json:"detailedSteps"`

	Mode          Mode   `json:"mode"`
	Source        Source `json:"source"`
	FixedDuration bool   `json:"fixedDuration"`

	DepartureTime  string  `json:"departureTime,omitempty"`
	ArrivalTime    string  `json:"arrivalTime,omitempty"`
	DistanceMeters float64 `json:"distanceMeters,omitempty"`
	TransferCount  int     `json:"transferCount"`

	// Recommended marks the provider-preferred candidate of a search.
	Recommended bool `json:"recommended"`
}

// DurationText renders the total as timeline duration text.
func (r NormalizedRoute) DurationText() string {
	return clock.FormatDuration(r.TotalDurationMinutes)
}

// TransitType picks the item transit type from the dominant ride.
func (r NormalizedRoute) TransitType() domain.TransitType {
	kind := dominantStepType(r.Steps)
	if kind == "" {
		return domain.TransitWalk
	}
	return kind.TransitType()
}

// Rides returns the non-walking steps.
func (r NormalizedRoute) Rides() []domain.DetailedStep {
	var out []domain.DetailedStep
	for _, s := range r.Steps {
		if s.Type != domain.StepWalk {
			out = append(out, s)
		}
	}
	return out
}

// dominantStepType returns the ride type with the most steps. Ties go to
// the type seen first. Walks are ignored; "" means walk only.
func dominantStepType(steps []domain.DetailedStep) domain.StepType {
	counts := map[domain.StepType]int{}
	var order []domain.StepType
	for _, s := range steps {
		if s.Type == domain.StepWalk || s.Type == "" {
			continue
		}
		if counts[s.Type] == 0 {
			order = append(order, s.Type)
		}
		counts[s.Type]++
	}

	var best domain.StepType
	for _, t := range order {
		if counts[t] > counts[best] {
			best = t
		}
	}
	return best
}

// genericTitle is the summary title used when no line carries a short name.
func genericTitle(kind domain.StepType) string {
	switch kind {
	case domain.StepBus:
		return "버스로 이동"
	case domain.StepSubway:
		return "전철로 이동"
	case domain.StepTrain:
		return "기차로 이동"
	case domain.StepShip:
		return "배로 이동"
	case domain.StepAirplane:
		return "비행기로 이동"
	default:
		return "도보로 이동"
	}
}

// summarize joins line labels with "→", falling back to a generic title
// keyed by the dominant ride type.
func summarize(labels []string, steps []domain.DetailedStep) Summary {
	kind := dominantStepType(steps)
	title := strings.Join(labels, "→")
	if title == "" {
		title = genericTitle(kind)
	}
	if kind == "" {
		kind = domain.StepWalk
	}
	return Summary{Title: title, Icon: kind.Icon(), Tag: kind.TransitType().Label()}
}

const (
	textBlack = "#000000"
	textWhite = "#FFFFFF"
)

// TextColorFor returns the label text color readable on an (r, g, b)
// background: black when the perceived brightness exceeds 128, white
// otherwise.
func TextColorFor(r, g, b int) string {
	brightness := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if brightness > 128 {
		return textBlack
	}
	return textWhite
}

// TextColorForHex is TextColorFor on a "#RRGGBB" or "RRGGBB" string.
func TextColorForHex(hex string) (string, bool) {
	r, g, b, ok := ParseHexColor(hex)
	if !ok {
		return "", false
	}
	return TextColorFor(r, g, b), true
}

// ParseHexColor splits a six-digit hex color into its components.
func ParseHexColor(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// HexColor formats components as "#RRGGBB".
func HexColor(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// ceilMinutes converts seconds to whole minutes, rounding up.
func ceilMinutes(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return (seconds + 59) / 60
}

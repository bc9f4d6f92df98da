package route

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/alexanderramin/tripline/internal/clock"
	"github.com/alexanderramin/tripline/internal/domain"
)

// DirectionsResponse is the envelope of a turn-by-turn directions call.
type DirectionsResponse struct {
	Status       string            `json:"status"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Routes       []DirectionsRoute `json:"routes"`
}

// DirectionsRoute is one alternative returned by the directions provider.
// Only the first leg is read; waypoints are never requested.
type DirectionsRoute struct {
	Summary string          `json:"summary"`
	Legs    []DirectionsLeg `json:"legs"`
}

type DirectionsLeg struct {
	StartAddress  string           `json:"start_address"`
	EndAddress    string           `json:"end_address"`
	Distance      TextValue        `json:"distance"`
	Duration      TextValue        `json:"duration"`
	DepartureTime *TimeValue       `json:"departure_time,omitempty"`
	ArrivalTime   *TimeValue       `json:"arrival_time,omitempty"`
	Steps         []DirectionsStep `json:"steps"`
}

// TextValue pairs a display string with its raw value (seconds or meters).
type TextValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// TimeValue is a provider timestamp: Value is Unix seconds in TimeZone.
type TimeValue struct {
	Text     string `json:"text"`
	TimeZone string `json:"time_zone"`
	Value    int64  `json:"value"`
}

// Clock renders the timestamp as "HH:MM" in its own time zone, falling
// back to parsing the display text.
func (t *TimeValue) Clock() string {
	if t == nil {
		return ""
	}
	if t.Value > 0 {
		loc := time.UTC
		if t.TimeZone != "" {
			if l, err := time.LoadLocation(t.TimeZone); err == nil {
				loc = l
			}
		}
		return clock.Of(time.Unix(t.Value, 0).In(loc))
	}
	if m, ok := clock.ParseClock(t.Text); ok {
		return clock.FormatClock(m)
	}
	return ""
}

const (
	TravelWalking = "WALKING"
	TravelTransit = "TRANSIT"
)

type DirectionsStep struct {
	TravelMode       string          `json:"travel_mode"`
	HTMLInstructions string          `json:"html_instructions"`
	Distance         TextValue       `json:"distance"`
	Duration         TextValue       `json:"duration"`
	TransitDetails   *TransitDetails `json:"transit_details,omitempty"`
}

type TransitDetails struct {
	DepartureStop TransitStop `json:"departure_stop"`
	ArrivalStop   TransitStop `json:"arrival_stop"`
	DepartureTime *TimeValue  `json:"departure_time,omitempty"`
	ArrivalTime   *TimeValue  `json:"arrival_time,omitempty"`
	Headsign      string      `json:"headsign"`
	NumStops      int         `json:"num_stops"`
	Line          TransitLine `json:"line"`
}

type TransitStop struct {
	Name string `json:"name"`
}

type TransitLine struct {
	Name      string  `json:"name"`
	ShortName string  `json:"short_name"`
	Color     string  `json:"color"`
	TextColor string  `json:"text_color"`
	Vehicle   Vehicle `json:"vehicle"`
}

type Vehicle struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// unnamedLine labels a transit step whose line has no name at all.
const unnamedLine = "대중교통"

// vehicleCategories maps provider vehicle types onto step types.
var vehicleCategories = map[string]domain.StepType{
	"SUBWAY":              domain.StepSubway,
	"METRO_RAIL":          domain.StepSubway,
	"MONORAIL":            domain.StepSubway,
	"TRAM":                domain.StepSubway,
	"RAIL":                domain.StepTrain,
	"HEAVY_RAIL":          domain.StepTrain,
	"COMMUTER_TRAIN":      domain.StepTrain,
	"HIGH_SPEED_TRAIN":    domain.StepTrain,
	"LONG_DISTANCE_TRAIN": domain.StepTrain,
	"FUNICULAR":           domain.StepTrain,
	"BUS":                 domain.StepBus,
	"INTERCITY_BUS":       domain.StepBus,
	"TROLLEYBUS":          domain.StepBus,
	"SHARE_TAXI":          domain.StepBus,
	"FERRY":               domain.StepShip,
}

// VehicleStepType classifies a provider vehicle type. Unknown vehicles
// count as buses.
func VehicleStepType(vehicleType string) domain.StepType {
	if t, ok := vehicleCategories[strings.ToUpper(vehicleType)]; ok {
		return t
	}
	return domain.StepBus
}

// FromDirections normalizes the first leg of a directions route.
func FromDirections(r DirectionsRoute) (NormalizedRoute, error) {
	if len(r.Legs) == 0 {
		return NormalizedRoute{}, fmt.Errorf("directions route: %w", ErrEmptyRoute)
	}
	leg := r.Legs[0]

	var steps []domain.DetailedStep
	var labels []string
	rides := 0
	for _, s := range leg.Steps {
		switch {
		case s.TravelMode == TravelTransit && s.TransitDetails != nil:
			step, short := transitStep(s)
			steps = append(steps, step)
			if short != "" {
				labels = append(labels, short)
			}
			rides++
		case s.TravelMode == TravelWalking:
			steps = append(steps, walkStep(s))
		}
	}

	total := ceilMinutes(leg.Duration.Value)
	if total == 0 {
		total = domain.TotalStepMinutes(steps)
	}

	mode := ModeTransit
	if rides == 0 {
		mode = ModeWalk
		steps = []domain.DetailedStep{walkOnlyStep(leg, total)}
	}
	if len(steps) == 0 {
		return NormalizedRoute{}, fmt.Errorf("directions leg: %w", ErrEmptyRoute)
	}

	return NormalizedRoute{
		TotalDurationMinutes: total,
		Summary:              summarize(labels, steps),
		Steps:                steps,
		Mode:                 mode,
		Source:               SourceDirections,
		FixedDuration:        true,
		DepartureTime:        leg.DepartureTime.Clock(),
		ArrivalTime:          leg.ArrivalTime.Clock(),
		DistanceMeters:       float64(leg.Distance.Value),
		TransferCount:        max(rides-1, 0),
	}, nil
}

// transitStep converts a TRANSIT step and returns the line short name
// used for the route summary, empty when the line has none.
func transitStep(s DirectionsStep) (domain.DetailedStep, string) {
	td := s.TransitDetails
	kind := VehicleStepType(td.Line.Vehicle.Type)
	minutes := ceilMinutes(s.Duration.Value)

	label := td.Line.ShortName
	if label == "" {
		label = td.Line.Name
	}
	if label == "" {
		label = unnamedLine
	}

	step := domain.DetailedStep{
		Title: label,
		Time:  clock.FormatDuration(minutes),
		Icon:  kind.Icon(),
		Tag:   kind.TransitType().Label(),
		Type:  kind,
		Info: domain.StepInfo{
			DepStop:  td.DepartureStop.Name,
			ArrStop:  td.ArrivalStop.Name,
			DepTime:  td.DepartureTime.Clock(),
			ArrTime:  td.ArrivalTime.Clock(),
			Duration: minutes,
		},
	}
	if td.NumStops > 0 {
		step.Info.StopCount = domain.IntPtr(td.NumStops)
	}
	if r, g, b, ok := ParseHexColor(td.Line.Color); ok {
		step.Color = HexColor(r, g, b)
		step.TextColor = TextColorFor(r, g, b)
	}
	return step, td.Line.ShortName
}

func walkStep(s DirectionsStep) domain.DetailedStep {
	minutes := ceilMinutes(s.Duration.Value)
	title := StripMarkup(s.HTMLInstructions)
	if title == "" {
		title = "도보"
	}
	return domain.DetailedStep{
		Title: title,
		Time:  clock.FormatDuration(minutes),
		Icon:  domain.StepWalk.Icon(),
		Tag:   domain.TransitWalk.Label(),
		Type:  domain.StepWalk,
		Info:  domain.StepInfo{Duration: minutes},
	}
}

// walkOnlyStep stands in for a leg that has no ride at all.
func walkOnlyStep(leg DirectionsLeg, total int) domain.DetailedStep {
	return domain.DetailedStep{
		Title: "도보 이동",
		Time:  clock.FormatDuration(total),
		Icon:  domain.StepWalk.Icon(),
		Tag:   domain.TransitWalk.Label(),
		Type:  domain.StepWalk,
		Info: domain.StepInfo{
			DepStop:  leg.StartAddress,
			ArrStop:  leg.EndAddress,
			Duration: total,
		},
	}
}

// StripMarkup reduces an HTML instruction fragment to plain text with
// collapsed whitespace. Block tags become word breaks.
func StripMarkup(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "div", "br", "p", "li":
				b.WriteByte(' ')
			}
		}
	}
}

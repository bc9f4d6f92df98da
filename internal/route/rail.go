package route

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/alexanderramin/tripline/internal/clock"
	"github.com/alexanderramin/tripline/internal/domain"
)

// RailResult is the envelope of a rail course search.
type RailResult struct {
	ResultSet struct {
		Course OneOrMany[RailCourse] `json:"Course"`
		Error  *struct {
			Code    string `json:"code"`
			Message string `json:"Message"`
		} `json:"Error,omitempty"`
	} `json:"ResultSet"`
}

// RailCourse is one itinerary. Route.Line[i] runs from Route.Point[i]
// to Route.Point[i+1].
type RailCourse struct {
	Route RailRoute `json:"Route"`
}

type RailRoute struct {
	TimeOnBoard   Count                `json:"timeOnBoard"`
	TimeWalk      Count                `json:"timeWalk"`
	TimeOther     Count                `json:"timeOther"`
	TransferCount Count                `json:"transferCount"`
	Distance      Count                `json:"distance"` // in 100 m units
	Line          OneOrMany[RailLine]  `json:"Line"`
	Point         OneOrMany[RailPoint] `json:"Point"`
}

type RailLine struct {
	Name             string          `json:"Name"`
	Type             textOrObject    `json:"Type"`
	TimeOnBoard      Count           `json:"timeOnBoard"`
	StopStationCount Count           `json:"stopStationCount"`
	Color            string          `json:"Color"`
	Number           string          `json:"Number"`
	LineSymbol       *RailLineSymbol `json:"LineSymbol,omitempty"`
	DepartureState   RailState       `json:"DepartureState"`
	ArrivalState     RailState       `json:"ArrivalState"`
	Destination      string          `json:"Destination"`
}

type RailLineSymbol struct {
	Code string `json:"code"`
	Name string `json:"Name"`
}

type RailState struct {
	Datetime textOrObject `json:"Datetime"`
}

type RailPoint struct {
	Station *struct {
		Name string `json:"Name"`
		Code string `json:"code"`
	} `json:"Station,omitempty"`
	Name string `json:"Name"`
}

func (p RailPoint) name() string {
	if p.Station != nil && p.Station.Name != "" {
		return p.Station.Name
	}
	return p.Name
}

// railLineTypes maps the provider's line type onto step types.
var railLineTypes = map[string]domain.StepType{
	"train": domain.StepTrain,
	"bus":   domain.StepBus,
	"plane": domain.StepAirplane,
	"ship":  domain.StepShip,
	"walk":  domain.StepWalk,
}

func (l RailLine) stepType() domain.StepType {
	if t, ok := railLineTypes[strings.ToLower(string(l.Type))]; ok {
		return t
	}
	return domain.StepTrain
}

// tag prefers an alphabetic line symbol ("JY") over the numeric raw code.
func (l RailLine) tag() string {
	if l.LineSymbol != nil && isAlphaCode(l.LineSymbol.Code) {
		return l.LineSymbol.Code
	}
	if l.Number != "" {
		return l.Number
	}
	if l.LineSymbol != nil && l.LineSymbol.Code != "" {
		return l.LineSymbol.Code
	}
	return l.stepType().TransitType().Label()
}

func isAlphaCode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// FromRailCourse normalizes a rail course. Station and line names pass
// through tr; a nil tr leaves them untouched.
func FromRailCourse(c RailCourse, tr Translator) (NormalizedRoute, error) {
	if tr == nil {
		tr = Identity{}
	}
	lines, points := c.Route.Line, c.Route.Point
	if len(lines) == 0 {
		return NormalizedRoute{}, fmt.Errorf("rail course: %w", ErrEmptyRoute)
	}
	if len(points) != len(lines)+1 {
		return NormalizedRoute{}, fmt.Errorf("rail course: %d points for %d lines", len(points), len(lines))
	}

	steps := make([]domain.DetailedStep, 0, len(lines))
	var labels []string
	total, rides := 0, 0
	for i, l := range lines {
		kind := l.stepType()
		minutes := int(l.TimeOnBoard)
		total += minutes

		step := domain.DetailedStep{
			Time: clock.FormatDuration(minutes),
			Icon: kind.Icon(),
			Type: kind,
			Info: domain.StepInfo{
				DepStop:  tr.Translate(points[i].name()),
				ArrStop:  tr.Translate(points[i+1].name()),
				Duration: minutes,
			},
		}

		if kind == domain.StepWalk {
			step.Title = "도보"
			step.Tag = domain.TransitWalk.Label()
			steps = append(steps, step)
			continue
		}

		rides++
		step.Title = tr.Translate(l.Name)
		step.Tag = l.tag()
		step.Info.DepTime = railClock(l.DepartureState.Datetime)
		step.Info.ArrTime = railClock(l.ArrivalState.Datetime)
		if l.StopStationCount > 0 {
			step.Info.StopCount = domain.IntPtr(int(l.StopStationCount))
		}
		if r, g, b, ok := ParsePackedColor(l.Color); ok {
			step.Color = HexColor(r, g, b)
			step.TextColor = TextColorFor(r, g, b)
		}
		if l.LineSymbol != nil && isAlphaCode(l.LineSymbol.Code) {
			labels = append(labels, l.LineSymbol.Code)
		}
		steps = append(steps, step)
	}

	mode := ModeTransit
	if rides == 0 {
		mode = ModeWalk
	}
	transfers := int(c.Route.TransferCount)
	if transfers == 0 && rides > 1 {
		transfers = rides - 1
	}

	return NormalizedRoute{
		TotalDurationMinutes: total,
		Summary:              summarize(labels, steps),
		Steps:                steps,
		Mode:                 mode,
		Source:               SourceRail,
		FixedDuration:        true,
		DepartureTime:        railClock(lines[0].DepartureState.Datetime),
		ArrivalTime:          railClock(lines[len(lines)-1].ArrivalState.Datetime),
		DistanceMeters:       float64(c.Route.Distance) * 100,
		TransferCount:        transfers,
	}, nil
}

// ParsePackedColor splits a "RRRGGGBBB" decimal color. Shorter codes are
// zero-padded on the left; any group above 255 is rejected.
func ParsePackedColor(code string) (r, g, b int, ok bool) {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > 9 {
		return 0, 0, 0, false
	}
	code = strings.Repeat("0", 9-len(code)) + code

	var rgb [3]int
	for i := range rgb {
		n, err := strconv.Atoi(code[i*3 : i*3+3])
		if err != nil || n > 255 {
			return 0, 0, 0, false
		}
		rgb[i] = n
	}
	return rgb[0], rgb[1], rgb[2], true
}

// railClock extracts "HH:MM" from an RFC 3339 timestamp or a bare clock.
func railClock(v textOrObject) string {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return clock.Of(t)
	}
	if m, ok := clock.ParseClock(s); ok {
		return clock.FormatClock(m)
	}
	return ""
}

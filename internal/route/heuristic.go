package route

import (
	"math"

	"github.com/alexanderramin/tripline/internal/clock"
	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/geo"
)

// tier is one distance band of the straight-line estimate.
type tier struct {
	maxMeters      float64
	mode           Mode
	metersPerMin   float64
	minimumMinutes int
	step           domain.StepType
}

var tiers = []tier{
	{1000, ModeWalk, 80, 1, domain.StepWalk},
	{5000, ModeTransitLocal, 120, 5, domain.StepBus},
	{15000, ModeTransit, 9000.0 / 60, 5, domain.StepSubway},
	{40000, ModeTransit, 13000.0 / 60, 5, domain.StepTrain},
	{math.Inf(1), ModeTransitIntercity, 50000.0 / 60, 5, domain.StepTrain},
}

// Estimate returns the travel mode and minutes for a straight-line
// distance in meters.
func Estimate(meters float64) (Mode, int) {
	t := tierFor(meters)
	return t.mode, estimateMinutes(t, meters)
}

func tierFor(meters float64) tier {
	for _, t := range tiers {
		if meters <= t.maxMeters {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

func estimateMinutes(t tier, meters float64) int {
	return max(int(math.Ceil(meters/t.metersPerMin)), t.minimumMinutes)
}

// FromDistance estimates a route from the great-circle distance between a
// and b. It reports false when either point is missing. The result always
// has a single step and a fixed duration.
func FromDistance(a, b *geo.LatLng) (NormalizedRoute, bool) {
	meters, ok := geo.HaversineMeters(a, b)
	if !ok {
		return NormalizedRoute{}, false
	}
	t := tierFor(meters)
	minutes := estimateMinutes(t, meters)

	title := "대중교통 이동 (예상)"
	if t.mode == ModeWalk {
		title = "도보 이동"
	}
	step := domain.DetailedStep{
		Title: title,
		Time:  clock.FormatDuration(minutes),
		Icon:  t.step.Icon(),
		Tag:   t.step.TransitType().Label(),
		Type:  t.step,
		Info:  domain.StepInfo{Duration: minutes},
	}

	return NormalizedRoute{
		TotalDurationMinutes: minutes,
		Summary:              Summary{Title: title, Icon: step.Icon, Tag: step.Tag},
		Steps:                []domain.DetailedStep{step},
		Mode:                 t.mode,
		Source:               SourceHeuristic,
		FixedDuration:        true,
		DistanceMeters:       meters,
	}, true
}

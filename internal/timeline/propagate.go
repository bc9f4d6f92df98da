package timeline

import (
	"github.com/alexanderramin/tripline/internal/clock"
	"github.com/alexanderramin/tripline/internal/domain"
)

// propagate walks the flattened timeline once, deriving each anchor's
// time and each transit leg's start/end from the anchor before it. Memos
// are skipped. Transit legs before the first anchor are left alone.
func propagate(items []*domain.Item) {
	var prev *domain.Item
	var legs []*domain.Item

	for _, it := range items {
		switch it.Kind {
		case domain.KindTransit:
			if prev != nil {
				legs = append(legs, it)
			}
		case domain.KindPlace:
			if prev != nil {
				linkAnchors(prev, legs, it)
			}
			prev, legs = it, nil
		case domain.KindMemo:
		}
	}

	if prev != nil && len(legs) > 0 {
		chainTrailing(prev, legs)
	}
}

// linkAnchors applies the time rules between two consecutive anchors a
// and b with legs between them:
//   - no legs: b departs a's dwell later
//   - only fixed-duration legs (or b untimed): legs chain from a's
//     departure and b's time becomes the final arrival
//   - otherwise b keeps its time and the last non-fixed leg absorbs the
//     gap, wrapping to the next day when negative
func linkAnchors(a *domain.Item, legs []*domain.Item, b *domain.Item) {
	start, ok := clock.ParseClock(a.Time)
	if !ok {
		return
	}
	cursor := start + a.Dwell()

	if len(legs) == 0 {
		setAnchorTime(b, cursor)
		return
	}

	free := lastFlexibleLeg(legs)
	arrival, timed := clock.ParseClock(b.Time)

	if free < 0 || !timed {
		for _, leg := range legs {
			d := legMinutes(leg)
			setLegWindow(leg, cursor, cursor+d)
			cursor += d
		}
		setAnchorTime(b, cursor)
		return
	}

	others := 0
	for i, leg := range legs {
		if i != free {
			others += legMinutes(leg)
		}
	}
	gap := clock.Gap(normalize(cursor+others), arrival)
	legs[free].Time = clock.FormatDuration(gap)

	for i, leg := range legs {
		d := gap
		if i != free {
			d = legMinutes(leg)
		}
		setLegWindow(leg, cursor, cursor+d)
		cursor += d
	}
}

// chainTrailing fills start/end for legs after the last anchor.
func chainTrailing(a *domain.Item, legs []*domain.Item) {
	start, ok := clock.ParseClock(a.Time)
	if !ok {
		return
	}
	cursor := start + a.Dwell()
	for _, leg := range legs {
		d := legMinutes(leg)
		setLegWindow(leg, cursor, cursor+d)
		cursor += d
	}
}

func lastFlexibleLeg(legs []*domain.Item) int {
	for i := len(legs) - 1; i >= 0; i-- {
		if legs[i].Transit == nil || !legs[i].Transit.FixedDuration {
			return i
		}
	}
	return -1
}

func legMinutes(leg *domain.Item) int {
	return clock.ParseDuration(leg.Time)
}

// setAnchorTime writes a derived clock onto an anchor. A day ends at
// 23:59: anchors pushed past midnight are clamped there instead of
// wrapping to the morning, which would break group order.
func setAnchorTime(b *domain.Item, minutes int) {
	if minutes > lastMinute {
		minutes = lastMinute
	}
	b.Time = clock.FormatClock(minutes)
}

func setLegWindow(leg *domain.Item, start, end int) {
	if leg.Transit == nil {
		return
	}
	leg.Transit.Info.Start = clock.FormatClock(start)
	leg.Transit.Info.End = clock.FormatClock(end)
}

const lastMinute = clock.MinutesPerDay - 1

func normalize(m int) int {
	return ((m % clock.MinutesPerDay) + clock.MinutesPerDay) % clock.MinutesPerDay
}

// Package timeline keeps a day's event list in chronological order and
// derives the clock times that follow from dwell and transit durations.
package timeline

import (
	"sort"

	"github.com/alexanderramin/tripline/internal/clock"
	"github.com/alexanderramin/tripline/internal/domain"
)

// group is a place anchor followed by the transit legs and memos that
// trail it. The headless group collects items that precede the first
// place; it has no anchor and always stays in front.
type group struct {
	anchor *domain.Item
	items  []*domain.Item
}

// sortKey returns the anchor clock. Untimed anchors report false.
func (g *group) sortKey() (int, bool) {
	if g.anchor == nil {
		return 0, false
	}
	return clock.ParseClock(g.anchor.Time)
}

// Reorder restores chronological group order and recomputes derived
// times in place. It is safe on any input: malformed times sort last and
// never cause an error. Passes repeat until the timeline is stable, so
// reordering an already reordered day changes nothing.
func Reorder(day *domain.Day) *domain.Day {
	if day == nil || len(day.Timeline) == 0 {
		return day
	}

	maxPasses := 2*len(day.Timeline) + 2
	before := snapshot(day.Timeline)
	for pass := 0; pass < maxPasses; pass++ {
		day.Timeline = reorderPass(day.Timeline)
		after := snapshot(day.Timeline)
		if equalSnapshots(before, after) {
			break
		}
		before = after
	}
	return day
}

func reorderPass(items []*domain.Item) []*domain.Item {
	groups := buildGroups(items)
	sortGroups(groups)
	flat := flatten(groups, len(items))
	propagate(flat)
	return flat
}

func buildGroups(items []*domain.Item) []*group {
	var groups []*group
	var cur *group
	for _, it := range items {
		if it == nil {
			continue
		}
		if it.IsAnchor() {
			cur = &group{anchor: it, items: []*domain.Item{it}}
			groups = append(groups, cur)
			continue
		}
		if cur == nil {
			cur = &group{}
			groups = append(groups, cur)
		}
		cur.items = append(cur.items, it)
	}
	return groups
}

// sortGroups orders groups by anchor clock. The headless group comes
// first, untimed anchors last, and ties keep their original order.
func sortGroups(groups []*group) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]

		if (a.anchor == nil) != (b.anchor == nil) {
			return a.anchor == nil
		}

		ka, okA := a.sortKey()
		kb, okB := b.sortKey()
		if okA != okB {
			return okA
		}
		return okA && ka < kb
	})
}

func flatten(groups []*group, n int) []*domain.Item {
	out := make([]*domain.Item, 0, n)
	for _, g := range groups {
		out = append(out, g.items...)
	}
	return out
}

type itemState struct {
	item       *domain.Item
	time       string
	start, end string
}

func snapshot(items []*domain.Item) []itemState {
	out := make([]itemState, len(items))
	for i, it := range items {
		s := itemState{item: it}
		if it != nil {
			s.time = it.Time
			if it.Transit != nil {
				s.start, s.end = it.Transit.Info.Start, it.Transit.Info.End
			}
		}
		out[i] = s
	}
	return out
}

func equalSnapshots(a, b []itemState) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

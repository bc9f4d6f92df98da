package timeline

import (
	"github.com/alexanderramin/tripline/internal/domain"
)

func place(id, at string, dwell ...int) *domain.Item {
	p := domain.NewPlace(id, at, "place "+id, "")
	if len(dwell) > 0 {
		p.Duration = domain.IntPtr(dwell[0])
	}
	return p
}

func leg(id, duration string, fixed bool) *domain.Item {
	t := domain.NewTransit(id, domain.TransitBus, "leg "+id, duration)
	t.Transit.FixedDuration = fixed
	return t
}

func memo(id string) *domain.Item {
	return domain.NewMemo(id, "memo "+id)
}

func dayOf(items ...*domain.Item) *domain.Day {
	d := domain.NewDay("day-1", "trip-1", "2026-05-01", 0)
	d.Timeline = items
	return d
}

func ids(d *domain.Day) []string {
	out := make([]string, len(d.Timeline))
	for i, it := range d.Timeline {
		out[i] = it.ID
	}
	return out
}

func byID(d *domain.Day, id string) *domain.Item {
	return d.Timeline[d.IndexOf(id)]
}

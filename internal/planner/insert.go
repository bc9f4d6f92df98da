package planner

import (
	"fmt"

	"github.com/alexanderramin/tripline/internal/contract"
	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/route"
	"github.com/alexanderramin/tripline/internal/timeline"
)

// BuildTransitItem converts a chosen route into a fixed-duration transit
// leg carrying the route's steps and summary.
func BuildTransitItem(id string, r route.NormalizedRoute) *domain.Item {
	item := domain.NewTransit(id, r.TransitType(), r.Summary.Title, r.DurationText())
	if r.Summary.Icon != "" {
		item.Icon = r.Summary.Icon
	}
	if r.Summary.Tag != "" {
		item.Tag = r.Summary.Tag
	}

	tr := item.Transit
	tr.FixedDuration = true
	tr.Steps = domain.CloneSteps(r.Steps)
	tr.Info.Start = r.DepartureTime
	tr.Info.End = r.ArrivalTime
	tr.Info.TransferCount = domain.IntPtr(r.TransferCount)
	if rides := r.Rides(); len(rides) > 0 {
		tr.Info.DepStop = rides[0].Info.DepStop
		tr.Info.ArrStop = rides[len(rides)-1].Info.ArrStop
	} else if len(r.Steps) > 0 {
		tr.Info.DepStop = r.Steps[0].Info.DepStop
		tr.Info.ArrStop = r.Steps[len(r.Steps)-1].Info.ArrStop
	}
	return item
}

// InsertRoute splices chosen into day at insertionIndex and reorders the
// day. revision is the day revision the search ran against; if the day
// has changed since, nothing is inserted and ErrStaleSearch is returned.
func (p *Planner) InsertRoute(day *domain.Day, insertionIndex int, chosen route.NormalizedRoute, revision int64) (*domain.Item, error) {
	if day.Revision != revision {
		return nil, fmt.Errorf("insert route into day %s (revision %d, searched %d): %w",
			day.ID, day.Revision, revision, ErrStaleSearch)
	}
	item := BuildTransitItem(p.opts.NewID(), chosen)
	if err := timeline.Insert(day, insertionIndex, item); err != nil {
		return nil, fmt.Errorf("insert route: %w", err)
	}
	return item, nil
}

// Choose inserts candidate choice of a finished search and moves the
// search to the inserted state.
func (p *Planner) Choose(day *domain.Day, res *contract.RouteSearchResult, choice int) (*domain.Item, error) {
	if res.State != contract.StateCandidatesReady {
		return nil, fmt.Errorf("choose route: search is %s", res.State)
	}
	if res.DayID != day.ID {
		return nil, fmt.Errorf("choose route: search belongs to day %s", res.DayID)
	}
	if choice < 0 || choice >= len(res.Candidates) {
		return nil, fmt.Errorf("choose route %d of %d: %w", choice, len(res.Candidates), timeline.ErrIndexOutOfRange)
	}
	item, err := p.InsertRoute(day, res.InsertionIndex, res.Candidates[choice], res.Revision)
	if err != nil {
		return nil, err
	}
	res.State = contract.StateInserted
	return item, nil
}

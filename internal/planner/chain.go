package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tripline/internal/contract"
	"github.com/alexanderramin/tripline/internal/provider"
	"github.com/alexanderramin/tripline/internal/route"
)

// attempt carries one search through the provider chain and records
// what each step tried.
type attempt struct {
	ctx      context.Context
	from, to Endpoint
	log      []string
	errs     []error
}

func (a *attempt) record(step string, n int, err error) {
	switch {
	case err != nil:
		a.log = append(a.log, fmt.Sprintf("%s: %v", step, err))
		a.errs = append(a.errs, err)
	case n == 0:
		a.log = append(a.log, step+": no route")
		a.errs = append(a.errs, provider.ErrNoRoute)
	default:
		a.log = append(a.log, fmt.Sprintf("%s: %d route(s)", step, n))
	}
}

// runChain tries the adapters in priority order and stops at the first
// that yields a route. Within allow-listed regions the rail provider and
// then the straight-line estimate go first; otherwise (or if both fail)
// directions are asked at the inferred departure, then for "now", then
// for walking.
func (p *Planner) runChain(a *attempt, departAt time.Time, hasDepart bool) []route.NormalizedRoute {
	if p.regional(a.from, a.to) {
		if routes := p.tryRail(a, departAt); len(routes) > 0 {
			return routes
		}
		if r, ok := route.FromDistance(a.from.Point, a.to.Point); ok {
			a.record("heuristic", 1, nil)
			return []route.NormalizedRoute{r}
		}
		a.record("heuristic", 0, nil)
	}

	if hasDepart {
		if routes := p.tryDirections(a, "directions@departure", provider.ModeTransit, departAt); len(routes) > 0 {
			return routes
		}
	}
	if routes := p.tryDirections(a, "directions@now", provider.ModeTransit, time.Time{}); len(routes) > 0 {
		return routes
	}
	return p.tryDirections(a, "directions@walking", provider.ModeWalking, time.Time{})
}

func (p *Planner) tryRail(a *attempt, departAt time.Time) []route.NormalizedRoute {
	if a.ctx.Err() != nil {
		return nil
	}
	courses, err := p.rail.Courses(a.ctx, provider.RailQuery{
		From:     a.from.Place(),
		To:       a.to.Place(),
		DepartAt: departAt,
	})
	if err != nil {
		a.record("rail", 0, err)
		return nil
	}

	var out []route.NormalizedRoute
	for _, c := range courses {
		r, err := route.FromRailCourse(c, p.opts.Translator)
		if err != nil {
			p.opts.Logger.Warn("rail_course_skipped", "error", err)
			continue
		}
		out = append(out, r)
	}
	a.record("rail", len(out), nil)
	return out
}

func (p *Planner) tryDirections(a *attempt, step string, mode provider.TravelMode, at time.Time) []route.NormalizedRoute {
	if a.ctx.Err() != nil {
		return nil
	}
	routes, err := p.directions.Directions(a.ctx, provider.DirectionsQuery{
		Origin:      a.from.Place(),
		Destination: a.to.Place(),
		Mode:        mode,
		DepartAt:    at,
	})
	if err != nil {
		a.record(step, 0, err)
		return nil
	}

	var out []route.NormalizedRoute
	for _, dr := range routes {
		r, err := route.FromDirections(dr)
		if err != nil {
			p.opts.Logger.Warn("directions_route_skipped", "error", err)
			continue
		}
		out = append(out, r)
	}
	a.record(step, len(out), nil)
	return out
}

// diagnose lists the likely reasons an exhausted chain found nothing.
func (p *Planner) diagnose(a *attempt, departAt time.Time, hasDepart bool) []contract.FailureCause {
	var causes []contract.FailureCause

	timedOut := errors.Is(a.ctx.Err(), context.DeadlineExceeded)
	noRoute := false
	for _, err := range a.errs {
		if errors.Is(err, provider.ErrTimeout) {
			timedOut = true
		}
		if errors.Is(err, provider.ErrNoRoute) {
			noRoute = true
		}
	}
	if timedOut {
		causes = append(causes, contract.CauseTimeout)
	}

	if hasDepart && p.opts.MaxDaysAhead > 0 {
		limit := p.opts.Now().AddDate(0, 0, p.opts.MaxDaysAhead)
		if departAt.After(limit) {
			causes = append(causes, contract.CauseDateTooFar)
		}
	}
	if a.from.Country != "" && a.to.Country != "" && a.from.Country != a.to.Country {
		causes = append(causes, contract.CauseSeaCrossing)
	}
	if noRoute || len(causes) == 0 {
		causes = append(causes, contract.CauseNoTransitCoverage)
	}
	return causes
}

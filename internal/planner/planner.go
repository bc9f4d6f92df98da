// Package planner searches routes for a gap in a day's timeline and
// splices the chosen route in as a fixed-duration transit leg.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tripline/internal/clock"
	"github.com/alexanderramin/tripline/internal/contract"
	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/geo"
	"github.com/alexanderramin/tripline/internal/provider"
	"github.com/alexanderramin/tripline/internal/route"
	"github.com/alexanderramin/tripline/internal/timeline"
)

var (
	// ErrSuperseded indicates a search replaced by a newer search on the
	// same day. Its result must not be shown or applied.
	ErrSuperseded = errors.New("route search superseded")

	// ErrStaleSearch indicates the day changed after the search ran.
	ErrStaleSearch = errors.New("timeline changed since route search")
)

// Options tune the planner.
type Options struct {
	// HeuristicCountries gates the rail provider and the straight-line
	// estimate: both endpoints must resolve to a listed country.
	HeuristicCountries []string
	MaxDaysAhead       int
	SearchTimeout      time.Duration
	Location           *time.Location

	Translator route.Translator
	Countries  CountryResolver
	NewID      func() string
	Now        func() time.Time
	Logger     *slog.Logger
}

func (o *Options) withDefaults() {
	if o.SearchTimeout <= 0 {
		o.SearchTimeout = 20 * time.Second
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Translator == nil {
		o.Translator = route.Identity{}
	}
	if o.Countries == nil {
		o.Countries = geo.NewBoxResolver(nil)
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}

type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

// Planner runs route searches. It is safe for concurrent use; a new
// search on a day cancels the one still running for it.
type Planner struct {
	opts       Options
	directions provider.DirectionsClient
	rail       provider.RailClient

	mu      sync.Mutex
	nextGen uint64
	active  map[string]inflight
}

// New creates a Planner over the given provider clients.
func New(directions provider.DirectionsClient, rail provider.RailClient, opts Options) *Planner {
	opts.withDefaults()
	return &Planner{
		opts:       opts,
		directions: directions,
		rail:       rail,
		active:     make(map[string]inflight),
	}
}

// begin registers a search for dayID, cancelling the previous one.
func (p *Planner) begin(ctx context.Context, dayID string) (uint64, context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	if prev, ok := p.active[dayID]; ok {
		prev.cancel()
	}
	p.nextGen++
	gen := p.nextGen
	p.active[dayID] = inflight{gen: gen, cancel: cancel}
	p.mu.Unlock()

	release := func() {
		cancel()
		p.mu.Lock()
		if cur, ok := p.active[dayID]; ok && cur.gen == gen {
			delete(p.active, dayID)
		}
		p.mu.Unlock()
	}
	return gen, ctx, release
}

func (p *Planner) current(dayID string, gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur, ok := p.active[dayID]
	return ok && cur.gen == gen
}

// SearchRoute looks for routes to fill position insertionIndex of day.
// timeHint, when a valid clock, overrides the inferred departure. A
// search that finds nothing is not an error: the result carries
// StatusFailed with its likely causes. The day is never modified.
func (p *Planner) SearchRoute(ctx context.Context, day *domain.Day, insertionIndex int, timeHint string) (*contract.RouteSearchResult, error) {
	if day == nil {
		return nil, errors.New("search route: nil day")
	}
	if insertionIndex < 0 || insertionIndex > len(day.Timeline) {
		return nil, fmt.Errorf("search route at %d: %w", insertionIndex, timeline.ErrIndexOutOfRange)
	}

	res := &contract.RouteSearchResult{
		State:          contract.StateIdle,
		DayID:          day.ID,
		Revision:       day.Revision,
		InsertionIndex: insertionIndex,
	}

	from, to, err := ResolveEndpoints(day, insertionIndex, p.opts.Countries)
	if err != nil {
		fail(res, []contract.FailureCause{contract.CauseUnresolvedEndpoint})
		return res, nil
	}
	res.Origin, res.Destination = from.Label(), to.Label()

	departAt, hasDepart := p.departure(day, insertionIndex, timeHint)
	if hasDepart {
		res.DepartAt = departAt
	}

	gen, searchCtx, release := p.begin(ctx, day.ID)
	defer release()
	res.SearchID = gen
	res.State = contract.StateSearching

	searchCtx, cancel := context.WithTimeout(searchCtx, p.opts.SearchTimeout)
	defer cancel()

	s := &attempt{ctx: searchCtx, from: from, to: to}
	candidates := p.runChain(s, departAt, hasDepart)
	res.Attempts = s.log

	if !p.current(day.ID, gen) {
		return nil, ErrSuperseded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		fail(res, p.diagnose(s, departAt, hasDepart))
		p.opts.Logger.Info("route_search_failed",
			"day", day.ID, "origin", res.Origin, "destination", res.Destination, "causes", res.Causes)
		return res, nil
	}

	candidates[0].Recommended = true
	res.Candidates = candidates
	res.Status = contract.StatusCandidates
	res.State = contract.StateCandidatesReady
	p.opts.Logger.Info("route_search_ok",
		"day", day.ID, "origin", res.Origin, "destination", res.Destination,
		"candidates", len(candidates), "source", string(candidates[0].Source))
	return res, nil
}

func fail(res *contract.RouteSearchResult, causes []contract.FailureCause) {
	msgs := make([]string, len(causes))
	for i, c := range causes {
		msgs[i] = c.Message()
	}
	res.Status = contract.StatusFailed
	res.State = contract.StateFailed
	res.Causes = causes
	res.Reason = strings.Join(msgs, "; ")
}

// departure infers when the new leg leaves: the time hint when valid,
// otherwise the end of the item before the insertion point, on the
// day's date.
func (p *Planner) departure(day *domain.Day, insertionIndex int, hint string) (time.Time, bool) {
	minutes, ok := clock.ParseClock(hint)
	if !ok {
		minutes, ok = timeline.EndBefore(day, insertionIndex)
	}
	if !ok {
		return time.Time{}, false
	}
	date, err := day.DateValue()
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, p.opts.Location).
		Add(time.Duration(minutes) * time.Minute), true
}

// regional reports whether both endpoints sit in allow-listed countries.
func (p *Planner) regional(from, to Endpoint) bool {
	return allowed(p.opts.HeuristicCountries, from.Country) && allowed(p.opts.HeuristicCountries, to.Country)
}

func allowed(list []string, country string) bool {
	if country == "" {
		return false
	}
	for _, c := range list {
		if strings.EqualFold(c, country) {
			return true
		}
	}
	return false
}

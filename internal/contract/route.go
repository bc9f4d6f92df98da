package contract

import (
	"time"

	"github.com/alexanderramin/tripline/internal/domain"
	"github.com/alexanderramin/tripline/internal/route"
)

// SearchState is the lifecycle of one route-insertion request.
type SearchState string

const (
	StateIdle            SearchState = "idle"
	StateSearching       SearchState = "searching"
	StateCandidatesReady SearchState = "candidates_ready"
	StateFailed          SearchState = "failed"
	StateInserted        SearchState = "inserted"
)

// SearchStatus is the coarse outcome reported to callers.
type SearchStatus string

const (
	StatusCandidates SearchStatus = "candidates"
	StatusFailed     SearchStatus = "failed"
)

// FailureCause is a likely reason a search found nothing.
type FailureCause string

const (
	CauseUnresolvedEndpoint FailureCause = "unresolved_endpoint"
	CauseNoTransitCoverage  FailureCause = "no_transit_coverage"
	CauseDateTooFar         FailureCause = "date_too_far"
	CauseSeaCrossing        FailureCause = "sea_crossing"
	CauseTimeout            FailureCause = "timeout"
)

// Message returns the user-facing text for c.
func (c FailureCause) Message() string {
	switch c {
	case CauseUnresolvedEndpoint:
		return "one side of the leg has no location or place name"
	case CauseNoTransitCoverage:
		return "no public transit covers this area"
	case CauseDateTooFar:
		return "the date is too far ahead for published timetables"
	case CauseSeaCrossing:
		return "the trip crosses a sea; add a flight or ferry by hand"
	case CauseTimeout:
		return "the routing service did not answer in time"
	default:
		return string(c)
	}
}

type RouteSearchRequest struct {
	TripID         string
	DayIndex       int
	InsertionIndex int
	TimeHint       string
}

func NewRouteSearchRequest(tripID string, dayIndex, insertionIndex int) RouteSearchRequest {
	return RouteSearchRequest{
		TripID:         tripID,
		DayIndex:       dayIndex,
		InsertionIndex: insertionIndex,
	}
}

type RouteSearchResult struct {
	SearchID       uint64
	Status         SearchStatus
	State          SearchState
	Candidates     []route.NormalizedRoute
	Reason         string
	Causes         []FailureCause
	Attempts       []string
	DayID          string
	Revision       int64
	InsertionIndex int
	Origin         string
	Destination    string
	DepartAt       time.Time
}

// Recommended returns the provider-preferred candidate, or nil.
func (r *RouteSearchResult) Recommended() *route.NormalizedRoute {
	for i := range r.Candidates {
		if r.Candidates[i].Recommended {
			return &r.Candidates[i]
		}
	}
	return nil
}

// HasCause reports whether c is among the failure causes.
func (r *RouteSearchResult) HasCause(c FailureCause) bool {
	for _, got := range r.Causes {
		if got == c {
			return true
		}
	}
	return false
}

type RouteInsertRequest struct {
	TripID         string
	DayIndex       int
	InsertionIndex int
	Revision       int64
	Candidate      route.NormalizedRoute
}

type RouteInsertResponse struct {
	Item *domain.Item
	Day  *domain.Day
}

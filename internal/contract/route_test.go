package contract

import (
	"testing"

	"github.com/alexanderramin/tripline/internal/route"
	"github.com/stretchr/testify/assert"
)

func TestNewRouteSearchRequest_SetsFields(t *testing.T) {
	req := NewRouteSearchRequest("trip-1", 2, 3)

	assert.Equal(t, "trip-1", req.TripID)
	assert.Equal(t, 2, req.DayIndex)
	assert.Equal(t, 3, req.InsertionIndex)
	assert.Empty(t, req.TimeHint)
}

func TestRouteSearchResult_Recommended(t *testing.T) {
	res := &RouteSearchResult{Candidates: []route.NormalizedRoute{
		{Summary: route.Summary{Title: "a"}, Recommended: true},
		{Summary: route.Summary{Title: "b"}},
	}}
	assert.Equal(t, "a", res.Recommended().Summary.Title)

	assert.Nil(t, (&RouteSearchResult{}).Recommended())
}

func TestRouteSearchResult_HasCause(t *testing.T) {
	res := &RouteSearchResult{Causes: []FailureCause{CauseSeaCrossing}}
	assert.True(t, res.HasCause(CauseSeaCrossing))
	assert.False(t, res.HasCause(CauseTimeout))
}

func TestFailureCause_Message(t *testing.T) {
	for _, c := range []FailureCause{CauseUnresolvedEndpoint, CauseNoTransitCoverage, CauseDateTooFar, CauseSeaCrossing, CauseTimeout} {
		assert.NotEqual(t, string(c), c.Message(), c)
	}
	assert.Equal(t, "other", FailureCause("other").Message())
}

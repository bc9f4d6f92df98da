package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/tripline/internal/route"
)

// RailQuery asks the rail provider for courses between two places at a
// departure date and time.
type RailQuery struct {
	From     Place
	To       Place
	DepartAt time.Time
}

// RailClient fetches rail courses.
type RailClient interface {
	Courses(ctx context.Context, q RailQuery) ([]route.RailCourse, error)
}

type railClient struct {
	*caller
}

// NewRailClient creates a RailClient for the configured rail endpoint.
func NewRailClient(cfg Config, observer Observer) RailClient {
	return &railClient{caller: newCaller(KindRail, cfg, observer)}
}

// railPoint renders a place the way the course search expects it:
// "lat,lng,wgs84" for coordinates, the station name otherwise.
func railPoint(p Place) string {
	if p.Point != nil {
		return fmt.Sprintf("%.6f,%.6f,wgs84", p.Point.Lat, p.Point.Lng)
	}
	return p.Name
}

func (c *railClient) Courses(ctx context.Context, q RailQuery) ([]route.RailCourse, error) {
	if !c.cfg.Configured(KindRail) {
		return nil, ErrNotConfigured
	}
	if q.From.Empty() || q.To.Empty() {
		return nil, fmt.Errorf("rail: %w: missing endpoint", ErrRejected)
	}
	at := q.DepartAt
	if at.IsZero() {
		at = time.Now()
	}

	ep := c.endpoint()
	params := url.Values{}
	params.Set("key", ep.APIKey)
	params.Set("viaList", railPoint(q.From)+":"+railPoint(q.To))
	params.Set("date", at.Format("20060102"))
	params.Set("time", at.Format("1504"))
	params.Set("searchType", "departure")
	u := strings.TrimRight(ep.Endpoint, "/") + "/v1/json/search/course/extreme?" + params.Encode()

	body, err := c.get(ctx, "rail.course", u, queryKey("rail", q.From, q.To, at))
	if err != nil {
		return nil, err
	}

	var res route.RailResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decoding rail response: %w", err)
	}
	if e := res.ResultSet.Error; e != nil {
		return nil, fmt.Errorf("%w: rail error %s: %s", ErrNoRoute, e.Code, e.Message)
	}
	if len(res.ResultSet.Course) == 0 {
		return nil, ErrNoRoute
	}
	return res.ResultSet.Course, nil
}

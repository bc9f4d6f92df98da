package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tripline/internal/route"
)

// TravelMode selects what the directions provider may use.
type TravelMode string

const (
	ModeTransit TravelMode = "transit"
	ModeWalking TravelMode = "walking"
)

// DirectionsQuery asks for routes between two places. A zero DepartAt
// means "now".
type DirectionsQuery struct {
	Origin      Place
	Destination Place
	Mode        TravelMode
	DepartAt    time.Time
}

// DirectionsClient fetches turn-by-turn routes.
type DirectionsClient interface {
	Directions(ctx context.Context, q DirectionsQuery) ([]route.DirectionsRoute, error)
}

type directionsClient struct {
	*caller
}

// NewDirectionsClient creates a DirectionsClient for the configured
// directions endpoint.
func NewDirectionsClient(cfg Config, observer Observer) DirectionsClient {
	return &directionsClient{caller: newCaller(KindDirections, cfg, observer)}
}

func (c *directionsClient) Directions(ctx context.Context, q DirectionsQuery) ([]route.DirectionsRoute, error) {
	if !c.cfg.Configured(KindDirections) {
		return nil, ErrNotConfigured
	}
	if q.Origin.Empty() || q.Destination.Empty() {
		return nil, fmt.Errorf("directions: %w: missing endpoint", ErrRejected)
	}
	if q.Mode == "" {
		q.Mode = ModeTransit
	}

	ep := c.endpoint()
	params := url.Values{}
	params.Set("origin", q.Origin.Param())
	params.Set("destination", q.Destination.Param())
	params.Set("mode", string(q.Mode))
	params.Set("alternatives", "true")
	params.Set("language", c.cfg.Language)
	params.Set("key", ep.APIKey)
	if q.Mode == ModeTransit {
		if q.DepartAt.IsZero() {
			params.Set("departure_time", "now")
		} else {
			params.Set("departure_time", strconv.FormatInt(q.DepartAt.Unix(), 10))
		}
	}
	u := strings.TrimRight(ep.Endpoint, "/") + "/directions/json?" + params.Encode()

	body, err := c.get(ctx, "directions."+string(q.Mode), u, queryKey(string(q.Mode), q.Origin, q.Destination, q.DepartAt))
	if err != nil {
		return nil, err
	}

	var resp route.DirectionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding directions response: %w", err)
	}

	switch resp.Status {
	case "OK":
		if len(resp.Routes) == 0 {
			return nil, ErrNoRoute
		}
		return resp.Routes, nil
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, ErrNoRoute
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT", "REQUEST_DENIED", "INVALID_REQUEST":
		return nil, fmt.Errorf("%w: %s %s", ErrRejected, resp.Status, resp.ErrorMessage)
	default:
		return nil, fmt.Errorf("directions status %q: %s", resp.Status, resp.ErrorMessage)
	}
}

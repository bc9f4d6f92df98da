package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/tripline/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(kind Kind, endpoint string) Config {
	cfg := DefaultConfig()
	cfg.RatePerSec = 0
	cfg.Providers[kind] = KindConfig{Endpoint: endpoint, APIKey: "test-key", TimeoutMs: 2000}
	return cfg
}

type recordingObserver struct {
	mu     sync.Mutex
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(e CallEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) all() []CallEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]CallEvent(nil), o.events...)
}

var (
	tokyo    = &geo.LatLng{Lat: 35.6812, Lng: 139.7671}
	shinjuku = &geo.LatLng{Lat: 35.6896, Lng: 139.7006}
)

func transitQuery() DirectionsQuery {
	return DirectionsQuery{
		Origin:      Place{Point: tokyo},
		Destination: Place{Point: shinjuku},
		Mode:        ModeTransit,
		DepartAt:    time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestDirections_Success(t *testing.T) {
	fixture, err := os.ReadFile("../route/testdata/directions_transit.json")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/directions/json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "transit", q.Get("mode"))
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, tokyo.String(), q.Get("origin"))
		assert.Equal(t, "1777714200", q.Get("departure_time"))
		w.Header().Set("Content-Type", "application/json")
		w.Write(fixture)
	}))
	defer srv.Close()

	client := NewDirectionsClient(testConfig(KindDirections, srv.URL), NoopObserver{})
	routes, err := client.Directions(context.Background(), transitQuery())

	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Len(t, routes[0].Legs[0].Steps, 3)
}

func TestDirections_Statuses(t *testing.T) {
	tests := []struct {
		status string
		want   error
	}{
		{"ZERO_RESULTS", ErrNoRoute},
		{"NOT_FOUND", ErrNoRoute},
		{"REQUEST_DENIED", ErrRejected},
		{"OVER_QUERY_LIMIT", ErrRejected},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status":"` + tt.status + `","routes":[]}`))
			}))
			defer srv.Close()

			client := NewDirectionsClient(testConfig(KindDirections, srv.URL), NoopObserver{})
			_, err := client.Directions(context.Background(), transitQuery())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDirections_NotConfigured(t *testing.T) {
	client := NewDirectionsClient(DefaultConfig(), nil)
	_, err := client.Directions(context.Background(), transitQuery())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestDirections_MissingEndpoint(t *testing.T) {
	client := NewDirectionsClient(testConfig(KindDirections, "http://unused"), nil)
	_, err := client.Directions(context.Background(), DirectionsQuery{Origin: Place{Name: "Hotel"}})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestDirections_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(KindDirections, srv.URL)
	cfg.Providers[KindDirections] = KindConfig{Endpoint: srv.URL, APIKey: "k", TimeoutMs: 50}

	client := NewDirectionsClient(cfg, NoopObserver{})
	_, err := client.Directions(context.Background(), transitQuery())

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestDirections_Unavailable(t *testing.T) {
	cfg := testConfig(KindDirections, "http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	client := NewDirectionsClient(cfg, NoopObserver{})
	_, err := client.Directions(context.Background(), transitQuery())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDirections_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"status":"OK","routes":[{"legs":[{"steps":[]}]}]}`))
	}))
	defer srv.Close()

	client := NewDirectionsClient(testConfig(KindDirections, srv.URL), NoopObserver{})
	routes, err := client.Directions(context.Background(), transitQuery())

	require.NoError(t, err)
	assert.Len(t, routes, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDirections_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewDirectionsClient(testConfig(KindDirections, srv.URL), NoopObserver{})
	_, err := client.Directions(context.Background(), transitQuery())

	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDirections_CachesRepeatedQueries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"status":"OK","routes":[{"legs":[{"steps":[]}]}]}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewDirectionsClient(testConfig(KindDirections, srv.URL), obs)

	for i := 0; i < 3; i++ {
		_, err := client.Directions(context.Background(), transitQuery())
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), calls.Load())
	events := obs.all()
	require.Len(t, events, 3)
	assert.False(t, events[0].Cached)
	assert.True(t, events[2].Cached)
	assert.Equal(t, KindDirections, events[2].Provider)
}

func TestDirections_CoalescesConcurrentQueries(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(`{"status":"OK","routes":[{"legs":[{"steps":[]}]}]}`))
	}))
	defer srv.Close()

	client := NewDirectionsClient(testConfig(KindDirections, srv.URL), NoopObserver{})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Directions(context.Background(), transitQuery())
			assert.NoError(t, err)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestDirections_CallerCancelReturnsPromptly(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewDirectionsClient(testConfig(KindDirections, srv.URL), NoopObserver{})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.Directions(ctx, transitQuery())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRail_Courses(t *testing.T) {
	fixture, err := os.ReadFile("../route/testdata/rail_course.json")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/json/search/course/extreme", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "東京:35.689600,139.700600,wgs84", q.Get("viaList"))
		assert.Equal(t, "20260501", q.Get("date"))
		assert.Equal(t, "0930", q.Get("time"))
		w.Write(fixture)
	}))
	defer srv.Close()

	client := NewRailClient(testConfig(KindRail, srv.URL), NoopObserver{})
	courses, err := client.Courses(context.Background(), RailQuery{
		From:     Place{Name: "東京"},
		To:       Place{Point: shinjuku},
		DepartAt: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Len(t, courses[0].Route.Line, 3)
}

func TestRail_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ResultSet":{"Error":{"code":"W400","Message":"no course"}}}`))
	}))
	defer srv.Close()

	client := NewRailClient(testConfig(KindRail, srv.URL), NoopObserver{})
	_, err := client.Courses(context.Background(), RailQuery{From: Place{Name: "a"}, To: Place{Name: "b"}})

	assert.ErrorIs(t, err, ErrNoRoute)
	assert.ErrorContains(t, err, "W400")
}

func TestConfig_Timeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 6*time.Second, cfg.Timeout(KindRail))

	cfg.Providers[KindRail] = KindConfig{}
	assert.Equal(t, 8*time.Second, cfg.Timeout(KindRail))
	assert.False(t, cfg.Configured(KindRail))
}

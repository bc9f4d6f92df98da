package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/alexanderramin/tripline/internal/cache"
)

// caller is the HTTP plumbing shared by the provider clients: response
// cache, request coalescing, rate limiting, timeout and retries.
type caller struct {
	kind     Kind
	cfg      Config
	http     *http.Client
	limiter  *rate.Limiter
	flights  singleflight.Group
	cache    *cache.Cache[[]byte]
	observer Observer
}

func newCaller(kind Kind, cfg Config, observer Observer) *caller {
	if observer == nil {
		observer = NoopObserver{}
	}
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	return &caller{
		kind: kind,
		cfg:  cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		limiter:  rate.NewLimiter(limit, max(cfg.Burst, 1)),
		cache:    cache.New[[]byte](cfg.CacheTTL, cfg.CacheSize),
		observer: observer,
	}
}

func (c *caller) endpoint() KindConfig {
	return c.cfg.Providers[c.kind]
}

// get fetches url, serving repeated keys from the cache and coalescing
// identical in-flight requests. The caller stops waiting as soon as ctx
// is done; the shared request itself is bounded by the provider timeout.
func (c *caller) get(ctx context.Context, op, url, key string) ([]byte, error) {
	start := time.Now()

	cacheable := c.cfg.CacheTTL > 0
	if cacheable {
		if body, ok := c.cache.Get(key); ok {
			c.observe(op, start, true, nil)
			return body, nil
		}
	}

	ch := c.flights.DoChan(key, func() (any, error) {
		body, err := c.fetch(context.WithoutCancel(ctx), url)
		if err == nil && cacheable {
			c.cache.Set(key, body)
		}
		return body, err
	})

	select {
	case res := <-ch:
		c.observe(op, start, false, res.Err)
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		err := ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrTimeout
		}
		c.observe(op, start, false, err)
		return nil, err
	}
}

func (c *caller) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout(c.kind))
	defer cancel()

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, ErrTimeout
		}
		body, err := c.doRequest(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		// Don't retry on timeout or a request the provider refused.
		if ctx.Err() != nil || errors.Is(err, ErrRejected) {
			break
		}
	}

	switch {
	case ctx.Err() != nil:
		return nil, ErrTimeout
	case isConnectionError(lastErr):
		return nil, ErrUnavailable
	case errors.Is(lastErr, ErrRejected):
		return nil, lastErr
	default:
		return nil, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}
}

func (c *caller) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s returned status %d", ErrRejected, c.kind, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%s returned status %d: %s", c.kind, resp.StatusCode, string(body))
	}
}

func (c *caller) observe(op string, start time.Time, cached bool, err error) {
	c.observer.OnCallComplete(CallEvent{
		Provider:  c.kind,
		Operation: op,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		Cached:    cached,
		ErrorCode: errorCode(err),
	})
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

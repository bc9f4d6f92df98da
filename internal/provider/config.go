// Package provider holds the HTTP clients for the external routing
// services. Clients return decoded provider payloads; turning them into
// routes is the job of package route.
package provider

import "time"

// Kind identifies a routing provider.
type Kind string

const (
	KindDirections Kind = "directions"
	KindRail       Kind = "rail"
)

// KindConfig holds per-provider parameters.
type KindConfig struct {
	Endpoint  string
	APIKey    string
	TimeoutMs int // overrides global if > 0
}

// Config holds all configuration for the provider clients.
type Config struct {
	TimeoutMs  int
	MaxRetries int
	RatePerSec float64
	Burst      int
	CacheTTL   time.Duration
	CacheSize  int
	LogCalls   bool
	Language   string
	Providers  map[Kind]KindConfig
}

// DefaultConfig returns a Config with sensible defaults. No API keys are
// set, so both providers start out unconfigured.
func DefaultConfig() Config {
	return Config{
		TimeoutMs:  8000,
		MaxRetries: 1,
		RatePerSec: 5,
		Burst:      5,
		CacheTTL:   10 * time.Minute,
		CacheSize:  256,
		Language:   "ko",
		Providers: map[Kind]KindConfig{
			KindDirections: {Endpoint: "https://maps.googleapis.com/maps/api", TimeoutMs: 8000},
			KindRail:       {Endpoint: "https://api.ekispert.jp", TimeoutMs: 6000},
		},
	}
}

// Timeout returns the effective timeout for a provider. Uses the
// provider-specific timeout if set, otherwise the global timeout.
func (c Config) Timeout(kind Kind) time.Duration {
	if kc, ok := c.Providers[kind]; ok && kc.TimeoutMs > 0 {
		return time.Duration(kc.TimeoutMs) * time.Millisecond
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Configured reports whether kind has both an endpoint and a key.
func (c Config) Configured(kind Kind) bool {
	kc, ok := c.Providers[kind]
	return ok && kc.Endpoint != "" && kc.APIKey != ""
}

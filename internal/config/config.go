// Package config loads tripline settings from defaults, an optional
// tripline.yaml and TRIPLINE_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/alexanderramin/tripline/internal/provider"
)

// FileName is the config file looked up in the config directory.
const FileName = "tripline"

// Config is the resolved application configuration.
type Config struct {
	DBPath   string
	LogLevel string

	// HeuristicCountries lists ISO country codes where the rail provider
	// and the straight-line estimate are tried before directions.
	HeuristicCountries []string

	// MaxDaysAhead is how far in the future transit schedules are
	// assumed to be published.
	MaxDaysAhead int

	SearchTimeout   time.Duration
	TranslationFile string
	Provider        provider.Config
}

// HeuristicAllowed reports whether country is in the allow-list.
func (c Config) HeuristicAllowed(country string) bool {
	for _, cc := range c.HeuristicCountries {
		if strings.EqualFold(cc, country) && country != "" {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("db", filepath.Join(home, ".tripline", "tripline.db"))
	v.SetDefault("logLevel", "info")

	v.SetDefault("route.heuristicCountries", []string{"JP"})
	v.SetDefault("route.maxDaysAhead", 60)
	v.SetDefault("route.searchTimeout", "20s")
	v.SetDefault("route.translations", "")

	def := provider.DefaultConfig()
	v.SetDefault("provider.timeoutMs", def.TimeoutMs)
	v.SetDefault("provider.maxRetries", def.MaxRetries)
	v.SetDefault("provider.ratePerSec", def.RatePerSec)
	v.SetDefault("provider.burst", def.Burst)
	v.SetDefault("provider.cacheTTL", def.CacheTTL.String())
	v.SetDefault("provider.cacheSize", def.CacheSize)
	v.SetDefault("provider.logCalls", false)
	v.SetDefault("provider.language", def.Language)

	for kind, kc := range def.Providers {
		v.SetDefault("provider."+string(kind)+".endpoint", kc.Endpoint)
		v.SetDefault("provider."+string(kind)+".apiKey", "")
		v.SetDefault("provider."+string(kind)+".timeoutMs", kc.TimeoutMs)
	}
}

// Load reads configuration. configDir is searched for tripline.yaml; a
// missing file is not an error, a malformed one is.
func Load(configDir string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	setDefaults(v, home)

	v.SetEnvPrefix("TRIPLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath(filepath.Join(home, ".tripline"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		DBPath:             v.GetString("db"),
		LogLevel:           v.GetString("logLevel"),
		HeuristicCountries: normalizeCountries(v.GetStringSlice("route.heuristicCountries")),
		MaxDaysAhead:       v.GetInt("route.maxDaysAhead"),
		SearchTimeout:      v.GetDuration("route.searchTimeout"),
		TranslationFile:    v.GetString("route.translations"),
	}
	if cfg.SearchTimeout <= 0 {
		return Config{}, fmt.Errorf("route.searchTimeout must be positive, got %q", v.GetString("route.searchTimeout"))
	}

	p := provider.DefaultConfig()
	p.TimeoutMs = v.GetInt("provider.timeoutMs")
	p.MaxRetries = v.GetInt("provider.maxRetries")
	p.RatePerSec = v.GetFloat64("provider.ratePerSec")
	p.Burst = v.GetInt("provider.burst")
	p.CacheTTL = v.GetDuration("provider.cacheTTL")
	p.CacheSize = v.GetInt("provider.cacheSize")
	p.LogCalls = v.GetBool("provider.logCalls")
	p.Language = v.GetString("provider.language")
	for kind := range p.Providers {
		prefix := "provider." + string(kind)
		p.Providers[kind] = provider.KindConfig{
			Endpoint:  v.GetString(prefix + ".endpoint"),
			APIKey:    v.GetString(prefix + ".apiKey"),
			TimeoutMs: v.GetInt(prefix + ".timeoutMs"),
		}
	}
	if p.MaxRetries < 0 {
		return Config{}, fmt.Errorf("provider.maxRetries must not be negative, got %d", p.MaxRetries)
	}
	cfg.Provider = p

	return cfg, nil
}

// normalizeCountries upper-cases codes and splits comma lists, which is
// how a slice arrives from an environment variable.
func normalizeCountries(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if cc := strings.ToUpper(strings.TrimSpace(part)); cc != "" {
				out = append(out, cc)
			}
		}
	}
	return out
}

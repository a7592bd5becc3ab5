// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/restockly/restock-dashboard/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Session  SessionConfig  `yaml:"session"`
	Push     PushConfig     `yaml:"push"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// UpstreamConfig defines the restock-prediction backend settings.
type UpstreamConfig struct {
	BaseURL   string          `yaml:"base_url"`
	PageLimit int             `yaml:"page_limit"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines upstream API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// SessionConfig defines the store identity and credentials.
type SessionConfig struct {
	StoreURL string `yaml:"store_url"`
	Token    string `yaml:"token"`
}

// PushConfig defines push-channel settings.
type PushConfig struct {
	Enabled    bool   `yaml:"enabled"`
	URL        string `yaml:"url"`
	ShopDomain string `yaml:"shop_domain"` // defaults to session.store_url

	// Both refresh hooks default to off: busy stores emit order events
	// far too often to refetch on each one.
	RefreshOnOrderCreated   bool `yaml:"refresh_on_order_created"`
	RefreshOnProductUpdated bool `yaml:"refresh_on_product_updated"`

	MaxReconnects  int           `yaml:"max_reconnects"`
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`
}

// RefreshConfig defines the periodic cache refresh schedule.
type RefreshConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

// DefaultsConfig defines the fetch parameters applied when a request
// leaves them unset.
type DefaultsConfig struct {
	ShortRangeDays int    `yaml:"short_range_days"`
	LongRangeDays  int    `yaml:"long_range_days"`
	FutureDays     string `yaml:"future_days"`
	Status         string `yaml:"status"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyUpstreamDefaults(&cfg.Upstream)
	applyPushDefaults(&cfg.Push, cfg.Session.StoreURL)
	applyRefreshDefaults(&cfg.Refresh)
	applyFetchDefaults(&cfg.Defaults)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 60 * time.Second
	}
}

func applyUpstreamDefaults(u *UpstreamConfig) {
	if u.PageLimit == 0 {
		u.PageLimit = 250
	}
	applyRateLimitDefaults(&u.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyPushDefaults(p *PushConfig, storeURL string) {
	if p.ShopDomain == "" {
		p.ShopDomain = storeURL
	}
	if p.MaxReconnects == 0 {
		p.MaxReconnects = 5
	}
	if p.ReconnectDelay == 0 {
		p.ReconnectDelay = time.Second
	}
}

func applyRefreshDefaults(r *RefreshConfig) {
	if r.Interval == 0 {
		r.Interval = 15 * time.Minute
	}
}

func applyFetchDefaults(d *DefaultsConfig) {
	if d.ShortRangeDays == 0 {
		d.ShortRangeDays = 7
	}
	if d.LongRangeDays == 0 {
		d.LongRangeDays = 30
	}
	if d.FutureDays == "" {
		d.FutureDays = "15"
	}
	if d.Status == "" {
		d.Status = string(domain.StatusActive)
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Upstream.BaseURL == "" {
		errs = append(errs, fmt.Errorf("upstream.base_url is required"))
	}
	if cfg.Session.StoreURL == "" {
		errs = append(errs, fmt.Errorf("session.store_url is required"))
	}
	if cfg.Push.Enabled && cfg.Push.URL == "" {
		errs = append(errs, fmt.Errorf("push.url is required when push is enabled"))
	}
	if cfg.Defaults.ShortRangeDays > cfg.Defaults.LongRangeDays {
		errs = append(errs, fmt.Errorf(
			"defaults.short_range_days (%d) must not exceed defaults.long_range_days (%d)",
			cfg.Defaults.ShortRangeDays, cfg.Defaults.LongRangeDays,
		))
	}

	switch cfg.Defaults.Status {
	case string(domain.StatusActive), string(domain.StatusDraft):
	default:
		errs = append(errs, fmt.Errorf(
			"defaults.status must be one of: ACTIVE, DRAFT (got %q)",
			cfg.Defaults.Status,
		))
	}

	return errors.Join(errs...)
}

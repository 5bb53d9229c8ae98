// Package config resolves service configuration from built-in defaults,
// environment variables, and CLI flags.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultBrands is the brand list used when the caller supplies none.
var DefaultBrands = []string{"stripchat", "chaturbate", "awempire", "streamate"}

// Config holds the service configuration. Resolved once at startup and
// treated as immutable afterwards.
type Config struct {
	ListenAddr  string
	MetricsAddr string // empty disables the metrics listener
	CatalogPath string

	PerformersURL string // paginated listing upstream
	DirectoryURL  string // single-entity lookup upstream
	Token         string
	APIKey        string
	UserAgent     string

	UpstreamPageSize int
	MaxScanPages     int
	FetchTimeout     time.Duration
	LookupTimeout    time.Duration

	Verbose bool
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:       ":8080",
		MetricsAddr:      "",
		CatalogPath:      "catalog.yaml",
		PerformersURL:    "https://performersext-api.pcvdaa.com/performers-ext",
		DirectoryURL:     "https://performers-api.pcvdaa.com/v2/performers",
		UserAgent:        "nitevelour/1.0",
		UpstreamPageSize: 100,
		MaxScanPages:     12,
		FetchTimeout:     8 * time.Second,
		LookupTimeout:    9 * time.Second,
	}
}

// FromEnv builds a config from defaults overlaid with environment variables.
// Credentials are optional here: their absence is a per-request error, not a
// startup failure, so the service can boot and report it over HTTP.
func FromEnv() *Config {
	cfg := DefaultConfig()
	if v, ok := EnvString("CRAK_PERFORMERS_URL"); ok {
		cfg.PerformersURL = v
	}
	if v, ok := EnvString("CRAK_DIRECTORY_URL"); ok {
		cfg.DirectoryURL = v
	}
	if v, ok := EnvString("CRAK_TOKEN"); ok {
		cfg.Token = v
	}
	if v, ok := EnvString("CRAK_API_KEY"); ok {
		cfg.APIKey = v
	} else if v, ok := EnvString("CRAK_KEY"); ok {
		// Older deployments exported the key under CRAK_KEY.
		cfg.APIKey = v
	}
	if v, ok := EnvString("CRAK_UA"); ok {
		cfg.UserAgent = v
	}
	if v, ok := EnvString("LIVEAPI_ADDR"); ok {
		cfg.ListenAddr = v
	}
	if v, ok := EnvString("LIVEAPI_METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := EnvString("LIVEAPI_CATALOG"); ok {
		cfg.CatalogPath = v
	}
	if v, ok, err := EnvInt("LIVEAPI_MAX_SCAN_PAGES"); err == nil && ok {
		cfg.MaxScanPages = v
	}
	if v, ok, err := EnvInt("LIVEAPI_UPSTREAM_PAGE_SIZE"); err == nil && ok {
		cfg.UpstreamPageSize = v
	}
	return cfg
}

// HasCredentials reports whether both upstream credentials are present.
func (c *Config) HasCredentials() bool {
	return c.Token != "" && c.APIKey != ""
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if c.CatalogPath == "" {
		return fmt.Errorf("catalog path cannot be empty")
	}
	if err := validateURL("performers URL", c.PerformersURL); err != nil {
		return err
	}
	if err := validateURL("directory URL", c.DirectoryURL); err != nil {
		return err
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.UpstreamPageSize <= 0 {
		return fmt.Errorf("upstream page size must be positive")
	}
	if c.MaxScanPages <= 0 {
		return fmt.Errorf("max scan pages must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("lookup timeout must be positive")
	}
	return nil
}

func validateURL(label, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s cannot be empty", label)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", label, err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host", label)
	}
	return nil
}

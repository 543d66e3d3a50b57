package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the geomap CLI.
type Config struct {
	ServerURL      string
	CachePath      string
	RequestTimeout time.Duration
}

const (
	EnvServerURL = "GEOMAP_SERVER_URL"
	EnvCachePath = "GEOMAP_CACHE"
)

// LoadDefaults populates c with defaults for a server on localhost.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.CachePath = "geomap.db"
	c.RequestTimeout = 10 * time.Second
}

// Validate checks that the server URL is absolute and the timeout positive.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.CachePath == "" {
		return fmt.Errorf("cache path is required")
	}
	c.ServerURL = strings.TrimRight(c.ServerURL, "/")
	return nil
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and flags, and validates it.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if v, ok := lookup(EnvServerURL); ok && strings.TrimSpace(v) != "" {
		cfg.ServerURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvCachePath); ok && strings.TrimSpace(v) != "" {
		cfg.CachePath = strings.TrimSpace(v)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

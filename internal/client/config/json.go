package config

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/geomap/internal/flagx"
	"github.com/dmitrijs2005/geomap/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig is the JSON file form of Config.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	CachePath      string         `json:"cache_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.CachePath != "" {
		cfg.CachePath = jc.CachePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

package config

import (
	"strings"
)

// Environment variables recognised by parseEnv.
const (
	EnvAddr           = "GEOMAP_ADDR"
	EnvDatabaseDSN    = "GEOMAP_DATABASE_DSN"
	EnvStorage        = "GEOMAP_STORAGE"
	EnvSecretKey      = "GEOMAP_SECRET_KEY"
	EnvEnvironment    = "GEOMAP_ENV"
	EnvAllowedOrigins = "GEOMAP_ALLOWED_ORIGINS"
)

// parseEnv overlays values from GEOMAP_* variables. Empty variables are ignored.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	setString(&config.EndpointAddr, get(EnvAddr))
	setString(&config.DatabaseDSN, get(EnvDatabaseDSN))
	setString(&config.Storage, get(EnvStorage))
	setString(&config.SecretKey, get(EnvSecretKey))
	setString(&config.Environment, get(EnvEnvironment))

	if v := get(EnvAllowedOrigins); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.AllowedOrigins = origins
	}
	return nil
}

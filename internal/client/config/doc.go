// Package config loads runtime configuration for the geomap CLI client.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. GEOMAP_SERVER_URL and GEOMAP_CACHE environment variables.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the geomap API server
//	-f string   path of the local SQLite cache
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "cache_path": "geomap.db",
//	  "request_timeout": "10s"
//	}
package config

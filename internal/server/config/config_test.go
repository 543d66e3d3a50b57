package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":3000", c.EndpointAddr)
	assert.Equal(t, StoragePostgres, c.Storage)
	assert.Equal(t, EnvProduction, c.Environment)
	assert.Equal(t, 7*24*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	t.Run("development falls back to the public key", func(t *testing.T) {
		c := base()
		c.Environment = EnvDevelopment
		require.NoError(t, c.Validate())
		assert.Equal(t, DevelopmentSecretKey, c.SecretKey)
		assert.True(t, c.InsecureSecretKey)
	})

	t.Run("production fails closed without secret", func(t *testing.T) {
		c := base()
		err := c.Validate()
		assert.True(t, errors.Is(err, ErrMissingSecretKey))
	})

	t.Run("production with secret", func(t *testing.T) {
		c := base()
		c.Environment = EnvProduction
		c.SecretKey = "s3cr3t"
		require.NoError(t, c.Validate())
		assert.False(t, c.InsecureSecretKey)
	})

	bad := map[string]func(c *Config){
		"unknown environment": func(c *Config) { c.Environment = "staging" },
		"unknown storage":     func(c *Config) { c.Storage = "mongo" },
		"custom validity":     func(c *Config) { c.TokenValidityDuration = 24 * time.Hour },
		"bcrypt cost":         func(c *Config) { c.BcryptCost = 2 },
		"empty dsn":           func(c *Config) { c.DatabaseDSN = "" },
	}
	for name, mutate := range bad {
		t.Run(name, func(t *testing.T) {
			c := base()
			c.SecretKey = "s3cr3t"
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geomap.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint_addr": ":7000",
		"database_dsn": "postgres://json",
		"secret_key": "from-json",
		"token_validity_duration": "48h",
		"environment": "development",
		"request_timeout": "5s"
	}`), 0o600))

	env := envMap(map[string]string{
		EnvSecretKey:      "from-env",
		EnvStorage:        "memory",
		EnvAllowedOrigins: "http://localhost:5173, https://map.example",
	})

	cfg, err := load([]string{"-c", path, "-a", ":9000", "-e", "production"}, env)
	require.NoError(t, err)

	want := &Config{
		EndpointAddr:          ":9000",
		DatabaseDSN:           "postgres://json",
		Storage:               StorageMemory,
		SecretKey:             "from-env",
		Environment:           EnvProduction,
		TokenValidityDuration: 7 * 24 * time.Hour,
		BcryptCost:            10,
		RequestTimeout:        5 * time.Second,
		ShutdownTimeout:       10 * time.Second,
		AllowedOrigins:        []string{"http://localhost:5173", "https://map.example"},
	}
	assert.Empty(t, cmp.Diff(want, cfg, cmpopts.EquateEmpty()))
}

func TestLoad_TokenValidityIsFixed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geomap.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token_validity_duration": "1h"}`), 0o600))

	env := envMap(map[string]string{
		EnvSecretKey:            "s3cr3t",
		"GEOMAP_TOKEN_VALIDITY": "2h",
	})
	cfg, err := load([]string{"-c", path, "-t", "24"}, env)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenValidity, cfg.TokenValidityDuration)
}

func TestLoad_DefaultsToProduction(t *testing.T) {
	_, err := load(nil, noEnv)
	assert.ErrorIs(t, err, ErrMissingSecretKey)

	cfg, err := load(nil, envMap(map[string]string{EnvEnvironment: "development"}))
	require.NoError(t, err)
	assert.True(t, cfg.InsecureSecretKey)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := load([]string{"-c", filepath.Join(t.TempDir(), "absent.json")}, noEnv)
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"endpoint_addr":`), 0o600))
		_, err := load([]string{"-c", path}, noEnv)
		assert.Error(t, err)
	})

	t.Run("flag without value", func(t *testing.T) {
		_, err := load([]string{"-s", "x", "-a"}, noEnv)
		assert.Error(t, err)
	})

	t.Run("production without secret", func(t *testing.T) {
		_, err := load([]string{"-e", "production"}, noEnv)
		assert.ErrorIs(t, err, ErrMissingSecretKey)
	})
}

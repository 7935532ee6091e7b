// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	// Keep Load away from any real config file on the host.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	return flags
}

func TestLoadDefaults(t *testing.T) {
	flags := newFlags(t)
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, DefaultMetricsAddr, cfg.MetricsAddr)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, DefaultTokenTTL, cfg.TokenTTL)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stockroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"http-addr: \":9999\"\nlog-format: text\ntoken-ttl: 30m\n",
	), 0o600))

	flags := newFlags(t)
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	// Keys the file does not set keep their defaults.
	assert.Equal(t, DefaultMetricsAddr, cfg.MetricsAddr)
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stockroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http-addr: \":9999\"\n"), 0o600))

	flags := newFlags(t)
	require.NoError(t, flags.Parse([]string{"--http-addr", ":7777"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.HTTPAddr)
}

func TestLoadMissingFile(t *testing.T) {
	flags := newFlags(t)
	require.NoError(t, flags.Parse(nil))

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), flags)
	assert.Error(t, err)
}

func TestLoadSecretsFromEnv(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "postgres://app@db/stockroom")
	t.Setenv(EnvTokenSecret, "hunter2")

	flags := newFlags(t)
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "postgres://app@db/stockroom", cfg.DatabaseURL)
	assert.Equal(t, "hunter2", cfg.TokenSecret)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPAddr:       ":8000",
			LogFormat:      "json",
			TokenTTL:       time.Hour,
			RequestTimeout: time.Minute,
			DatabaseURL:    "postgres://app@db/stockroom",
			TokenSecret:    "secret",
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "missing http addr",
			mutate:  func(c *Config) { c.HTTPAddr = "" },
			wantMsg: "http-addr",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.LogFormat = "xml" },
			wantMsg: "log-format",
		},
		{
			name:    "missing database url",
			mutate:  func(c *Config) { c.DatabaseURL = "" },
			wantMsg: EnvDatabaseURL,
		},
		{
			name:    "missing token secret",
			mutate:  func(c *Config) { c.TokenSecret = "" },
			wantMsg: EnvTokenSecret,
		},
		{
			name:    "non-positive token ttl",
			mutate:  func(c *Config) { c.TokenTTL = 0 },
			wantMsg: "token-ttl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	t.Run("frontend dir without index.html fails", func(t *testing.T) {
		cfg := valid()
		cfg.FrontendDir = t.TempDir()
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "index.html")
	})

	t.Run("frontend dir with index.html passes", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o600))
		cfg := valid()
		cfg.FrontendDir = dir
		require.NoError(t, cfg.Validate())
	})
}

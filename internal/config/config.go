// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

// Package config loads and validates process configuration.
//
// Settings layer in increasing precedence: built-in defaults, an optional
// YAML file, command-line flags. Secrets (database URL, token signing
// secret) come from the environment only and never from flags or files.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/yifei-yao/db-proj/internal/xdg"
)

// Environment variable names for secrets.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvTokenSecret = "STOCKROOM_TOKEN_SECRET"
)

// Defaults.
const (
	DefaultHTTPAddr       = ":8000"
	DefaultMetricsAddr    = "127.0.0.1:9100"
	DefaultLogFormat      = "json"
	DefaultTokenTTL       = time.Hour
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds all settings for the stockroom server.
type Config struct {
	HTTPAddr       string
	MetricsAddr    string
	FrontendDir    string
	LogFormat      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration

	DatabaseURL string
	TokenSecret string
}

// RegisterFlags declares the server flags on the given FlagSet. The same
// set is later handed to Load so flag values override file values.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("http-addr", DefaultHTTPAddr, "HTTP listen address")
	flags.String("metrics-addr", DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	flags.String("frontend-dir", "", "path to the prebuilt frontend bundle")
	flags.String("log-format", DefaultLogFormat, "log format (json or text)")
	flags.Duration("token-ttl", DefaultTokenTTL, "bearer token lifetime")
	flags.Duration("request-timeout", DefaultRequestTimeout, "per-request handler timeout")
}

// Load assembles the configuration from the optional YAML file at path,
// the flag set, and the environment. When path is empty the XDG default
// location is used if a file exists there.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = xdg.DefaultConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_INVALID").
				With("path", path).
				Wrap(err)
		}
	}

	// Flags override file values; unset flags contribute their defaults
	// only where the file left a key empty.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, oops.Code("CONFIG_FLAGS_INVALID").Wrap(err)
	}

	cfg := &Config{
		HTTPAddr:       k.String("http-addr"),
		MetricsAddr:    k.String("metrics-addr"),
		FrontendDir:    k.String("frontend-dir"),
		LogFormat:      k.String("log-format"),
		TokenTTL:       k.Duration("token-ttl"),
		RequestTimeout: k.Duration("request-timeout"),
		DatabaseURL:    os.Getenv(EnvDatabaseURL),
		TokenSecret:    os.Getenv(EnvTokenSecret),
	}

	return cfg, nil
}

// Validate checks that the configuration can start the server. Failures
// here are fatal: the process must not come up half-configured.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("http-addr is required")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log-format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if c.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("%s environment variable is required", EnvDatabaseURL)
	}
	if c.TokenSecret == "" {
		return oops.Code("CONFIG_INVALID").Errorf("%s environment variable is required", EnvTokenSecret)
	}
	if c.TokenTTL <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("token-ttl must be positive")
	}
	if c.FrontendDir != "" {
		index := filepath.Join(c.FrontendDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			return oops.Code("CONFIG_INVALID").
				With("path", index).
				Errorf("frontend index.html not found at %s", index)
		}
	}
	return nil
}

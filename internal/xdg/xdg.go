// Package xdg provides XDG Base Directory paths for stockroom.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "stockroom"

// ConfigDir returns the XDG config directory for stockroom.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// DefaultConfigFile returns the path of the default config file, or an
// empty string if no file exists there. Used when --config is not given.
func DefaultConfigFile() string {
	path := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

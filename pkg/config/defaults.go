package config

import (
	"os"
	"path/filepath"
)

// Defaults applied when the config file omits a field.
const (
	DefaultPeriod = "day"
	DefaultTopN   = 10
)

// DefaultConfig returns a configuration with built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultPeriod: DefaultPeriod,
		TopN:          DefaultTopN,
	}
}

// DefaultPaths returns the config file locations probed when no --config
// flag is given, in priority order.
func DefaultPaths() []string {
	paths := []string{"ktalk.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "ktalk", "config.yaml"))
	}
	return paths
}

package app

import (
	"fmt"
	"slices"
)

// Config holds all the necessary configuration for an App instance.
type Config struct {
	// ManifestPaths are extra files or directories of HCL operation
	// manifests, loaded after the manifests embedded in the modules.
	ManifestPaths []string

	LogFormat string // "text" or "json"
	LogLevel  string // "debug", "info", "warn" or "error"
}

var (
	logFormats = []string{"", "text", "json"}
	logLevels  = []string{"", "debug", "info", "warn", "error"}
)

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	cfg.ManifestPaths = slices.Clone(cfg.ManifestPaths)
	return &cfg, nil
}

// Package pandalog provides public APIs for the Pandalog CLI.
//
// This package exposes the Graylog client and configuration loading for
// programs that share streams without going through the command line,
// while keeping implementation details in internal packages.
package pandalog

import (
	"context"

	"github.com/pandalog/pandalog/internal/config"
)

// Config is the configuration store for Pandalog.
// It provides access to all configuration values with layer-based resolution.
type Config = config.Store

// LoadConfig loads the configuration from all available sources.
// Sources are resolved in the following priority order:
//   - Command line arguments (highest)
//   - Environment variables (GRAYLOG_*)
//   - ~/.config/pandalog/config.yaml (user config)
//   - Defaults (lowest)
func LoadConfig(ctx context.Context) (*Config, error) {
	return config.Load(ctx)
}

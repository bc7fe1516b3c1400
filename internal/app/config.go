package app

import (
	"io"

	"mediarelay/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug forces debug logging regardless of logging.level.
	Debug bool

	// Quiet discards all log output.
	Quiet bool

	// ConfigPath is the directory holding config.yaml.
	ConfigPath string

	// LogOutput receives log output (default: stderr, keeping stdout for
	// command results).
	LogOutput io.Writer

	// MediaRelayConfig is loaded from ConfigPath unless already set.
	MediaRelayConfig *config.MediaRelayConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug, quiet bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		Quiet:      quiet,
		ConfigPath: configPath,
	}
}

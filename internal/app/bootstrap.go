package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mediarelay/internal/config"
	"mediarelay/internal/relay"
	"mediarelay/pkg/logging"
)

// ErrNoDevice is returned when the configuration has no device to control.
var ErrNoDevice = errors.New("no device configured")

// Application wires configuration, the shared session, the metrics recorder
// and the relay Facade for one device.
//
// The Application follows a two-phase pattern:
//  1. Bootstrap: NewApplication loads configuration, initializes logging and
//     assembles the Facade from the configured services
//  2. Execution: Connect, use the Facade, Close
//
// Example usage:
//
//	application, err := app.NewApplication(app.NewConfig(false, false, dir))
//	if err != nil {
//	    return err
//	}
//	if err := application.Connect(ctx); err != nil {
//	    return err
//	}
//	defer application.Close()
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance with the provided configuration.
// This function performs the complete bootstrap sequence:
//
//  1. Configures logging for the CLI
//  2. Loads config.yaml from cfg.ConfigPath unless cfg.MediaRelayConfig is set
//  3. Re-applies logging settings from the configuration
//  4. Initializes the session, metrics recorder, Facade and backends
func NewApplication(cfg *Config) (*Application, error) {
	var logOutput io.Writer = os.Stderr
	if cfg.LogOutput != nil {
		logOutput = cfg.LogOutput
	}
	if cfg.Quiet {
		logOutput = io.Discard
	}

	appLogLevel := logging.LevelWarn
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	logging.InitForCLI(appLogLevel, logOutput)

	if cfg.MediaRelayConfig == nil {
		loaded, err := config.LoadConfig(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration from %s", cfg.ConfigPath)
			return nil, fmt.Errorf("failed to load configuration from %s: %w", cfg.ConfigPath, err)
		}
		cfg.MediaRelayConfig = &loaded
	}
	relayCfg := cfg.MediaRelayConfig

	if err := configureLogging(cfg, relayCfg.Logging, logOutput); err != nil {
		return nil, err
	}

	if !relayCfg.HasDevice() {
		return nil, fmt.Errorf("%w: add a device section to %s", ErrNoDevice, filepath.Join(cfg.ConfigPath, "config.yaml"))
	}

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

func configureLogging(cfg *Config, settings config.LoggingConfig, output io.Writer) error {
	level, err := logging.ParseLevel(settings.Level)
	if err != nil {
		return err
	}
	if cfg.Debug {
		level = logging.LevelDebug
	}
	format, err := logging.ParseFormat(settings.Format)
	if err != nil {
		return err
	}
	logging.InitWithFormat(level, format, output)
	return nil
}

// Facade returns the device Facade.
func (a *Application) Facade() *relay.Facade {
	return a.services.Facade
}

// Services returns the initialized services.
func (a *Application) Services() *Services {
	return a.services
}

// Settings returns the loaded configuration.
func (a *Application) Settings() config.MediaRelayConfig {
	return *a.config.MediaRelayConfig
}

// Connect connects every protocol, bounded by connectTimeout.
func (a *Application) Connect(ctx context.Context) error {
	if timeout := a.config.MediaRelayConfig.ConnectTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return a.services.Facade.Connect(ctx)
}

// Close closes the Facade. Releasing the shared session is bounded by
// closeTimeout.
func (a *Application) Close() error {
	ctx := context.Background()
	if timeout := a.config.MediaRelayConfig.CloseTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return a.services.Facade.Close(ctx)
}

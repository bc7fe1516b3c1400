package app

import (
	"context"
	"errors"

	"mediarelay/internal/api"
	"mediarelay/internal/bridge"
	"mediarelay/internal/metrics"
	"mediarelay/pkg/logging"
)

// RunBridge forwards device events to publisher until ctx is done.
//
// Behavior:
//   - Serves metrics when metrics.enabled is set
//   - Attaches the event bridge as power, push and device listener
//   - Starts push updates when a protocol provides them
//   - Blocks until ctx is cancelled, then stops push updates
//
// The Facade must be connected; closing it stays with the caller.
func (a *Application) RunBridge(ctx context.Context, publisher bridge.Publisher) error {
	settings := a.Settings()

	if settings.Metrics.Enabled {
		srv, err := metrics.Start(settings.Metrics.Listen, a.services.Recorder)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.CloseTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logging.Warn("Bridge", "Metrics server shutdown: %v", err)
			}
		}()
	}

	facade := a.services.Facade
	b := bridge.New(publisher, settings.Device.Name, settings.Bridge)
	b.Attach(facade)

	updater := facade.PushUpdater()
	switch err := updater.Start(0); {
	case err == nil:
		defer updater.Stop()
	case api.IsUnsupported(err):
		logging.Info("Bridge", "No protocol provides push updates, publishing power and connection events only")
	default:
		return err
	}

	logging.Info("Bridge", "Publishing events for %s to %s", settings.Device.Name, b.Topic("#"))
	<-ctx.Done()
	logging.Info("Bridge", "Stopping event bridge")

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

package simulator

import (
	"context"
	"slices"

	"mediarelay/internal/api"
)

// AppList returns the configured apps.
func (b *Backend) AppList(_ context.Context) ([]api.App, error) {
	if err := b.serve(api.CapabilityApps, api.OpAppList); err != nil {
		return nil, err
	}
	return slices.Clone(b.apps), nil
}

// LaunchApp makes bundleID the current app. Unknown bundle IDs fail like a
// device refusing the request.
func (b *Backend) LaunchApp(_ context.Context, bundleID string) error {
	if err := b.serve(api.CapabilityApps, api.OpLaunchApp); err != nil {
		return err
	}
	known := slices.ContainsFunc(b.apps, func(app api.App) bool { return app.Identifier == bundleID })
	if !known {
		return b.operationError(api.OpLaunchApp, "app %q is not installed", bundleID)
	}

	b.mu.Lock()
	b.appID = bundleID
	b.mu.Unlock()
	b.update(func(p *api.Playing) { p.DeviceState = api.DeviceStateIdle })
	return nil
}

var _ api.Apps = (*Backend)(nil)

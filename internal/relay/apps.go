package relay

import (
	"context"
	"errors"

	"mediarelay/internal/api"
)

// AppsRelay implements api.Apps by relaying to the protocol that serves each
// operation.
type AppsRelay struct {
	registry *Registry[api.Apps]
}

// NewAppsRelay creates an empty relay.
func NewAppsRelay(priorities api.PriorityList) *AppsRelay {
	return &AppsRelay{
		registry: NewRegistry[api.Apps](api.CapabilityApps, api.AppsOperations, priorities),
	}
}

// Registry exposes the underlying registry.
func (a *AppsRelay) Registry() *Registry[api.Apps] {
	return a.registry
}

// AppList fetches the apps that can be launched, in the order the device
// reports them.
func (a *AppsRelay) AppList(ctx context.Context) ([]api.App, error) {
	return RelayValue(a.registry, api.OpAppList, func(apps api.Apps) ([]api.App, error) {
		return apps.AppList(ctx)
	})
}

// LaunchApp launches an app by bundle identifier.
func (a *AppsRelay) LaunchApp(ctx context.Context, bundleID string) error {
	if bundleID == "" {
		return errors.New("bundle id must not be empty")
	}
	return a.registry.Relay(api.OpLaunchApp, func(apps api.Apps) error {
		return apps.LaunchApp(ctx, bundleID)
	})
}

var _ api.Apps = (*AppsRelay)(nil)

package config

import (
	"fmt"
	"strings"

	"mediarelay/internal/api"
)

// CapabilityOperation is an operation together with the capability
// interface that defines it.
type CapabilityOperation struct {
	Capability string
	Operation  api.Operation
}

// capabilitySets lists the capabilities in the order used to resolve bare
// operation names. "stop" therefore means RemoteControl.stop.
var capabilitySets = []struct {
	name string
	set  api.OperationSet
}{
	{api.CapabilityRemoteControl, api.RemoteControlOperations},
	{api.CapabilityMetadata, api.MetadataOperations},
	{api.CapabilityPower, api.PowerOperations},
	{api.CapabilityStream, api.StreamOperations},
	{api.CapabilityApps, api.AppsOperations},
}

// ResolveOperations expands an entry of simulate.operations. Accepted forms
// are a capability name ("Apps"), a qualified operation ("Stream.close") or
// a bare operation name ("play_url").
func ResolveOperations(name string) ([]CapabilityOperation, error) {
	name = strings.TrimSpace(name)

	for _, c := range capabilitySets {
		if strings.EqualFold(c.name, name) {
			var out []CapabilityOperation
			for _, op := range c.set.List() {
				out = append(out, CapabilityOperation{Capability: c.name, Operation: op})
			}
			return out, nil
		}
	}

	if capability, op, qualified := strings.Cut(name, "."); qualified {
		for _, c := range capabilitySets {
			if strings.EqualFold(c.name, capability) && c.set.Has(api.Operation(op)) {
				return []CapabilityOperation{{Capability: c.name, Operation: api.Operation(op)}}, nil
			}
		}
		return nil, fmt.Errorf("unknown operation %q", name)
	}

	for _, c := range capabilitySets {
		if c.set.Has(api.Operation(name)) {
			return []CapabilityOperation{{Capability: c.name, Operation: api.Operation(name)}}, nil
		}
	}
	return nil, fmt.Errorf("unknown operation %q", name)
}

// PriorityList returns the configured protocol priorities, or the default
// order when none are configured.
func (c MediaRelayConfig) PriorityList() (api.PriorityList, error) {
	if len(c.Priorities) == 0 {
		return api.DefaultPriorities(), nil
	}
	return api.ParsePriorityList(c.Priorities)
}

// ToAPI converts the device section into the relay's device model.
func (d DeviceConfig) ToAPI() (api.DeviceConfig, error) {
	device := api.DeviceConfig{
		Name:    d.Name,
		Address: d.Address,
		Info: api.DeviceInfo{
			OperatingSystem: d.OperatingSystem,
			Version:         d.Version,
			BuildNumber:     d.BuildNumber,
			Model:           d.Model,
			MAC:             d.MAC,
		},
	}

	for _, svc := range d.Services {
		p, err := api.ParseProtocol(svc.Protocol)
		if err != nil {
			return api.DeviceConfig{}, err
		}
		device.Services = append(device.Services, api.Service{
			Protocol:   p,
			Identifier: svc.Identifier,
			Port:       svc.Port,
			Properties: svc.Properties,
		})
	}
	return device, nil
}

// HasDevice reports whether a device with at least one service is configured.
func (c MediaRelayConfig) HasDevice() bool {
	return len(c.Device.Services) > 0
}

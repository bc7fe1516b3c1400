package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarelay/internal/api"
)

func TestResolveOperations(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []CapabilityOperation
		wantLen int
		wantErr bool
	}{
		{
			name:  "bare operation",
			input: "play_url",
			want:  []CapabilityOperation{{Capability: api.CapabilityStream, Operation: api.OpPlayURL}},
		},
		{
			name:  "stop resolves to remote control",
			input: "stop",
			want:  []CapabilityOperation{{Capability: api.CapabilityRemoteControl, Operation: api.OpStop}},
		},
		{
			name:  "qualified operation",
			input: "Stream.close",
			want:  []CapabilityOperation{{Capability: api.CapabilityStream, Operation: api.OpStreamClose}},
		},
		{
			name:    "whole capability",
			input:   "metadata",
			wantLen: api.MetadataOperations.Len(),
		},
		{name: "unknown operation", input: "teleport", wantErr: true},
		{name: "operation on wrong capability", input: "Apps.play", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveOperations(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want != nil {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Len(t, got, tt.wantLen)
			}
		})
	}
}

func TestMediaRelayConfig_PriorityList(t *testing.T) {
	cfg := GetDefaultConfig()
	list, err := cfg.PriorityList()
	require.NoError(t, err)
	assert.Equal(t, api.DefaultPriorities(), list)

	cfg.Priorities = []string{"airplay", "mrp"}
	list, err = cfg.PriorityList()
	require.NoError(t, err)
	assert.Equal(t, api.PriorityList{api.ProtocolAirPlay, api.ProtocolMRP}, list)
}

func TestDeviceConfig_ToAPI(t *testing.T) {
	device := DeviceConfig{
		Name:            "Living Room",
		Address:         "10.0.0.2",
		Model:           "Gen4",
		OperatingSystem: "TvOS",
		Services: []ServiceConfig{
			{Protocol: "mrp", Identifier: "mrp-id", Port: 49152, Properties: map[string]string{"Name": "Living Room"}},
		},
	}

	got, err := device.ToAPI()
	require.NoError(t, err)
	assert.Equal(t, "Gen4", got.Info.Model)
	svc := got.Service(api.ProtocolMRP)
	require.NotNil(t, svc)
	assert.Equal(t, 49152, svc.Port)
	assert.Equal(t, "Living Room", svc.Properties["Name"])

	device.Services = append(device.Services, ServiceConfig{Protocol: "zigbee"})
	_, err = device.ToAPI()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*MediaRelayConfig)
		wantFields []string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*MediaRelayConfig) {},
		},
		{
			name: "device without services",
			mutate: func(c *MediaRelayConfig) {
				c.Device.Name = "tv"
			},
			wantFields: []string{"device.services"},
		},
		{
			name: "bad log level and format",
			mutate: func(c *MediaRelayConfig) {
				c.Logging.Level = "loud"
				c.Logging.Format = "xml"
			},
			wantFields: []string{"logging.level", "logging.format"},
		},
		{
			name: "bad simulate block",
			mutate: func(c *MediaRelayConfig) {
				c.Device = DeviceConfig{
					Name: "tv",
					Services: []ServiceConfig{{
						Protocol: "MRP",
						Port:     70000,
						Simulate: SimulateConfig{
							Features:      []string{"Teleport"},
							FeatureStates: map[string]string{"Play": "sometimes"},
							PowerState:    "standby",
						},
					}},
				}
			},
			wantFields: []string{
				"device.services[0].port",
				"device.services[0].simulate.features",
				"device.services[0].simulate.featureStates",
				"device.services[0].simulate.powerState",
			},
		},
		{
			name: "failures on property operations",
			mutate: func(c *MediaRelayConfig) {
				c.Device = DeviceConfig{
					Name: "tv",
					Services: []ServiceConfig{{
						Protocol: "MRP",
						Simulate: SimulateConfig{
							Failures: FailureConfig{Operations: map[string]string{
								"power_state": "off",
								"Metadata":    "no metadata",
								"turn_on":     "busy",
							}},
						},
					}},
				}
			},
			wantFields: []string{"device.services[0].simulate.failures.operations"},
		},
		{
			name: "qos out of range",
			mutate: func(c *MediaRelayConfig) {
				c.Bridge.QoS = 3
			},
			wantFields: []string{"bridge.qos"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)

			errs := Validate(cfg)
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestValidationError_Category(t *testing.T) {
	assert.Equal(t, "device", ValidationError{Field: "device.services[0].port"}.Category())
	assert.Equal(t, "priorities", ValidationError{Field: "priorities"}.Category())
	assert.Equal(t, "config", ValidationError{}.Category())
}

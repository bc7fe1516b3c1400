package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarelay/internal/api"
	"mediarelay/internal/config"
)

const testConfigYAML = `
device:
  name: Living Room
  model: Box
  services:
    - protocol: MRP
      identifier: mrp-id
      simulate:
        operations: [RemoteControl, Metadata]
        pushUpdates: true
        playing:
          title: Song
    - protocol: Companion
      identifier: comp-id
      simulate:
        operations: [Power, Apps]
        powerState: "off"
priorities: [Companion, MRP]
relay:
  powerDedup: consecutive
logging:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	return dir
}

func newTestApplication(t *testing.T, content string) (*Application, error) {
	t.Helper()
	cfg := NewConfig(false, false, writeConfig(t, content))
	cfg.LogOutput = io.Discard
	return NewApplication(cfg)
}

func TestNewApplication_AssemblesFacade(t *testing.T) {
	application, err := newTestApplication(t, testConfigYAML)
	require.NoError(t, err)

	f := application.Facade()
	assert.Equal(t, []api.Protocol{api.ProtocolMRP, api.ProtocolCompanion}, f.Protocols())
	assert.Equal(t, api.PriorityList{api.ProtocolCompanion, api.ProtocolMRP}, f.Priorities())
	assert.Len(t, application.Services().Backends, 2)

	ctx := context.Background()
	require.NoError(t, application.Connect(ctx))
	require.NoError(t, f.Power().TurnOn(ctx, false))
	assert.Equal(t, api.PowerStateOn, f.Power().PowerState())

	svc, err := f.Service()
	require.NoError(t, err)
	assert.Equal(t, "comp-id", svc.Identifier, "Companion is configured as the preferred protocol")

	require.NoError(t, application.Close())
	assert.True(t, application.Services().Sessions.Closed())
}

func TestNewApplication_NoDevice(t *testing.T) {
	_, err := newTestApplication(t, "logging:\n  level: info\n")
	assert.ErrorIs(t, err, ErrNoDevice)
}

func TestNewApplication_MissingConfigFile(t *testing.T) {
	cfg := NewConfig(false, true, t.TempDir())
	_, err := NewApplication(cfg)
	assert.ErrorIs(t, err, ErrNoDevice, "defaults carry no device")
}

func TestNewApplication_InvalidConfig(t *testing.T) {
	_, err := newTestApplication(t, "device: [unterminated")
	require.Error(t, err)
	assert.True(t, config.IsConfigurationError(err))

	_, err = newTestApplication(t, `
device:
  name: tv
  services:
    - protocol: Telnet
`)
	require.Error(t, err)
	assert.True(t, config.IsConfigurationError(err))
}

func TestNewApplication_PreloadedConfig(t *testing.T) {
	relayCfg := config.GetDefaultConfig()
	relayCfg.Device = config.DeviceConfig{
		Name:     "tv",
		Services: []config.ServiceConfig{{Protocol: "AirPlay", Simulate: config.SimulateConfig{Operations: []string{"Stream"}}}},
	}
	cfg := &Config{Quiet: true, MediaRelayConfig: &relayCfg}

	application, err := NewApplication(cfg)
	require.NoError(t, err)
	assert.Equal(t, []api.Protocol{api.ProtocolAirPlay}, application.Facade().Protocols())
	assert.Equal(t, "tv", application.Settings().Device.Name)
}

func TestApplication_ConnectFailure(t *testing.T) {
	application, err := newTestApplication(t, `
device:
  name: tv
  services:
    - protocol: MRP
    - protocol: DMAP
      simulate:
        failures:
          connect: refused
relay:
  rollbackOnConnectFailure: true
`)
	require.NoError(t, err)

	err = application.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsConnectionError(err))
	assert.False(t, application.Services().Backends[0].Connected(), "rollback closes MRP again")
}

package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceConfig_Service(t *testing.T) {
	cfg := DeviceConfig{
		Services: []Service{
			{Protocol: ProtocolAirPlay, Identifier: ""},
			{Protocol: ProtocolMRP, Identifier: "mrp-id", Port: 49152},
		},
	}

	svc := cfg.Service(ProtocolMRP)
	require.NotNil(t, svc)
	assert.Equal(t, 49152, svc.Port)
	assert.Nil(t, cfg.Service(ProtocolRAOP))
	assert.Equal(t, "mrp-id", cfg.Identifier())
}

func TestDeviceInfo_String(t *testing.T) {
	assert.Equal(t, "Unknown, Unknown OS", DeviceInfo{}.String())
	assert.Equal(t, "Gen4, TvOS 17.1 build 21K", DeviceInfo{
		Model: "Gen4", OperatingSystem: "TvOS", Version: "17.1", BuildNumber: "21K",
	}.String())
}

func TestPlaying_String(t *testing.T) {
	pos, total := 30, 200
	p := Playing{
		MediaType:   MediaTypeMusic,
		DeviceState: DeviceStatePlaying,
		Title:       "Song",
		Position:    &pos,
		TotalTime:   &total,
	}

	out := p.String()
	assert.Contains(t, out, "Media type: Music")
	assert.Contains(t, out, "Device state: Playing")
	assert.Contains(t, out, "Title: Song")
	assert.Contains(t, out, "Position: 30s/3m20s")
	assert.NotContains(t, out, "Artist")
}

func TestParseHelpers(t *testing.T) {
	state, err := ParsePowerState("ON")
	require.NoError(t, err)
	assert.Equal(t, PowerStateOn, state)
	_, err = ParsePowerState("standby")
	assert.Error(t, err)

	ds, err := ParseDeviceState("paused")
	require.NoError(t, err)
	assert.Equal(t, DeviceStatePaused, ds)

	name, err := ParseFeatureName("playurl")
	require.NoError(t, err)
	assert.Equal(t, FeaturePlayURL, name)
	_, err = ParseFeatureName("teleport")
	assert.Error(t, err)
}

func TestStateProducer(t *testing.T) {
	var p StateProducer[PowerListener]

	_, ok := p.Listener()
	assert.False(t, ok)

	l := &countingPowerListener{}
	p.SetListener(l)
	got, ok := p.Listener()
	require.True(t, ok)
	got.PowerStateUpdate(PowerStateOff, PowerStateOn)
	assert.Equal(t, 1, l.count)

	p.ClearListener()
	_, ok = p.Listener()
	assert.False(t, ok)
}

type countingPowerListener struct{ count int }

func (c *countingPowerListener) PowerStateUpdate(PowerState, PowerState) { c.count++ }

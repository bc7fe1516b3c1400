package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarelay/internal/api"
	"mediarelay/internal/config"
	"mediarelay/internal/metrics"
	"mediarelay/internal/relay"
)

func TestFacadeOptions(t *testing.T) {
	tests := []struct {
		name           string
		cfg            config.MediaRelayConfig
		wantPriorities api.PriorityList
		wantErr        bool
	}{
		{
			name:           "defaults",
			cfg:            config.GetDefaultConfig(),
			wantPriorities: api.DefaultPriorities(),
		},
		{
			name:           "custom priorities",
			cfg:            config.MediaRelayConfig{Priorities: []string{"airplay", "mrp"}},
			wantPriorities: api.PriorityList{api.ProtocolAirPlay, api.ProtocolMRP},
		},
		{
			name:    "unknown protocol",
			cfg:     config.MediaRelayConfig{Priorities: []string{"telnet"}},
			wantErr: true,
		},
		{
			name:    "unknown dedup policy",
			cfg:     config.MediaRelayConfig{Relay: config.RelayConfig{PowerDedup: "sometimes"}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := FacadeOptions(tt.cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			f := relay.NewFacade(api.DeviceConfig{}, nil, opts...)
			assert.Equal(t, tt.wantPriorities, f.Priorities())
		})
	}
}

type countingListener struct{ updates int }

func (l *countingListener) PowerStateUpdate(api.PowerState, api.PowerState) { l.updates++ }

func TestFacadeOptions_PowerDedup(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Relay.PowerDedup = config.PowerDedupConsecutive
	opts, err := FacadeOptions(cfg, metrics.NewRecorder())
	require.NoError(t, err)

	f := relay.NewFacade(api.DeviceConfig{}, nil, opts...)
	listener := &countingListener{}
	f.Power().SetListener(listener)
	f.Power().PowerStateUpdate(api.PowerStateOff, api.PowerStateOn)
	f.Power().PowerStateUpdate(api.PowerStateOff, api.PowerStateOn)
	assert.Equal(t, 1, listener.updates)
}

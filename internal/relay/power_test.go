package relay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarelay/internal/api"
)

func TestPowerBridge_ForwardsEveryEventInOrder(t *testing.T) {
	bridge := NewPowerBridge(api.DefaultPriorities(), PowerDedupNone)
	a := &fakePower{}
	b := &fakePower{}
	bridge.Register(api.ProtocolMRP, a, api.OpPowerState)
	bridge.Register(api.ProtocolCompanion, b, api.OpTurnOn)

	listener := &recordingPowerListener{}
	bridge.SetListener(listener)

	a.emit(api.PowerStateOff, api.PowerStateOn)
	b.emit(api.PowerStateOff, api.PowerStateOn)

	assert.Equal(t, []powerEvent{
		{old: api.PowerStateOff, new: api.PowerStateOn},
		{old: api.PowerStateOff, new: api.PowerStateOn},
	}, listener.list(), "duplicates from different protocols are forwarded")
}

func TestPowerBridge_NoListenerDropsSilently(t *testing.T) {
	bridge := NewPowerBridge(api.DefaultPriorities(), PowerDedupNone)
	a := &fakePower{}
	bridge.Register(api.ProtocolMRP, a, api.OpPowerState)

	assert.NotPanics(t, func() { a.emit(api.PowerStateOn, api.PowerStateOff) })
	assert.Nil(t, bridge.Listener())
}

func TestPowerBridge_ConsecutiveDedup(t *testing.T) {
	rec := &fakeRecorder{}
	bridge := NewPowerBridge(api.DefaultPriorities(), PowerDedupConsecutive)
	bridge.SetRecorder(rec)
	a := &fakePower{}
	b := &fakePower{}
	bridge.Register(api.ProtocolMRP, a)
	bridge.Register(api.ProtocolDMAP, b)
	listener := &recordingPowerListener{}
	bridge.SetListener(listener)

	a.emit(api.PowerStateOff, api.PowerStateOn)
	b.emit(api.PowerStateOff, api.PowerStateOn)
	b.emit(api.PowerStateOn, api.PowerStateOff)

	assert.Equal(t, []powerEvent{
		{old: api.PowerStateOff, new: api.PowerStateOn},
		{old: api.PowerStateOn, new: api.PowerStateOff},
	}, listener.list())
	assert.Equal(t, []bool{true, false, true}, rec.forwarded)
}

func TestPowerBridge_ReplacingDetachesPreviousBackend(t *testing.T) {
	bridge := NewPowerBridge(api.DefaultPriorities(), PowerDedupNone)
	old := &fakePower{}
	fresh := &fakePower{}
	bridge.Register(api.ProtocolMRP, old, api.OpPowerState)
	bridge.Register(api.ProtocolMRP, fresh, api.OpPowerState)

	assert.Nil(t, old.listener)
	assert.NotNil(t, fresh.listener)

	bridge.Unregister(api.ProtocolMRP)
	assert.Nil(t, fresh.listener)
}

func TestPowerBridge_Relay(t *testing.T) {
	bridge := NewPowerBridge(api.DefaultPriorities(), PowerDedupNone)
	assert.Equal(t, api.PowerStateUnknown, bridge.PowerState())
	assert.True(t, api.IsUnsupported(bridge.TurnOn(context.Background(), false)))

	mrp := &fakePower{state: api.PowerStateOn}
	companion := &fakePower{}
	bridge.Register(api.ProtocolMRP, mrp, api.OpPowerState)
	bridge.Register(api.ProtocolCompanion, companion, api.OpTurnOn, api.OpTurnOff)
	// Backends without notifications can still be registered.
	bridge.Register(api.ProtocolRAOP, &plainPower{state: api.PowerStateOff})

	assert.Equal(t, api.PowerStateOn, bridge.PowerState())
	require.NoError(t, bridge.TurnOff(context.Background(), true))
	assert.Equal(t, []string{"turn_off"}, companion.list())
	assert.Equal(t, []string{"power_state"}, mrp.list())
}

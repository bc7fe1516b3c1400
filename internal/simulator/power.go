package simulator

import (
	"context"
	"sync"
	"time"

	"mediarelay/internal/api"
	"mediarelay/pkg/logging"
)

// powerModel is the simulated power state. Requested changes take effect
// after the configured delay and are reported to the power listener.
type powerModel struct {
	backend *Backend
	delay   time.Duration

	mu      sync.Mutex
	state   api.PowerState
	pending *time.Timer
	changed chan struct{}

	listener api.StateProducer[api.PowerListener]
}

func newPowerModel(b *Backend, initial api.PowerState, delay time.Duration) *powerModel {
	return &powerModel{
		backend: b,
		delay:   delay,
		state:   initial,
		changed: make(chan struct{}),
	}
}

// SetPowerListener implements api.PowerNotifier. nil detaches the listener.
func (m *powerModel) SetPowerListener(listener api.PowerListener) {
	if listener == nil {
		m.listener.ClearListener()
		return
	}
	m.listener.SetListener(listener)
}

func (m *powerModel) PowerState() api.PowerState {
	m.backend.record(api.CapabilityPower, api.OpPowerState)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *powerModel) TurnOn(ctx context.Context, awaitNewState bool) error {
	if err := m.backend.serve(api.CapabilityPower, api.OpTurnOn); err != nil {
		return err
	}
	return m.request(ctx, api.PowerStateOn, awaitNewState)
}

func (m *powerModel) TurnOff(ctx context.Context, awaitNewState bool) error {
	if err := m.backend.serve(api.CapabilityPower, api.OpTurnOff); err != nil {
		return err
	}
	return m.request(ctx, api.PowerStateOff, awaitNewState)
}

func (m *powerModel) request(ctx context.Context, target api.PowerState, await bool) error {
	if m.delay == 0 {
		m.set(target)
		return nil
	}

	m.mu.Lock()
	if m.pending != nil {
		m.pending.Stop()
	}
	m.pending = time.AfterFunc(m.delay, func() { m.set(target) })
	m.mu.Unlock()

	if !await {
		return nil
	}
	for {
		m.mu.Lock()
		if m.state == target {
			m.mu.Unlock()
			return nil
		}
		changed := m.changed
		m.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// set moves to state and notifies the listener if the state changed.
func (m *powerModel) set(state api.PowerState) {
	m.mu.Lock()
	old := m.state
	if old == state {
		m.mu.Unlock()
		return
	}
	m.state = state
	close(m.changed)
	m.changed = make(chan struct{})
	m.mu.Unlock()

	logging.Debug("Simulator", "%s power %s -> %s", m.backend.protocol, old, state)
	if listener, ok := m.listener.Listener(); ok {
		listener.PowerStateUpdate(old, state)
	}
}

// stop cancels a pending power change.
func (m *powerModel) stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}

var (
	_ api.Power         = (*powerModel)(nil)
	_ api.PowerNotifier = (*powerModel)(nil)
)

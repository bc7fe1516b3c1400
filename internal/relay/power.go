package relay

import (
	"context"
	"sync"

	"mediarelay/internal/api"
	"mediarelay/pkg/logging"
)

// PowerDedupPolicy decides what the PowerBridge does with notifications that
// repeat the state it last forwarded. Several protocols may observe the same
// transition and report it independently.
type PowerDedupPolicy int

const (
	// PowerDedupNone forwards every notification from every protocol as-is.
	PowerDedupNone PowerDedupPolicy = iota
	// PowerDedupConsecutive drops a notification whose new state equals the
	// new state of the previously forwarded one.
	PowerDedupConsecutive
)

// PowerEventRecorder is implemented by recorders that also count power
// notifications passing through the bridge.
type PowerEventRecorder interface {
	RecordPowerEvent(oldState, newState api.PowerState, forwarded bool)
}

// PowerBridge relays power operations like any other capability and fans in
// the power state notifications of every registered protocol to one external
// listener.
type PowerBridge struct {
	registry *Registry[api.Power]
	listener api.StateProducer[api.PowerListener]
	policy   PowerDedupPolicy
	events   PowerEventRecorder

	mu        sync.Mutex
	lastState api.PowerState
	forwarded bool
}

// NewPowerBridge creates a bridge that resolves power operations by priorities.
func NewPowerBridge(priorities api.PriorityList, policy PowerDedupPolicy) *PowerBridge {
	return &PowerBridge{
		registry: NewRegistry[api.Power](api.CapabilityPower, api.PowerOperations, priorities),
		policy:   policy,
	}
}

// Registry exposes the underlying registry.
func (b *PowerBridge) Registry() *Registry[api.Power] {
	return b.registry
}

// SetRecorder installs a recorder for relayed calls and, when it supports
// it, for power notifications.
func (b *PowerBridge) SetRecorder(recorder CallRecorder) {
	b.registry.SetRecorder(recorder)
	b.events, _ = recorder.(PowerEventRecorder)
}

// Register binds a power backend. Backends that report transitions get the
// bridge installed as their listener.
func (b *PowerBridge) Register(p api.Protocol, instance api.Power, declared ...api.Operation) {
	b.Unregister(p)
	b.registry.Register(p, instance, declared...)
	if notifier, ok := instance.(api.PowerNotifier); ok {
		notifier.SetPowerListener(b)
		logging.Debug("PowerBridge", "Listening for power updates from %s", p)
	}
}

// Unregister removes protocol p and detaches the bridge from it.
func (b *PowerBridge) Unregister(p api.Protocol) {
	previous, ok := b.registry.Get(p)
	if !ok {
		return
	}
	if notifier, isNotifier := previous.(api.PowerNotifier); isNotifier {
		notifier.SetPowerListener(nil)
	}
	b.registry.Unregister(p)
}

// SetListener sets the external listener that receives forwarded updates.
func (b *PowerBridge) SetListener(listener api.PowerListener) {
	b.listener.SetListener(listener)
}

// Listener returns the external listener, or nil.
func (b *PowerBridge) Listener() api.PowerListener {
	listener, _ := b.listener.Listener()
	return listener
}

// PowerStateUpdate is called by backends on every transition they observe.
// The update is forwarded to the external listener unchanged, once per call.
func (b *PowerBridge) PowerStateUpdate(oldState, newState api.PowerState) {
	forward := b.admit(newState)
	if b.events != nil {
		b.events.RecordPowerEvent(oldState, newState, forward)
	}
	if !forward {
		logging.Debug("PowerBridge", "Dropping repeated power update %s -> %s", oldState, newState)
		return
	}

	listener, ok := b.listener.Listener()
	if !ok || listener == nil {
		logging.Debug("PowerBridge", "Power update %s -> %s with no listener", oldState, newState)
		return
	}
	listener.PowerStateUpdate(oldState, newState)
}

func (b *PowerBridge) admit(newState api.PowerState) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.policy == PowerDedupConsecutive && b.forwarded && b.lastState == newState {
		return false
	}
	b.lastState = newState
	b.forwarded = true
	return true
}

// PowerState returns the device power state, or api.PowerStateUnknown when
// no protocol provides it.
func (b *PowerBridge) PowerState() api.PowerState {
	return Property(b.registry, api.OpPowerState, api.PowerStateUnknown, func(p api.Power) api.PowerState {
		return p.PowerState()
	})
}

// TurnOn turns the device on.
func (b *PowerBridge) TurnOn(ctx context.Context, awaitNewState bool) error {
	return b.registry.Relay(api.OpTurnOn, func(p api.Power) error {
		return p.TurnOn(ctx, awaitNewState)
	})
}

// TurnOff turns the device off.
func (b *PowerBridge) TurnOff(ctx context.Context, awaitNewState bool) error {
	return b.registry.Relay(api.OpTurnOff, func(p api.Power) error {
		return p.TurnOff(ctx, awaitNewState)
	})
}

var (
	_ api.Power         = (*PowerBridge)(nil)
	_ api.PowerListener = (*PowerBridge)(nil)
)

package relay

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"mediarelay/internal/api"
	"mediarelay/pkg/logging"
)

// SessionManager is the shared network session owned by a Facade. It is
// released once, when the Facade closes.
type SessionManager interface {
	Close(ctx context.Context) error
}

// Facade is the single client object for one device. It combines the
// partial capability implementations of every added protocol into complete
// capability interfaces, and drives connect and close across all of them.
//
// Protocols are added during setup with AddProtocol. Adding protocols while
// calls are being relayed is not supported.
type Facade struct {
	id         string
	device     api.DeviceConfig
	sessions   SessionManager
	priorities api.PriorityList
	recorder   CallRecorder

	rollbackOnConnectFailure bool
	powerDedup               PowerDedupPolicy

	handlers map[api.Protocol]SetupData
	order    []api.Protocol

	features      *FeatureAggregator
	remoteControl *RemoteControlRelay
	metadata      *MetadataRelay
	power         *PowerBridge
	stream        *StreamRelay
	apps          *AppsRelay
	push          *PushUpdaterRelay

	listener api.StateProducer[api.DeviceListener]

	mu     sync.Mutex
	closed bool
}

// NewFacade creates a Facade for device. sessions may be nil when no shared
// session is used.
//
// Args:
//   - device: address, general information and advertised services
//   - sessions: shared session manager released by Close
//   - opts: functional options, see WithPriorities and friends
//
// Returns:
//   - *Facade: a facade with no protocols added
func NewFacade(device api.DeviceConfig, sessions SessionManager, opts ...Option) *Facade {
	f := &Facade{
		device:     device,
		sessions:   sessions,
		priorities: api.DefaultPriorities(),
		handlers:   make(map[api.Protocol]SetupData),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.id == "" {
		f.id = uuid.NewString()
	}

	f.features = NewFeatureAggregator(f.priorities)
	f.remoteControl = NewRemoteControlRelay(f.priorities)
	f.metadata = NewMetadataRelay(f.priorities)
	f.power = NewPowerBridge(f.priorities, f.powerDedup)
	f.stream = NewStreamRelay(f.priorities)
	f.apps = NewAppsRelay(f.priorities)
	f.push = NewPushUpdaterRelay(f.priorities)

	if f.recorder != nil {
		f.remoteControl.Registry().SetRecorder(f.recorder)
		f.metadata.Registry().SetRecorder(f.recorder)
		f.power.SetRecorder(f.recorder)
		f.stream.Registry().SetRecorder(f.recorder)
		f.apps.Registry().SetRecorder(f.recorder)
		f.push.Registry().SetRecorder(f.recorder)
	}

	logging.Debug("Facade", "Created facade %s for %s (priorities: %s)", f.id, device.Name, f.priorities)
	return f
}

// ID returns the session ID of this facade.
func (f *Facade) ID() string {
	return f.id
}

// Priorities returns a copy of the priority list in use.
func (f *Facade) Priorities() api.PriorityList {
	return f.priorities.Clone()
}

// AddProtocol adds a protocol backend. Adding a protocol that is already
// present fully replaces its earlier contributions; the protocol keeps its
// original place in the connect and close order.
func (f *Facade) AddProtocol(setup SetupData) error {
	if err := setup.Validate(); err != nil {
		return err
	}
	if f.isClosed() {
		return api.ErrFacadeClosed
	}

	p := setup.Protocol
	if _, exists := f.handlers[p]; exists {
		logging.Info("Facade", "Replacing protocol %s", p)
		f.removeContributions(p)
	} else {
		f.order = append(f.order, p)
		f.note(p)
	}
	f.handlers[p] = setup

	if b := setup.RemoteControl; b != nil {
		f.remoteControl.Registry().Register(p, b.Instance, b.Operations...)
	}
	if b := setup.Metadata; b != nil {
		f.metadata.Registry().Register(p, b.Instance, b.Operations...)
	}
	if b := setup.Power; b != nil {
		f.power.Register(p, b.Instance, b.Operations...)
	}
	if b := setup.Stream; b != nil {
		f.stream.Registry().Register(p, b.Instance, b.Operations...)
	}
	if b := setup.Apps; b != nil {
		f.apps.Registry().Register(p, b.Instance, b.Operations...)
	}
	if setup.PushUpdater != nil {
		f.push.Registry().Register(p, setup.PushUpdater, api.PushUpdaterOperations.List()...)
	}
	f.features.AddMapping(p, setup.FeatureSource, setup.Features...)

	logging.Info("Facade", "Added protocol %s (%d features)", p, len(setup.Features))
	return nil
}

// note ranks p in every registry at the facade's add order, so a protocol
// outside the priority list has the same place for every capability
// whichever bindings it brings.
func (f *Facade) note(p api.Protocol) {
	if !f.priorities.Contains(p) {
		logging.Info("Facade", "%s is not in the priority list (%s), it ranks after listed protocols", p, f.priorities)
	}
	f.remoteControl.Registry().note(p)
	f.metadata.Registry().note(p)
	f.power.Registry().note(p)
	f.stream.Registry().note(p)
	f.apps.Registry().note(p)
	f.push.Registry().note(p)
	f.features.note(p)
}

func (f *Facade) removeContributions(p api.Protocol) {
	f.remoteControl.Registry().Unregister(p)
	f.metadata.Registry().Unregister(p)
	f.power.Unregister(p)
	f.stream.Registry().Unregister(p)
	f.apps.Registry().Unregister(p)
	f.push.Registry().Unregister(p)
	f.features.RemoveMapping(p)
}

// Protocols returns the added protocols in the order they were added.
func (f *Facade) Protocols() []api.Protocol {
	return slices.Clone(f.order)
}

// Connect connects every added protocol, in the order they were added.
//
// The first failure stops the remaining connects and is returned as an
// *api.ConnectionError. Backends connected before the failure stay
// connected unless WithRollbackOnConnectFailure is set.
func (f *Facade) Connect(ctx context.Context) error {
	if f.isClosed() {
		return api.ErrFacadeClosed
	}

	var connected []api.Protocol
	for _, p := range f.order {
		setup := f.handlers[p]
		if setup.Connect == nil {
			connected = append(connected, p)
			continue
		}

		logging.Debug("Facade", "Connecting %s", p)
		if err := setup.Connect(ctx); err != nil {
			logging.Error("Facade", err, "Failed to connect %s", p)
			if f.rollbackOnConnectFailure {
				f.rollback(connected)
			}
			var connErr *api.ConnectionError
			if errors.As(err, &connErr) {
				return err
			}
			return &api.ConnectionError{Protocol: p, Err: err}
		}
		connected = append(connected, p)
	}

	logging.Info("Facade", "Connected %d protocols", len(connected))
	return nil
}

func (f *Facade) rollback(connected []api.Protocol) {
	for i := len(connected) - 1; i >= 0; i-- {
		p := connected[i]
		logging.Info("Facade", "Rolling back connection of %s", p)
		if err := f.closeProtocol(p); err != nil {
			logging.Warn("Facade", "Rollback of %s failed: %v", p, err)
		}
	}
}

// Close closes every added protocol and releases the shared session.
//
// Every close routine is attempted exactly once, even when an earlier one
// fails. Failures are logged and returned joined. A device listener, if set,
// is told the connection was closed. Closing twice returns
// api.ErrFacadeClosed.
func (f *Facade) Close(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return api.ErrFacadeClosed
	}
	f.closed = true
	f.mu.Unlock()

	var errs []error
	for _, p := range f.order {
		if err := f.closeProtocol(p); err != nil {
			logging.Warn("Facade", "Closing %s failed: %v", p, err)
			errs = append(errs, fmt.Errorf("close %s: %w", p, err))
		}
	}

	if f.sessions != nil {
		if err := f.sessions.Close(ctx); err != nil {
			logging.Warn("Facade", "Closing session manager failed: %v", err)
			errs = append(errs, fmt.Errorf("close session: %w", err))
		}
	}

	if listener, ok := f.listener.Listener(); ok && listener != nil {
		listener.ConnectionClosed()
	}

	logging.Info("Facade", "Closed facade %s (%d protocols, %d errors)", f.id, len(f.order), len(errs))
	return errors.Join(errs...)
}

// closeProtocol runs one close routine, turning a panic into an error so
// the remaining routines still run.
func (f *Facade) closeProtocol(p api.Protocol) (err error) {
	closeFn := f.handlers[p].Close
	if closeFn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while closing %s: %v", p, r)
		}
	}()
	return closeFn()
}

func (f *Facade) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Service returns the main service used to reach the device: the service
// of the highest priority added protocol.
//
// Returns api.ErrNoProtocols when nothing was added. Added protocols
// without any service is a setup bug and panics with
// *api.InvariantViolationError.
func (f *Facade) Service() (*api.Service, error) {
	if len(f.order) == 0 {
		return nil, api.ErrNoProtocols
	}

	for _, p := range f.priorities.Rank(f.order) {
		if svc := f.handlers[p].Service; svc != nil {
			return svc, nil
		}
		if svc := f.device.Service(p); svc != nil {
			return svc, nil
		}
	}

	panic(api.NewInvariantViolation("no service found for protocols %v", f.order))
}

// DeviceInfo returns general information about the device.
func (f *Facade) DeviceInfo() api.DeviceInfo {
	return f.device.Info
}

// Device returns the device configuration the facade was created for.
func (f *Facade) Device() api.DeviceConfig {
	return f.device
}

// RemoteControl returns the remote control interface.
func (f *Facade) RemoteControl() api.RemoteControl { return f.remoteControl }

// Metadata returns the metadata interface.
func (f *Facade) Metadata() api.Metadata { return f.metadata }

// Power returns the power interface. Its listener receives power updates
// from every protocol.
func (f *Facade) Power() *PowerBridge { return f.power }

// Stream returns the streaming interface.
func (f *Facade) Stream() api.Stream { return f.stream }

// Apps returns the apps interface.
func (f *Facade) Apps() api.Apps { return f.apps }

// Features returns the features interface.
func (f *Facade) Features() *FeatureAggregator { return f.features }

// PushUpdater returns the push updater of the highest priority protocol.
func (f *Facade) PushUpdater() api.PushUpdater { return f.push.Updater() }

// SetListener sets the listener receiving connection lifecycle events.
func (f *Facade) SetListener(listener api.DeviceListener) {
	f.listener.SetListener(listener)
}

// ConnectionLost is called by backend setup code when protocol p loses its
// connection. The device listener, if any, is notified.
func (f *Facade) ConnectionLost(p api.Protocol, err error) {
	logging.Warn("Facade", "Connection lost for %s: %v", p, err)
	if listener, ok := f.listener.Listener(); ok && listener != nil {
		listener.ConnectionLost(&api.ConnectionError{Protocol: p, Err: err})
	}
}

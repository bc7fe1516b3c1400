package simulator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"mediarelay/internal/api"
	"mediarelay/internal/config"
	"mediarelay/internal/relay"
	"mediarelay/pkg/logging"
)

// HTTPDoer sends HTTP requests over the device's shared session.
// *session.Manager implements it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Backend is an in-memory protocol backend driven by configuration. It
// keeps a small model of the device (power, playing state, installed apps)
// and implements every capability interface, but only the operations listed
// in its configuration are declared to the relay.
type Backend struct {
	protocol api.Protocol
	service  api.Service
	sessions HTTPDoer

	declared      map[string][]api.Operation
	features      []api.FeatureName
	featureStates map[api.FeatureName]api.FeatureState
	failures      map[config.CapabilityOperation]error
	connectErr    error
	closeErr      error

	deviceID    string
	apps        []api.App
	pushEnabled bool

	mu         sync.Mutex
	connected  bool
	playing    api.Playing
	appID      string
	streamURL  string
	lastAction api.InputAction
	history    []config.CapabilityOperation

	power          *powerModel
	push           *pushUpdater
	connectionLost func(err error)
}

// New creates a backend for protocol p from its service configuration.
// sessions may be nil, in which case PlayURL does not check URLs.
func New(p api.Protocol, svc config.ServiceConfig, sessions HTTPDoer) (*Backend, error) {
	sim := svc.Simulate
	b := &Backend{
		protocol: p,
		service: api.Service{
			Protocol:   p,
			Identifier: svc.Identifier,
			Port:       svc.Port,
			Properties: svc.Properties,
		},
		sessions:      sessions,
		declared:      make(map[string][]api.Operation),
		featureStates: make(map[api.FeatureName]api.FeatureState),
		failures:      make(map[config.CapabilityOperation]error),
		deviceID:      sim.DeviceID,
		pushEnabled:   sim.PushUpdates,
	}
	if b.deviceID == "" {
		b.deviceID = svc.Identifier
	}

	for _, entry := range sim.Operations {
		ops, err := config.ResolveOperations(entry)
		if err != nil {
			return nil, err
		}
		for _, op := range ops {
			if !slices.Contains(b.declared[op.Capability], op.Operation) {
				b.declared[op.Capability] = append(b.declared[op.Capability], op.Operation)
			}
		}
	}

	for _, name := range sim.Features {
		feature, err := api.ParseFeatureName(name)
		if err != nil {
			return nil, err
		}
		b.features = append(b.features, feature)
	}
	for name, value := range sim.FeatureStates {
		feature, err := api.ParseFeatureName(name)
		if err != nil {
			return nil, err
		}
		state, err := api.ParseFeatureState(value)
		if err != nil {
			return nil, err
		}
		b.featureStates[feature] = state
	}

	for entry, message := range sim.Failures.Operations {
		ops, err := config.ResolveOperations(entry)
		if err != nil {
			return nil, err
		}
		for _, op := range ops {
			if api.PropertyOperations.Has(op.Operation) {
				continue
			}
			b.failures[op] = errors.New(message)
		}
	}
	if sim.Failures.Connect != "" {
		b.connectErr = errors.New(sim.Failures.Connect)
	}
	if sim.Failures.Close != "" {
		b.closeErr = errors.New(sim.Failures.Close)
	}

	playing, appID, err := initialPlaying(sim.Playing)
	if err != nil {
		return nil, err
	}
	b.playing = playing
	b.appID = appID

	for _, app := range sim.Apps {
		b.apps = append(b.apps, api.App{Name: app.Name, Identifier: app.Identifier})
	}

	powerState, err := api.ParsePowerState(sim.PowerState)
	if err != nil {
		return nil, err
	}
	b.power = newPowerModel(b, powerState, sim.PowerDelay)
	b.push = newPushUpdater(b)

	return b, nil
}

func initialPlaying(cfg config.PlayingConfig) (api.Playing, string, error) {
	mediaType, err := api.ParseMediaType(cfg.MediaType)
	if err != nil {
		return api.Playing{}, "", err
	}
	deviceState := api.DeviceStateIdle
	if cfg.DeviceState != "" {
		if deviceState, err = api.ParseDeviceState(cfg.DeviceState); err != nil {
			return api.Playing{}, "", err
		}
	}
	return api.Playing{
		MediaType:   mediaType,
		DeviceState: deviceState,
		Title:       cfg.Title,
		Artist:      cfg.Artist,
		Album:       cfg.Album,
		Genre:       cfg.Genre,
		Position:    cfg.Position,
		TotalTime:   cfg.TotalTime,
	}, cfg.App, nil
}

// Protocol returns the protocol the backend serves.
func (b *Backend) Protocol() api.Protocol {
	return b.protocol
}

// OnConnectionLost installs the callback invoked by DropConnection.
func (b *Backend) OnConnectionLost(callback func(err error)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connectionLost = callback
}

// DropConnection simulates the device dropping the connection.
func (b *Backend) DropConnection(err error) {
	b.mu.Lock()
	b.connected = false
	callback := b.connectionLost
	b.mu.Unlock()

	b.push.fail(err)
	logging.Warn("Simulator", "%s connection dropped: %v", b.protocol, err)
	if callback != nil {
		callback(err)
	}
}

// Connected reports whether Connect succeeded and the backend has not been
// closed since.
func (b *Backend) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected
}

// History returns every operation served by the backend, in call order.
func (b *Backend) History() []config.CapabilityOperation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.history)
}

// Setup produces the record the backend contributes to a relay.Facade.
func (b *Backend) Setup() relay.SetupData {
	setup := relay.SetupData{
		Protocol:      b.protocol,
		Connect:       b.connect,
		Close:         b.disconnect,
		Features:      slices.Clone(b.features),
		FeatureSource: b,
		Service:       &b.service,
	}
	if ops := b.declared[api.CapabilityRemoteControl]; len(ops) > 0 {
		setup.RemoteControl = relay.Bind[api.RemoteControl](b, ops...)
	}
	if ops := b.declared[api.CapabilityMetadata]; len(ops) > 0 {
		setup.Metadata = relay.Bind[api.Metadata](b, ops...)
	}
	if ops := b.declared[api.CapabilityPower]; len(ops) > 0 {
		setup.Power = relay.Bind[api.Power](b.power, ops...)
	}
	if ops := b.declared[api.CapabilityStream]; len(ops) > 0 {
		setup.Stream = relay.Bind[api.Stream](&stream{b}, ops...)
	}
	if ops := b.declared[api.CapabilityApps]; len(ops) > 0 {
		setup.Apps = relay.Bind[api.Apps](b, ops...)
	}
	if b.pushEnabled {
		setup.PushUpdater = b.push
	}
	return setup
}

func (b *Backend) connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.connectErr != nil {
		return b.connectErr
	}
	b.mu.Lock()
	b.connected = true
	b.mu.Unlock()
	logging.Debug("Simulator", "%s connected", b.protocol)
	return nil
}

func (b *Backend) disconnect() error {
	b.push.Stop()
	b.power.stop()

	b.mu.Lock()
	b.connected = false
	b.mu.Unlock()

	if b.closeErr != nil {
		return b.closeErr
	}
	logging.Debug("Simulator", "%s closed", b.protocol)
	return nil
}

// record adds a call to the history.
func (b *Backend) record(capability string, op api.Operation) config.CapabilityOperation {
	key := config.CapabilityOperation{Capability: capability, Operation: op}
	b.mu.Lock()
	b.history = append(b.history, key)
	b.mu.Unlock()
	return key
}

// serve records a call and returns the injected failure for it, if any.
func (b *Backend) serve(capability string, op api.Operation) error {
	key := b.record(capability, op)
	if err, ok := b.failures[key]; ok {
		return &api.OperationError{Protocol: b.protocol, Operation: op, Err: err}
	}
	return nil
}

// update applies fn to the playing state and pushes the result.
func (b *Backend) update(fn func(p *api.Playing)) {
	b.mu.Lock()
	fn(&b.playing)
	playing := b.playing
	b.mu.Unlock()

	b.push.notify(playing)
}

func (b *Backend) operationError(op api.Operation, format string, args ...any) error {
	return &api.OperationError{Protocol: b.protocol, Operation: op, Err: fmt.Errorf(format, args...)}
}

package app

import (
	"context"
	"fmt"

	"mediarelay/internal/config"
	"mediarelay/internal/metrics"
	"mediarelay/internal/relay"
	"mediarelay/internal/session"
	"mediarelay/internal/simulator"
	"mediarelay/pkg/logging"
)

// Services holds everything assembled for one device.
type Services struct {
	Sessions *session.Manager
	Recorder *metrics.Recorder
	Facade   *relay.Facade
	Backends []*simulator.Backend
}

// InitializeServices creates the shared session and metrics recorder, then
// builds the Facade and adds one backend per configured service.
func InitializeServices(cfg *Config) (*Services, error) {
	relayCfg := *cfg.MediaRelayConfig

	device, err := relayCfg.Device.ToAPI()
	if err != nil {
		return nil, fmt.Errorf("invalid device configuration: %w", err)
	}

	recorder := metrics.NewRecorder()
	opts, err := FacadeOptions(relayCfg, recorder)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager()
	facade := relay.NewFacade(device, sessions, opts...)

	backends, err := simulator.AddTo(facade, relayCfg.Device, sessions)
	if err != nil {
		_ = facade.Close(context.Background())
		return nil, err
	}

	logging.Info("Bootstrap", "Initialized %s with %d protocols (facade %s)", device.Name, len(backends), facade.ID())
	return &Services{
		Sessions: sessions,
		Recorder: recorder,
		Facade:   facade,
		Backends: backends,
	}, nil
}

// FacadeOptions translates the relay settings of cfg into Facade options.
func FacadeOptions(cfg config.MediaRelayConfig, recorder relay.CallRecorder) ([]relay.Option, error) {
	priorities, err := cfg.PriorityList()
	if err != nil {
		return nil, err
	}

	var dedup relay.PowerDedupPolicy
	switch cfg.Relay.PowerDedup {
	case "", config.PowerDedupNone:
		dedup = relay.PowerDedupNone
	case config.PowerDedupConsecutive:
		dedup = relay.PowerDedupConsecutive
	default:
		return nil, fmt.Errorf("unknown power dedup policy %q", cfg.Relay.PowerDedup)
	}

	opts := []relay.Option{
		relay.WithPriorities(priorities),
		relay.WithRollbackOnConnectFailure(cfg.Relay.RollbackOnConnectFailure),
		relay.WithPowerDedupPolicy(dedup),
	}
	if recorder != nil {
		opts = append(opts, relay.WithCallRecorder(recorder))
	}
	return opts, nil
}

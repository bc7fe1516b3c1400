package simulator

import (
	"fmt"

	"mediarelay/internal/api"
	"mediarelay/internal/config"
	"mediarelay/internal/relay"
)

// AddTo creates one backend per configured service and adds it to f in
// configuration order. Connection loss reported by a backend is forwarded
// to f.
func AddTo(f *relay.Facade, device config.DeviceConfig, sessions HTTPDoer) ([]*Backend, error) {
	backends := make([]*Backend, 0, len(device.Services))
	for i, svc := range device.Services {
		p, err := api.ParseProtocol(svc.Protocol)
		if err != nil {
			return nil, fmt.Errorf("device.services[%d]: %w", i, err)
		}
		b, err := New(p, svc, sessions)
		if err != nil {
			return nil, fmt.Errorf("device.services[%d] (%s): %w", i, p, err)
		}
		b.OnConnectionLost(func(err error) { f.ConnectionLost(p, err) })

		if err := f.AddProtocol(b.Setup()); err != nil {
			return nil, fmt.Errorf("add %s: %w", p, err)
		}
		backends = append(backends, b)
	}
	return backends, nil
}

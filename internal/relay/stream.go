package relay

import (
	"context"
	"fmt"
	"net/url"

	"mediarelay/internal/api"
)

// StreamRelay implements api.Stream by relaying to the protocol that serves
// each operation.
type StreamRelay struct {
	registry *Registry[api.Stream]
}

// NewStreamRelay creates an empty relay.
func NewStreamRelay(priorities api.PriorityList) *StreamRelay {
	return &StreamRelay{
		registry: NewRegistry[api.Stream](api.CapabilityStream, api.StreamOperations, priorities),
	}
}

// Registry exposes the underlying registry.
func (s *StreamRelay) Registry() *Registry[api.Stream] {
	return s.registry
}

// PlayURL plays media from a URL on the device.
func (s *StreamRelay) PlayURL(ctx context.Context, rawURL string, opts api.PlayURLOptions) error {
	if _, err := url.Parse(rawURL); err != nil || rawURL == "" {
		return fmt.Errorf("invalid media url %q", rawURL)
	}
	return s.registry.Relay(api.OpPlayURL, func(st api.Stream) error {
		return st.PlayURL(ctx, rawURL, opts)
	})
}

// Close releases resources held by the streaming protocol.
func (s *StreamRelay) Close() error {
	return s.registry.Relay(api.OpStreamClose, func(st api.Stream) error {
		return st.Close()
	})
}

var _ api.Stream = (*StreamRelay)(nil)

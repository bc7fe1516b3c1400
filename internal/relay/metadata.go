package relay

import (
	"context"
	"fmt"

	"mediarelay/internal/api"
)

// MetadataRelay implements api.Metadata by relaying to the protocol that
// serves each operation. Property-style reads fall back to zero values when
// no protocol provides them.
type MetadataRelay struct {
	registry *Registry[api.Metadata]
}

// NewMetadataRelay creates an empty relay.
func NewMetadataRelay(priorities api.PriorityList) *MetadataRelay {
	return &MetadataRelay{
		registry: NewRegistry[api.Metadata](api.CapabilityMetadata, api.MetadataOperations, priorities),
	}
}

// Registry exposes the underlying registry.
func (m *MetadataRelay) Registry() *Registry[api.Metadata] {
	return m.registry
}

// DeviceID returns a unique identifier for the device, or "" if unknown.
func (m *MetadataRelay) DeviceID() string {
	return Property(m.registry, api.OpDeviceID, "", func(md api.Metadata) string {
		return md.DeviceID()
	})
}

// Artwork returns artwork for what is currently playing, or nil.
//
// The size is a request, the device may return another size. Leave both
// dimensions zero for the default size, or one of them zero to keep the
// original aspect ratio.
func (m *MetadataRelay) Artwork(ctx context.Context, size api.ArtworkSize) (*api.ArtworkInfo, error) {
	if size.Width < 0 || size.Height < 0 {
		return nil, fmt.Errorf("invalid artwork size %dx%d", size.Width, size.Height)
	}
	return RelayValue(m.registry, api.OpArtwork, func(md api.Metadata) (*api.ArtworkInfo, error) {
		return md.Artwork(ctx, size)
	})
}

// ArtworkID returns an identifier for the current artwork, or "".
func (m *MetadataRelay) ArtworkID() string {
	return Property(m.registry, api.OpArtworkID, "", func(md api.Metadata) string {
		return md.ArtworkID()
	})
}

// Playing returns what is currently playing.
func (m *MetadataRelay) Playing(ctx context.Context) (api.Playing, error) {
	return RelayValue(m.registry, api.OpPlaying, func(md api.Metadata) (api.Playing, error) {
		return md.Playing(ctx)
	})
}

// App returns the app currently playing something. This is not necessarily
// the app in the foreground. Nil when nothing is playing or no protocol
// can tell.
func (m *MetadataRelay) App() *api.App {
	return Property(m.registry, api.OpApp, nil, func(md api.Metadata) *api.App {
		return md.App()
	})
}

var _ api.Metadata = (*MetadataRelay)(nil)

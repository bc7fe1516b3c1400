package simulator

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"image"
	"image/color"
	"image/png"

	"mediarelay/internal/api"
)

// DeviceID returns the configured device ID, or the service identifier.
func (b *Backend) DeviceID() string {
	b.record(api.CapabilityMetadata, api.OpDeviceID)
	return b.deviceID
}

// Artwork renders a solid PNG of the requested size for the current item.
// It returns nil when nothing with a title is playing.
func (b *Backend) Artwork(_ context.Context, size api.ArtworkSize) (*api.ArtworkInfo, error) {
	if err := b.serve(api.CapabilityMetadata, api.OpArtwork); err != nil {
		return nil, err
	}

	b.mu.Lock()
	title := b.playing.Title
	b.mu.Unlock()
	if title == "" {
		return nil, nil
	}

	width, height := size.Width, size.Height
	switch {
	case width == 0 && height == 0:
		width, height = api.DefaultArtworkSize.Width, api.DefaultArtworkSize.Width
	case width == 0:
		width = height
	case height == 0:
		height = width
	}

	sum := sha256.Sum256([]byte(title))
	fill := color.RGBA{R: sum[0], G: sum[1], B: sum[2], A: 0xff}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, b.operationError(api.OpArtwork, "encode artwork: %w", err)
	}
	return &api.ArtworkInfo{Bytes: buf.Bytes(), MimeType: "image/png", Width: width, Height: height}, nil
}

// ArtworkID identifies the artwork of the current item. It changes whenever
// the playing item changes and is empty when nothing is playing.
func (b *Backend) ArtworkID() string {
	b.record(api.CapabilityMetadata, api.OpArtworkID)
	b.mu.Lock()
	defer b.mu.Unlock()
	return itemHash(b.playing)
}

func itemHash(p api.Playing) string {
	if p.Title == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(p.Title + "\x00" + p.Artist + "\x00" + p.Album))
	return hex.EncodeToString(sum[:8])
}

// Playing returns a snapshot of the playing state.
func (b *Backend) Playing(_ context.Context) (api.Playing, error) {
	if err := b.serve(api.CapabilityMetadata, api.OpPlaying); err != nil {
		return api.Playing{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	playing := b.playing
	playing.Hash = itemHash(playing)
	return playing, nil
}

// App returns the app the current item plays in, or nil.
func (b *Backend) App() *api.App {
	b.record(api.CapabilityMetadata, api.OpApp)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.appID == "" {
		return nil
	}
	for _, app := range b.apps {
		if app.Identifier == b.appID {
			return &app
		}
	}
	return &api.App{Identifier: b.appID}
}

var _ api.Metadata = (*Backend)(nil)

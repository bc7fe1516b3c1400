package api

import (
	"fmt"
	"strings"
	"time"
)

// FeatureInfo is the live state of a feature together with feature-specific
// options (for instance the valid range of a position).
type FeatureInfo struct {
	State   FeatureState
	Options map[string]any
}

// UnsupportedFeature is the FeatureInfo reported when no protocol claims a feature.
func UnsupportedFeature() FeatureInfo {
	return FeatureInfo{State: FeatureStateUnsupported, Options: map[string]any{}}
}

// Playing describes what is currently playing on the device.
type Playing struct {
	MediaType    MediaType
	DeviceState  DeviceState
	Title        string
	Artist       string
	Album        string
	Genre        string
	TotalTime    *int
	Position     *int
	Shuffle      ShuffleState
	Repeat       RepeatState
	Hash         string
	ContentID    string
	SeriesName   string
	EpisodeCount *int
}

// String renders the playing state the way the CLI prints it.
func (p Playing) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Media type: %s\n", p.MediaType)
	fmt.Fprintf(&b, "Device state: %s\n", p.DeviceState)
	if p.Title != "" {
		fmt.Fprintf(&b, "       Title: %s\n", p.Title)
	}
	if p.Artist != "" {
		fmt.Fprintf(&b, "      Artist: %s\n", p.Artist)
	}
	if p.Album != "" {
		fmt.Fprintf(&b, "       Album: %s\n", p.Album)
	}
	if p.Genre != "" {
		fmt.Fprintf(&b, "       Genre: %s\n", p.Genre)
	}
	if p.Position != nil || p.TotalTime != nil {
		fmt.Fprintf(&b, "    Position: %s/%s\n", formatSeconds(p.Position), formatSeconds(p.TotalTime))
	}
	fmt.Fprintf(&b, "     Repeat: %s\n", p.Repeat)
	fmt.Fprintf(&b, "     Shuffle: %s", p.Shuffle)
	return b.String()
}

func formatSeconds(v *int) string {
	if v == nil {
		return "?"
	}
	return (time.Duration(*v) * time.Second).String()
}

// App describes an application on the device.
type App struct {
	Name       string
	Identifier string
}

// String makes App satisfy the fmt.Stringer interface.
func (a App) String() string {
	return fmt.Sprintf("App: %s (%s)", a.Name, a.Identifier)
}

// ArtworkInfo holds artwork for the currently playing media.
type ArtworkInfo struct {
	Bytes    []byte
	MimeType string
	Width    int
	Height   int
}

// ArtworkSize is a requested artwork size. A zero dimension means "unset":
// both unset requests the backend default size, one unset preserves the
// aspect ratio.
type ArtworkSize struct {
	Width  int
	Height int
}

// DefaultArtworkSize mirrors the width requested when the caller does not
// specify one.
var DefaultArtworkSize = ArtworkSize{Width: 512}

// PlayURLOptions carries optional parameters for Stream.PlayURL.
type PlayURLOptions struct {
	// StartPosition is the offset in seconds to start playback from.
	StartPosition int
	// Extra holds backend-specific options passed through verbatim.
	Extra map[string]any
}

// DeviceInfo holds general information about the device.
type DeviceInfo struct {
	OperatingSystem string
	Version         string
	BuildNumber     string
	Model           string
	MAC             string
}

// String makes DeviceInfo satisfy the fmt.Stringer interface.
func (d DeviceInfo) String() string {
	model := d.Model
	if model == "" {
		model = "Unknown"
	}
	os := d.OperatingSystem
	if os == "" {
		os = "Unknown OS"
	}
	if d.Version != "" {
		os += " " + d.Version
	}
	if d.BuildNumber != "" {
		os += " build " + d.BuildNumber
	}
	return model + ", " + os
}

// Service is the identity record a protocol backend advertises for the device.
type Service struct {
	Protocol   Protocol
	Identifier string
	Port       int
	Properties map[string]string
}

// String makes Service satisfy the fmt.Stringer interface.
func (s Service) String() string {
	return fmt.Sprintf("Protocol: %s, Port: %d, Identifier: %s", s.Protocol, s.Port, s.Identifier)
}

// DeviceConfig is the configuration of one device: its address, general
// information and the services advertised per protocol.
type DeviceConfig struct {
	Name     string
	Address  string
	Info     DeviceInfo
	Services []Service
}

// Service returns the service advertised for protocol p, or nil.
func (c DeviceConfig) Service(p Protocol) *Service {
	for i := range c.Services {
		if c.Services[i].Protocol == p {
			return &c.Services[i]
		}
	}
	return nil
}

// Identifier returns the identifier of the first service that has one.
func (c DeviceConfig) Identifier() string {
	for _, s := range c.Services {
		if s.Identifier != "" {
			return s.Identifier
		}
	}
	return ""
}

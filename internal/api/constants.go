package api

import (
	"fmt"
	"strconv"
	"strings"
)

// InputAction describes how a navigation key is pressed.
type InputAction int

const (
	// InputActionSingleTap is the default press.
	InputActionSingleTap InputAction = iota
	InputActionDoubleTap
	InputActionHold
)

// String makes InputAction satisfy the fmt.Stringer interface.
func (a InputAction) String() string {
	switch a {
	case InputActionSingleTap:
		return "SingleTap"
	case InputActionDoubleTap:
		return "DoubleTap"
	case InputActionHold:
		return "Hold"
	default:
		return "InputAction(" + strconv.Itoa(int(a)) + ")"
	}
}

// ShuffleState is the shuffle mode of the current queue.
type ShuffleState int

const (
	ShuffleOff ShuffleState = iota
	ShuffleAlbums
	ShuffleSongs
)

// String makes ShuffleState satisfy the fmt.Stringer interface.
func (s ShuffleState) String() string {
	switch s {
	case ShuffleOff:
		return "Off"
	case ShuffleAlbums:
		return "Albums"
	case ShuffleSongs:
		return "Songs"
	default:
		return "ShuffleState(" + strconv.Itoa(int(s)) + ")"
	}
}

// RepeatState is the repeat mode of the current queue.
type RepeatState int

const (
	RepeatOff RepeatState = iota
	RepeatTrack
	RepeatAll
)

// String makes RepeatState satisfy the fmt.Stringer interface.
func (r RepeatState) String() string {
	switch r {
	case RepeatOff:
		return "Off"
	case RepeatTrack:
		return "Track"
	case RepeatAll:
		return "All"
	default:
		return "RepeatState(" + strconv.Itoa(int(r)) + ")"
	}
}

// PowerState is the power state reported by the device.
type PowerState int

const (
	PowerStateUnknown PowerState = iota
	PowerStateOff
	PowerStateOn
)

// String makes PowerState satisfy the fmt.Stringer interface.
func (p PowerState) String() string {
	switch p {
	case PowerStateOff:
		return "Off"
	case PowerStateOn:
		return "On"
	default:
		return "Unknown"
	}
}

// ParsePowerState parses "on", "off" or "unknown" (case-insensitive).
func ParsePowerState(s string) (PowerState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on":
		return PowerStateOn, nil
	case "off":
		return PowerStateOff, nil
	case "", "unknown":
		return PowerStateUnknown, nil
	}
	return PowerStateUnknown, fmt.Errorf("invalid power state %q", s)
}

// DeviceState is the playback state of the device.
type DeviceState int

const (
	DeviceStateIdle DeviceState = iota
	DeviceStateLoading
	DeviceStatePaused
	DeviceStatePlaying
	DeviceStateStopped
	DeviceStateSeeking
)

// String makes DeviceState satisfy the fmt.Stringer interface.
func (d DeviceState) String() string {
	switch d {
	case DeviceStateIdle:
		return "Idle"
	case DeviceStateLoading:
		return "Loading"
	case DeviceStatePaused:
		return "Paused"
	case DeviceStatePlaying:
		return "Playing"
	case DeviceStateStopped:
		return "Stopped"
	case DeviceStateSeeking:
		return "Seeking"
	default:
		return "DeviceState(" + strconv.Itoa(int(d)) + ")"
	}
}

// ParseDeviceState parses a device state name (case-insensitive).
func ParseDeviceState(s string) (DeviceState, error) {
	for d := DeviceStateIdle; d <= DeviceStateSeeking; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return DeviceStateIdle, fmt.Errorf("invalid device state %q", s)
}

// MediaType is the kind of media currently playing.
type MediaType int

const (
	MediaTypeUnknown MediaType = iota
	MediaTypeVideo
	MediaTypeMusic
	MediaTypeTV
)

// String makes MediaType satisfy the fmt.Stringer interface.
func (m MediaType) String() string {
	switch m {
	case MediaTypeVideo:
		return "Video"
	case MediaTypeMusic:
		return "Music"
	case MediaTypeTV:
		return "TV"
	default:
		return "Unknown"
	}
}

// ParseMediaType parses a media type name (case-insensitive). Empty means
// unknown.
func ParseMediaType(s string) (MediaType, error) {
	for m := MediaTypeUnknown; m <= MediaTypeTV; m++ {
		if strings.EqualFold(m.String(), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	if strings.TrimSpace(s) == "" {
		return MediaTypeUnknown, nil
	}
	return MediaTypeUnknown, fmt.Errorf("invalid media type %q", s)
}

// FeatureState is the live availability of a feature.
type FeatureState int

const (
	// FeatureStateUnknown means the device supports the feature but its
	// availability cannot be determined right now.
	FeatureStateUnknown FeatureState = iota
	// FeatureStateUnsupported means no active protocol supports the feature.
	FeatureStateUnsupported
	// FeatureStateUnavailable means the feature is supported but not usable now.
	FeatureStateUnavailable
	// FeatureStateAvailable means the feature is supported and usable now.
	FeatureStateAvailable
)

// String makes FeatureState satisfy the fmt.Stringer interface.
func (s FeatureState) String() string {
	switch s {
	case FeatureStateUnknown:
		return "Unknown"
	case FeatureStateUnsupported:
		return "Unsupported"
	case FeatureStateUnavailable:
		return "Unavailable"
	case FeatureStateAvailable:
		return "Available"
	default:
		return "FeatureState(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseFeatureState parses a feature state name (case-insensitive).
func ParseFeatureState(s string) (FeatureState, error) {
	for st := FeatureStateUnknown; st <= FeatureStateAvailable; st++ {
		if strings.EqualFold(st.String(), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return FeatureStateUnknown, fmt.Errorf("invalid feature state %q", s)
}

// FeatureName names an independently queryable feature.
type FeatureName string

const (
	FeatureUp           FeatureName = "Up"
	FeatureDown         FeatureName = "Down"
	FeatureLeft         FeatureName = "Left"
	FeatureRight        FeatureName = "Right"
	FeaturePlay         FeatureName = "Play"
	FeaturePlayPause    FeatureName = "PlayPause"
	FeaturePause        FeatureName = "Pause"
	FeatureStop         FeatureName = "Stop"
	FeatureNext         FeatureName = "Next"
	FeaturePrevious     FeatureName = "Previous"
	FeatureSelect       FeatureName = "Select"
	FeatureMenu         FeatureName = "Menu"
	FeatureVolumeUp     FeatureName = "VolumeUp"
	FeatureVolumeDown   FeatureName = "VolumeDown"
	FeatureHome         FeatureName = "Home"
	FeatureHomeHold     FeatureName = "HomeHold"
	FeatureTopMenu      FeatureName = "TopMenu"
	FeatureSuspend      FeatureName = "Suspend"
	FeatureWakeUp       FeatureName = "WakeUp"
	FeatureSkipForward  FeatureName = "SkipForward"
	FeatureSkipBackward FeatureName = "SkipBackward"
	FeatureSetPosition  FeatureName = "SetPosition"
	FeatureSetShuffle   FeatureName = "SetShuffle"
	FeatureSetRepeat    FeatureName = "SetRepeat"
	FeatureTitle        FeatureName = "Title"
	FeatureArtist       FeatureName = "Artist"
	FeatureAlbum        FeatureName = "Album"
	FeatureGenre        FeatureName = "Genre"
	FeatureTotalTime    FeatureName = "TotalTime"
	FeaturePosition     FeatureName = "Position"
	FeatureShuffle      FeatureName = "Shuffle"
	FeatureRepeat       FeatureName = "Repeat"
	FeatureArtwork      FeatureName = "Artwork"
	FeaturePlayURL      FeatureName = "PlayUrl"
	FeaturePowerState   FeatureName = "PowerState"
	FeatureTurnOn       FeatureName = "TurnOn"
	FeatureTurnOff      FeatureName = "TurnOff"
	FeatureApp          FeatureName = "App"
	FeatureAppList      FeatureName = "AppList"
	FeatureLaunchApp    FeatureName = "LaunchApp"
	FeaturePushUpdates  FeatureName = "PushUpdates"
)

// AllFeatureNames returns every known feature name in a stable order.
func AllFeatureNames() []FeatureName {
	return []FeatureName{
		FeatureUp, FeatureDown, FeatureLeft, FeatureRight,
		FeaturePlay, FeaturePlayPause, FeaturePause, FeatureStop,
		FeatureNext, FeaturePrevious, FeatureSelect, FeatureMenu,
		FeatureVolumeUp, FeatureVolumeDown, FeatureHome, FeatureHomeHold,
		FeatureTopMenu, FeatureSuspend, FeatureWakeUp,
		FeatureSkipForward, FeatureSkipBackward, FeatureSetPosition,
		FeatureSetShuffle, FeatureSetRepeat,
		FeatureTitle, FeatureArtist, FeatureAlbum, FeatureGenre,
		FeatureTotalTime, FeaturePosition, FeatureShuffle, FeatureRepeat,
		FeatureArtwork, FeaturePlayURL,
		FeaturePowerState, FeatureTurnOn, FeatureTurnOff,
		FeatureApp, FeatureAppList, FeatureLaunchApp,
		FeaturePushUpdates,
	}
}

// ParseFeatureName resolves a feature name case-insensitively.
func ParseFeatureName(s string) (FeatureName, error) {
	for _, name := range AllFeatureNames() {
		if strings.EqualFold(string(name), strings.TrimSpace(s)) {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown feature %q", s)
}

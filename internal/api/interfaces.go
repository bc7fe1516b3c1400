package api

import (
	"context"
	"time"
)

// RemoteControl sends remote control commands to the device.
type RemoteControl interface {
	Up(ctx context.Context, action InputAction) error
	Down(ctx context.Context, action InputAction) error
	Left(ctx context.Context, action InputAction) error
	Right(ctx context.Context, action InputAction) error
	Select(ctx context.Context, action InputAction) error
	Menu(ctx context.Context, action InputAction) error
	Home(ctx context.Context, action InputAction) error
	HomeHold(ctx context.Context) error
	TopMenu(ctx context.Context) error

	Play(ctx context.Context) error
	PlayPause(ctx context.Context) error
	Pause(ctx context.Context) error
	Stop(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error

	VolumeUp(ctx context.Context) error
	VolumeDown(ctx context.Context) error

	Suspend(ctx context.Context) error
	WakeUp(ctx context.Context) error

	// SkipForward and SkipBackward skip a time interval decided by the app,
	// typically 15-30s.
	SkipForward(ctx context.Context) error
	SkipBackward(ctx context.Context) error

	// SetPosition seeks to pos seconds into the current media.
	SetPosition(ctx context.Context, pos int) error
	SetShuffle(ctx context.Context, state ShuffleState) error
	SetRepeat(ctx context.Context, state RepeatState) error
}

// Metadata retrieves information about what is playing.
//
// DeviceID, ArtworkID and App are property-style reads: they never fail and
// fall back to a zero value when unavailable.
type Metadata interface {
	DeviceID() string
	Artwork(ctx context.Context, size ArtworkSize) (*ArtworkInfo, error)
	ArtworkID() string
	Playing(ctx context.Context) (Playing, error)
	// App returns the app currently playing something, or nil when nothing
	// is playing.
	App() *App
}

// Power controls and reports the device power state.
type Power interface {
	PowerState() PowerState
	// TurnOn and TurnOff return once the command is issued, or, when
	// awaitNewState is set, once the device reports the requested state.
	TurnOn(ctx context.Context, awaitNewState bool) error
	TurnOff(ctx context.Context, awaitNewState bool) error
}

// PowerListener receives power state transitions.
type PowerListener interface {
	PowerStateUpdate(oldState, newState PowerState)
}

// PowerNotifier is implemented by power backends that report transitions.
type PowerNotifier interface {
	SetPowerListener(listener PowerListener)
}

// Stream plays media on the device.
type Stream interface {
	PlayURL(ctx context.Context, url string, opts PlayURLOptions) error
	Close() error
}

// Apps lists and launches applications.
type Apps interface {
	AppList(ctx context.Context) ([]App, error)
	LaunchApp(ctx context.Context, bundleID string) error
}

// Features reports the live state of individual features.
type Features interface {
	GetFeature(name FeatureName) FeatureInfo
}

// PushUpdater delivers playing-state updates to a listener as they happen.
type PushUpdater interface {
	Start(initialDelay time.Duration) error
	Stop()
	Active() bool
	SetListener(listener PushListener)
	Listener() PushListener
}

// PushListener receives playing-state updates from a PushUpdater.
type PushListener interface {
	PlayStatusUpdate(updater PushUpdater, playing Playing)
	PlayStatusError(updater PushUpdater, err error)
}

// DeviceListener receives connection lifecycle notifications.
type DeviceListener interface {
	ConnectionLost(err error)
	ConnectionClosed()
}

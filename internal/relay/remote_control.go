package relay

import (
	"context"
	"fmt"

	"mediarelay/internal/api"
)

// RemoteControlRelay implements api.RemoteControl by relaying every command
// to the protocol that serves it.
type RemoteControlRelay struct {
	registry *Registry[api.RemoteControl]
}

// NewRemoteControlRelay creates an empty relay.
func NewRemoteControlRelay(priorities api.PriorityList) *RemoteControlRelay {
	return &RemoteControlRelay{
		registry: NewRegistry[api.RemoteControl](api.CapabilityRemoteControl, api.RemoteControlOperations, priorities),
	}
}

// Registry exposes the underlying registry.
func (r *RemoteControlRelay) Registry() *Registry[api.RemoteControl] {
	return r.registry
}

// Up presses key up.
func (r *RemoteControlRelay) Up(ctx context.Context, action api.InputAction) error {
	return r.registry.Relay(api.OpUp, func(rc api.RemoteControl) error { return rc.Up(ctx, action) })
}

// Down presses key down.
func (r *RemoteControlRelay) Down(ctx context.Context, action api.InputAction) error {
	return r.registry.Relay(api.OpDown, func(rc api.RemoteControl) error { return rc.Down(ctx, action) })
}

// Left presses key left.
func (r *RemoteControlRelay) Left(ctx context.Context, action api.InputAction) error {
	return r.registry.Relay(api.OpLeft, func(rc api.RemoteControl) error { return rc.Left(ctx, action) })
}

// Right presses key right.
func (r *RemoteControlRelay) Right(ctx context.Context, action api.InputAction) error {
	return r.registry.Relay(api.OpRight, func(rc api.RemoteControl) error { return rc.Right(ctx, action) })
}

// Select presses key select.
func (r *RemoteControlRelay) Select(ctx context.Context, action api.InputAction) error {
	return r.registry.Relay(api.OpSelect, func(rc api.RemoteControl) error { return rc.Select(ctx, action) })
}

// Menu presses key menu.
func (r *RemoteControlRelay) Menu(ctx context.Context, action api.InputAction) error {
	return r.registry.Relay(api.OpMenu, func(rc api.RemoteControl) error { return rc.Menu(ctx, action) })
}

// Home presses key home.
func (r *RemoteControlRelay) Home(ctx context.Context, action api.InputAction) error {
	return r.registry.Relay(api.OpHome, func(rc api.RemoteControl) error { return rc.Home(ctx, action) })
}

// HomeHold holds key home.
func (r *RemoteControlRelay) HomeHold(ctx context.Context) error {
	return r.registry.Relay(api.OpHomeHold, func(rc api.RemoteControl) error { return rc.HomeHold(ctx) })
}

// TopMenu goes to the main menu (long press menu).
func (r *RemoteControlRelay) TopMenu(ctx context.Context) error {
	return r.registry.Relay(api.OpTopMenu, func(rc api.RemoteControl) error { return rc.TopMenu(ctx) })
}

// Play presses key play.
func (r *RemoteControlRelay) Play(ctx context.Context) error {
	return r.registry.Relay(api.OpPlay, func(rc api.RemoteControl) error { return rc.Play(ctx) })
}

// PlayPause toggles between play and pause.
func (r *RemoteControlRelay) PlayPause(ctx context.Context) error {
	return r.registry.Relay(api.OpPlayPause, func(rc api.RemoteControl) error { return rc.PlayPause(ctx) })
}

// Pause presses key pause.
func (r *RemoteControlRelay) Pause(ctx context.Context) error {
	return r.registry.Relay(api.OpPause, func(rc api.RemoteControl) error { return rc.Pause(ctx) })
}

// Stop presses key stop.
func (r *RemoteControlRelay) Stop(ctx context.Context) error {
	return r.registry.Relay(api.OpStop, func(rc api.RemoteControl) error { return rc.Stop(ctx) })
}

// Next presses key next.
func (r *RemoteControlRelay) Next(ctx context.Context) error {
	return r.registry.Relay(api.OpNext, func(rc api.RemoteControl) error { return rc.Next(ctx) })
}

// Previous presses key previous.
func (r *RemoteControlRelay) Previous(ctx context.Context) error {
	return r.registry.Relay(api.OpPrevious, func(rc api.RemoteControl) error { return rc.Previous(ctx) })
}

// VolumeUp presses key volume up.
func (r *RemoteControlRelay) VolumeUp(ctx context.Context) error {
	return r.registry.Relay(api.OpVolumeUp, func(rc api.RemoteControl) error { return rc.VolumeUp(ctx) })
}

// VolumeDown presses key volume down.
func (r *RemoteControlRelay) VolumeDown(ctx context.Context) error {
	return r.registry.Relay(api.OpVolumeDown, func(rc api.RemoteControl) error { return rc.VolumeDown(ctx) })
}

// Suspend suspends the device.
func (r *RemoteControlRelay) Suspend(ctx context.Context) error {
	return r.registry.Relay(api.OpSuspend, func(rc api.RemoteControl) error { return rc.Suspend(ctx) })
}

// WakeUp wakes up the device.
func (r *RemoteControlRelay) WakeUp(ctx context.Context) error {
	return r.registry.Relay(api.OpWakeUp, func(rc api.RemoteControl) error { return rc.WakeUp(ctx) })
}

// SkipForward skips forward a time interval.
func (r *RemoteControlRelay) SkipForward(ctx context.Context) error {
	return r.registry.Relay(api.OpSkipForward, func(rc api.RemoteControl) error { return rc.SkipForward(ctx) })
}

// SkipBackward skips backwards a time interval.
func (r *RemoteControlRelay) SkipBackward(ctx context.Context) error {
	return r.registry.Relay(api.OpSkipBackward, func(rc api.RemoteControl) error { return rc.SkipBackward(ctx) })
}

// SetPosition seeks in the current media. Negative positions are rejected
// before any protocol is asked.
func (r *RemoteControlRelay) SetPosition(ctx context.Context, pos int) error {
	if pos < 0 {
		return fmt.Errorf("invalid position %d: must not be negative", pos)
	}
	return r.registry.Relay(api.OpSetPosition, func(rc api.RemoteControl) error { return rc.SetPosition(ctx, pos) })
}

// SetShuffle changes the shuffle mode.
func (r *RemoteControlRelay) SetShuffle(ctx context.Context, state api.ShuffleState) error {
	return r.registry.Relay(api.OpSetShuffle, func(rc api.RemoteControl) error { return rc.SetShuffle(ctx, state) })
}

// SetRepeat changes the repeat mode.
func (r *RemoteControlRelay) SetRepeat(ctx context.Context, state api.RepeatState) error {
	return r.registry.Relay(api.OpSetRepeat, func(rc api.RemoteControl) error { return rc.SetRepeat(ctx, state) })
}

var _ api.RemoteControl = (*RemoteControlRelay)(nil)

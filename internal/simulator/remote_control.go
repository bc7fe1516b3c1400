package simulator

import (
	"context"

	"mediarelay/internal/api"
)

func (b *Backend) press(op api.Operation, action api.InputAction) error {
	if err := b.serve(api.CapabilityRemoteControl, op); err != nil {
		return err
	}
	b.mu.Lock()
	b.lastAction = action
	b.mu.Unlock()
	return nil
}

func (b *Backend) Up(_ context.Context, action api.InputAction) error {
	return b.press(api.OpUp, action)
}

func (b *Backend) Down(_ context.Context, action api.InputAction) error {
	return b.press(api.OpDown, action)
}

func (b *Backend) Left(_ context.Context, action api.InputAction) error {
	return b.press(api.OpLeft, action)
}

func (b *Backend) Right(_ context.Context, action api.InputAction) error {
	return b.press(api.OpRight, action)
}

func (b *Backend) Select(_ context.Context, action api.InputAction) error {
	return b.press(api.OpSelect, action)
}

func (b *Backend) Menu(_ context.Context, action api.InputAction) error {
	return b.press(api.OpMenu, action)
}

func (b *Backend) Home(_ context.Context, action api.InputAction) error {
	return b.press(api.OpHome, action)
}

func (b *Backend) HomeHold(_ context.Context) error {
	return b.press(api.OpHomeHold, api.InputActionHold)
}

func (b *Backend) TopMenu(_ context.Context) error {
	return b.press(api.OpTopMenu, api.InputActionSingleTap)
}

// playback serves op and moves the device to state.
func (b *Backend) playback(op api.Operation, state api.DeviceState) error {
	if err := b.serve(api.CapabilityRemoteControl, op); err != nil {
		return err
	}
	b.update(func(p *api.Playing) { p.DeviceState = state })
	return nil
}

func (b *Backend) Play(_ context.Context) error {
	return b.playback(api.OpPlay, api.DeviceStatePlaying)
}

func (b *Backend) Pause(_ context.Context) error {
	return b.playback(api.OpPause, api.DeviceStatePaused)
}

func (b *Backend) Stop(_ context.Context) error {
	return b.playback(api.OpStop, api.DeviceStateStopped)
}

func (b *Backend) PlayPause(_ context.Context) error {
	if err := b.serve(api.CapabilityRemoteControl, api.OpPlayPause); err != nil {
		return err
	}
	b.update(func(p *api.Playing) {
		if p.DeviceState == api.DeviceStatePlaying {
			p.DeviceState = api.DeviceStatePaused
		} else {
			p.DeviceState = api.DeviceStatePlaying
		}
	})
	return nil
}

// skipTrack starts the next or previous item from the beginning.
func (b *Backend) skipTrack(op api.Operation) error {
	if err := b.serve(api.CapabilityRemoteControl, op); err != nil {
		return err
	}
	b.update(func(p *api.Playing) {
		zero := 0
		p.Position = &zero
		p.DeviceState = api.DeviceStatePlaying
	})
	return nil
}

func (b *Backend) Next(_ context.Context) error {
	return b.skipTrack(api.OpNext)
}

func (b *Backend) Previous(_ context.Context) error {
	return b.skipTrack(api.OpPrevious)
}

func (b *Backend) VolumeUp(_ context.Context) error {
	return b.serve(api.CapabilityRemoteControl, api.OpVolumeUp)
}

func (b *Backend) VolumeDown(_ context.Context) error {
	return b.serve(api.CapabilityRemoteControl, api.OpVolumeDown)
}

func (b *Backend) Suspend(_ context.Context) error {
	if err := b.serve(api.CapabilityRemoteControl, api.OpSuspend); err != nil {
		return err
	}
	b.power.set(api.PowerStateOff)
	return nil
}

func (b *Backend) WakeUp(_ context.Context) error {
	if err := b.serve(api.CapabilityRemoteControl, api.OpWakeUp); err != nil {
		return err
	}
	b.power.set(api.PowerStateOn)
	return nil
}

// skipInterval is how far SkipForward and SkipBackward move, in seconds.
const skipInterval = 15

func (b *Backend) skipTime(op api.Operation, delta int) error {
	if err := b.serve(api.CapabilityRemoteControl, op); err != nil {
		return err
	}
	b.update(func(p *api.Playing) {
		pos := delta
		if p.Position != nil {
			pos += *p.Position
		}
		p.Position = clampPosition(pos, p.TotalTime)
	})
	return nil
}

func (b *Backend) SkipForward(_ context.Context) error {
	return b.skipTime(api.OpSkipForward, skipInterval)
}

func (b *Backend) SkipBackward(_ context.Context) error {
	return b.skipTime(api.OpSkipBackward, -skipInterval)
}

func (b *Backend) SetPosition(_ context.Context, pos int) error {
	if err := b.serve(api.CapabilityRemoteControl, api.OpSetPosition); err != nil {
		return err
	}
	b.mu.Lock()
	total := b.playing.TotalTime
	b.mu.Unlock()
	if pos < 0 || (total != nil && pos > *total) {
		return b.operationError(api.OpSetPosition, "position %d out of range", pos)
	}
	b.update(func(p *api.Playing) { p.Position = &pos })
	return nil
}

func (b *Backend) SetShuffle(_ context.Context, state api.ShuffleState) error {
	if err := b.serve(api.CapabilityRemoteControl, api.OpSetShuffle); err != nil {
		return err
	}
	b.update(func(p *api.Playing) { p.Shuffle = state })
	return nil
}

func (b *Backend) SetRepeat(_ context.Context, state api.RepeatState) error {
	if err := b.serve(api.CapabilityRemoteControl, api.OpSetRepeat); err != nil {
		return err
	}
	b.update(func(p *api.Playing) { p.Repeat = state })
	return nil
}

func clampPosition(pos int, total *int) *int {
	if pos < 0 {
		pos = 0
	}
	if total != nil && pos > *total {
		pos = *total
	}
	return &pos
}

// LastAction returns the input action of the most recent navigation press.
func (b *Backend) LastAction() api.InputAction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAction
}

var _ api.RemoteControl = (*Backend)(nil)

package simulator

import (
	"errors"
	"sync"
	"time"

	"mediarelay/internal/api"
)

// pushUpdater delivers the backend's playing state to a listener: once after
// the initial delay, then on every change.
type pushUpdater struct {
	backend  *Backend
	listener api.StateProducer[api.PushListener]

	mu     sync.Mutex
	active bool
	timer  *time.Timer
}

func newPushUpdater(b *Backend) *pushUpdater {
	return &pushUpdater{backend: b}
}

// Start begins delivering updates. Starting an active updater does nothing.
func (u *pushUpdater) Start(initialDelay time.Duration) error {
	if !u.backend.Connected() {
		return &api.OperationError{
			Protocol:  u.backend.protocol,
			Operation: api.OpPushStart,
			Err:       errors.New("not connected"),
		}
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.active {
		return nil
	}
	u.active = true
	u.timer = time.AfterFunc(initialDelay, func() {
		u.backend.mu.Lock()
		playing := u.backend.playing
		u.backend.mu.Unlock()
		u.notify(playing)
	})
	return nil
}

func (u *pushUpdater) Stop() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.active = false
	if u.timer != nil {
		u.timer.Stop()
		u.timer = nil
	}
}

func (u *pushUpdater) Active() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.active
}

func (u *pushUpdater) SetListener(listener api.PushListener) {
	u.listener.SetListener(listener)
}

func (u *pushUpdater) Listener() api.PushListener {
	listener, _ := u.listener.Listener()
	return listener
}

func (u *pushUpdater) notify(playing api.Playing) {
	if !u.Active() {
		return
	}
	playing.Hash = itemHash(playing)
	if listener, ok := u.listener.Listener(); ok && listener != nil {
		listener.PlayStatusUpdate(u, playing)
	}
}

// fail reports err to the listener of an active updater and stops it.
func (u *pushUpdater) fail(err error) {
	if !u.Active() {
		return
	}
	u.Stop()
	if listener, ok := u.listener.Listener(); ok && listener != nil {
		listener.PlayStatusError(u, err)
	}
}

var _ api.PushUpdater = (*pushUpdater)(nil)

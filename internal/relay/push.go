package relay

import (
	"time"

	"mediarelay/internal/api"
)

// PushUpdaterRelay hands out the push updater of the highest priority
// protocol. Push updates are a single live object per device, so they are
// not resolved per operation.
type PushUpdaterRelay struct {
	registry *Registry[api.PushUpdater]
	fallback *unsupportedPushUpdater
}

// NewPushUpdaterRelay creates an empty relay.
func NewPushUpdaterRelay(priorities api.PriorityList) *PushUpdaterRelay {
	return &PushUpdaterRelay{
		registry: NewRegistry[api.PushUpdater](api.CapabilityPushUpdater, api.PushUpdaterOperations, priorities),
		fallback: &unsupportedPushUpdater{},
	}
}

// Registry exposes the underlying registry.
func (r *PushUpdaterRelay) Registry() *Registry[api.PushUpdater] {
	return r.registry
}

// Updater returns the main instance, or an updater that reports push updates
// as unsupported when no protocol provides one.
func (r *PushUpdaterRelay) Updater() api.PushUpdater {
	if updater, _, ok := r.registry.MainInstance(); ok {
		return updater
	}
	return r.fallback
}

// unsupportedPushUpdater stands in when no protocol produces push updates.
// It keeps the listener so callers can treat it like a real updater, but
// Start always reports that push updates are unsupported.
type unsupportedPushUpdater struct {
	listener api.StateProducer[api.PushListener]
}

func (u *unsupportedPushUpdater) Start(time.Duration) error {
	return api.NewUnsupportedError(api.CapabilityPushUpdater, api.OpPushStart)
}

func (u *unsupportedPushUpdater) Stop() {}

func (u *unsupportedPushUpdater) Active() bool { return false }

func (u *unsupportedPushUpdater) SetListener(listener api.PushListener) {
	u.listener.SetListener(listener)
}

func (u *unsupportedPushUpdater) Listener() api.PushListener {
	listener, _ := u.listener.Listener()
	return listener
}

var _ api.PushUpdater = (*unsupportedPushUpdater)(nil)

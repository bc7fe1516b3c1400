package relay

import "mediarelay/internal/api"

// Option configures a Facade.
type Option func(*Facade)

// WithPriorities replaces the default protocol priority list. The list is
// copied, later changes to priorities have no effect.
func WithPriorities(priorities api.PriorityList) Option {
	return func(f *Facade) {
		if len(priorities) > 0 {
			f.priorities = priorities.Clone()
		}
	}
}

// WithCallRecorder installs a recorder observing every relayed call.
func WithCallRecorder(recorder CallRecorder) Option {
	return func(f *Facade) {
		f.recorder = recorder
	}
}

// WithRollbackOnConnectFailure makes Connect close the backends it already
// connected when a later one fails. By default they are left connected.
func WithRollbackOnConnectFailure(enabled bool) Option {
	return func(f *Facade) {
		f.rollbackOnConnectFailure = enabled
	}
}

// WithPowerDedupPolicy sets how repeated power notifications are handled.
// The default forwards every notification.
func WithPowerDedupPolicy(policy PowerDedupPolicy) Option {
	return func(f *Facade) {
		f.powerDedup = policy
	}
}

// WithID sets the session ID instead of generating one.
func WithID(id string) Option {
	return func(f *Facade) {
		if id != "" {
			f.id = id
		}
	}
}

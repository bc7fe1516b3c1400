package relay

import (
	"context"
	"fmt"

	"mediarelay/internal/api"
)

// Binding is one capability implementation contributed by a protocol,
// together with the operations it actually provides.
type Binding[T any] struct {
	Instance   T
	Operations []api.Operation
}

// Bind creates a Binding declaring ops.
func Bind[T any](instance T, ops ...api.Operation) *Binding[T] {
	return &Binding[T]{Instance: instance, Operations: ops}
}

// BindAll creates a Binding declaring every operation in set.
func BindAll[T any](instance T, set api.OperationSet) *Binding[T] {
	return &Binding[T]{Instance: instance, Operations: set.List()}
}

// SetupData is everything a protocol backend contributes to a Facade. It is
// produced by backend setup code and consumed once by Facade.AddProtocol.
type SetupData struct {
	// Protocol identifies the backend.
	Protocol api.Protocol

	// Connect establishes the backend connection. Nil means nothing to do.
	Connect func(ctx context.Context) error

	// Close tears the backend down. It must not block for long and is
	// called exactly once by Facade.Close. Nil means nothing to do.
	Close func() error

	// Features lists the features the backend can report on. They are
	// answered by FeatureSource.
	Features      []api.FeatureName
	FeatureSource api.Features

	// Service is the identity the backend advertises. When nil the service
	// configured for Protocol on the device is used.
	Service *api.Service

	RemoteControl *Binding[api.RemoteControl]
	Metadata      *Binding[api.Metadata]
	Power         *Binding[api.Power]
	Stream        *Binding[api.Stream]
	Apps          *Binding[api.Apps]

	// PushUpdater is the backend's push updater, if it has one.
	PushUpdater api.PushUpdater
}

// Validate checks the record for setup mistakes that can be reported as
// plain errors.
func (s SetupData) Validate() error {
	if _, err := api.ParseProtocol(s.Protocol.String()); err != nil {
		return fmt.Errorf("setup data has unknown protocol %d", int(s.Protocol))
	}
	if len(s.Features) > 0 && s.FeatureSource == nil {
		return fmt.Errorf("%s declares %d features without a feature source", s.Protocol, len(s.Features))
	}
	if s.Service != nil && s.Service.Protocol != 0 && s.Service.Protocol != s.Protocol {
		return fmt.Errorf("%s advertises a service for %s", s.Protocol, s.Service.Protocol)
	}
	return nil
}

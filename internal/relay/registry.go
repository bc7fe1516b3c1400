package relay

import (
	"slices"

	"mediarelay/internal/api"
	"mediarelay/pkg/logging"
)

// Outcome classifies a relayed call for a CallRecorder.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeError       Outcome = "error"
	OutcomeUnsupported Outcome = "unsupported"
)

// CallRecorder observes every call relayed by a Registry. Protocol is zero
// when the outcome is OutcomeUnsupported.
type CallRecorder interface {
	RecordCall(capability string, op api.Operation, protocol api.Protocol, outcome Outcome)
}

// binding is one protocol's contribution to a registry.
type binding[T any] struct {
	instance T
	declared api.OperationSet
}

// Registry binds the protocol backends implementing one capability interface
// and decides, per operation, which of them serves a call.
//
// Resolution walks the bound protocols ranked by the priority list, with
// unlisted protocols after the listed ones in the order they were first
// registered, and picks the first whose declared operations contain the
// requested one. Exactly one backend is
// invoked per call; when it fails the call fails, lower priority backends are
// never tried as a fallback.
//
// Register and Unregister must not run concurrently with call dispatch. All
// bindings are expected to be set up before the first call is relayed, so
// the registry does no locking of its own.
type Registry[T any] struct {
	capability string
	operations api.OperationSet
	priorities api.PriorityList
	bindings   map[api.Protocol]binding[T]
	// seen holds every protocol ever registered, in first registration order.
	seen     []api.Protocol
	recorder CallRecorder
}

// NewRegistry creates an empty registry for one capability interface.
//
// Args:
//   - capability: name of the interface, used in errors and logs
//   - operations: every operation the interface defines
//   - priorities: preference order used to resolve calls
func NewRegistry[T any](capability string, operations api.OperationSet, priorities api.PriorityList) *Registry[T] {
	return &Registry[T]{
		capability: capability,
		operations: operations,
		priorities: priorities.Clone(),
		bindings:   make(map[api.Protocol]binding[T]),
	}
}

// Capability returns the name of the capability interface.
func (r *Registry[T]) Capability() string {
	return r.capability
}

// SetRecorder installs a recorder that observes relayed calls. Passing nil
// disables recording.
func (r *Registry[T]) SetRecorder(recorder CallRecorder) {
	r.recorder = recorder
}

// Register binds instance as protocol p's implementation, replacing any
// earlier binding for p. declared lists the operations the instance
// actually provides.
//
// Declaring an operation the interface does not define is a bug in setup
// code and panics with *api.InvariantViolationError.
func (r *Registry[T]) Register(p api.Protocol, instance T, declared ...api.Operation) {
	if missing := r.operations.Missing(declared); len(missing) > 0 {
		panic(api.NewInvariantViolation("%s declares operations %v not defined by %s", p, missing, r.capability))
	}
	r.note(p)
	if _, exists := r.bindings[p]; exists {
		logging.Debug("Relay", "Replacing %s binding for %s", r.capability, p)
	}
	r.bindings[p] = binding[T]{instance: instance, declared: api.NewOperationSet(declared...)}
	logging.Debug("Relay", "Registered %s for %s with %d operations", p, r.capability, len(declared))
}

// note fixes p's place among unlisted protocols on first sight.
func (r *Registry[T]) note(p api.Protocol) {
	if slices.Contains(r.seen, p) {
		return
	}
	r.seen = append(r.seen, p)
	if !r.priorities.Contains(p) {
		logging.Debug("Relay", "%s is not in the priority list (%s), ranking it after listed protocols for %s",
			p, r.priorities, r.capability)
	}
}

// Unregister removes protocol p's binding. It reports whether a binding existed.
func (r *Registry[T]) Unregister(p api.Protocol) bool {
	if _, exists := r.bindings[p]; !exists {
		return false
	}
	delete(r.bindings, p)
	logging.Debug("Relay", "Unregistered %s from %s", p, r.capability)
	return true
}

// Get returns the instance bound for protocol p.
func (r *Registry[T]) Get(p api.Protocol) (T, bool) {
	b, ok := r.bindings[p]
	return b.instance, ok
}

// Protocols returns the bound protocols in resolution order.
func (r *Registry[T]) Protocols() []api.Protocol {
	var out []api.Protocol
	for _, p := range r.priorities.Rank(r.seen) {
		if _, ok := r.bindings[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Resolve returns the instance that serves op: the first protocol in
// resolution order whose declared operations contain op. The boolean is
// false when no bound protocol declares op.
func (r *Registry[T]) Resolve(op api.Operation) (T, api.Protocol, bool) {
	for _, p := range r.Protocols() {
		if b := r.bindings[p]; b.declared.Has(op) {
			return b.instance, p, true
		}
	}
	var zero T
	return zero, 0, false
}

// MainInstance returns the instance bound for the first protocol in
// resolution order, regardless of which operations it declares.
func (r *Registry[T]) MainInstance() (T, api.Protocol, bool) {
	if protocols := r.Protocols(); len(protocols) > 0 {
		return r.bindings[protocols[0]].instance, protocols[0], true
	}
	var zero T
	return zero, 0, false
}

// Relay resolves op and invokes call with the resolved instance. If no
// protocol declares op, an *api.UnsupportedError is returned and nothing is
// invoked. Errors from call are returned unchanged.
func (r *Registry[T]) Relay(op api.Operation, call func(T) error) error {
	_, err := RelayValue(r, op, func(instance T) (struct{}, error) {
		return struct{}{}, call(instance)
	})
	return err
}

// RelayValue is Relay for operations that return a value.
func RelayValue[T, V any](r *Registry[T], op api.Operation, call func(T) (V, error)) (V, error) {
	instance, p, ok := r.Resolve(op)
	if !ok {
		r.record(op, 0, OutcomeUnsupported)
		var zero V
		return zero, api.NewUnsupportedError(r.capability, op)
	}

	logging.Debug("Relay", "Relaying %s.%s to %s", r.capability, op, p)
	value, err := call(instance)
	if err != nil {
		r.record(op, p, OutcomeError)
		return value, err
	}
	r.record(op, p, OutcomeSuccess)
	return value, nil
}

// Property resolves a property-style read. When no protocol declares op the
// fallback value is returned instead of an error.
func Property[T, V any](r *Registry[T], op api.Operation, fallback V, get func(T) V) V {
	instance, p, ok := r.Resolve(op)
	if !ok {
		r.record(op, 0, OutcomeUnsupported)
		return fallback
	}
	r.record(op, p, OutcomeSuccess)
	return get(instance)
}

func (r *Registry[T]) record(op api.Operation, p api.Protocol, outcome Outcome) {
	if r.recorder != nil {
		r.recorder.RecordCall(r.capability, op, p, outcome)
	}
}

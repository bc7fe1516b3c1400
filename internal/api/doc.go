// Package api defines the vocabulary shared by the relay, the protocol
// backends and the CLI.
//
// # Capability interfaces
//
// A device is controlled through five capability interfaces, each of which
// any protocol backend may implement in part:
//
//   - RemoteControl: buttons, seeking, shuffle and repeat
//   - Metadata: device identity, artwork and what is playing
//   - Power: power state, turning on and off, power listener
//   - Stream: playing a URL on the device
//   - Apps: listing and launching apps
//
// PushUpdater and Features complete the set. Every method of a capability
// interface has an Operation name (see operations.go); a backend declares
// which operations it really provides and the relay routes each call to the
// highest priority protocol declaring it.
//
// # Errors
//
// UnsupportedError means no protocol declared the operation and nothing was
// contacted. ConnectionError and OperationError come from the backends and
// are passed through untouched. Use IsUnsupported, IsConnectionError and
// IsOperationError to inspect wrapped errors.
//
// # Listeners
//
// StateProducer holds the single listener of a producer. PowerListener,
// PushListener and DeviceListener are the callbacks the relay forwards
// backend events to.
package api

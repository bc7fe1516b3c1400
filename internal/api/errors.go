package api

import (
	"errors"
	"fmt"
)

var (
	// ErrFacadeClosed is returned when a closed facade is used again.
	ErrFacadeClosed = errors.New("facade is closed")

	// ErrNoProtocols is returned by identity lookups when no protocol has
	// been added yet.
	ErrNoProtocols = errors.New("no protocol has been added")
)

// UnsupportedError reports that no registered protocol provides the requested
// operation. It is distinct from a backend refusing or failing the call: when
// this error is returned no backend was contacted.
type UnsupportedError struct {
	// Capability is the capability interface that was asked, e.g. "Apps".
	Capability string

	// Operation is the operation nobody declared.
	Operation Operation
}

// Error implements the error interface for UnsupportedError.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s.%s is not supported by any active protocol", e.Capability, e.Operation)
}

// NewUnsupportedError creates an UnsupportedError for capability and op.
func NewUnsupportedError(capability string, op Operation) *UnsupportedError {
	return &UnsupportedError{Capability: capability, Operation: op}
}

// IsUnsupported checks if an error is or wraps an UnsupportedError.
//
// Example:
//
//	if err := f.Apps().LaunchApp(ctx, id); api.IsUnsupported(err) {
//	    // skip gracefully, nothing can launch apps on this device
//	}
func IsUnsupported(err error) bool {
	var unsupported *UnsupportedError
	return errors.As(err, &unsupported)
}

// ConnectionError reports that a protocol backend failed to connect.
type ConnectionError struct {
	Protocol Protocol
	Err      error
}

// Error implements the error interface for ConnectionError.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect %s: %v", e.Protocol, e.Err)
}

// Unwrap returns the underlying connect failure.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConnectionError checks if an error is or wraps a ConnectionError.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// OperationError is returned by backends when the device or transport fails
// an operation. The relay passes it through untouched.
type OperationError struct {
	Protocol  Protocol
	Operation Operation
	Err       error
}

// Error implements the error interface for OperationError.
func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Protocol, e.Operation, e.Err)
}

// Unwrap returns the underlying failure.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// IsOperationError checks if an error is or wraps an OperationError.
func IsOperationError(err error) bool {
	var opErr *OperationError
	return errors.As(err, &opErr)
}

// InvariantViolationError signals a bug in setup code, such as declaring an
// operation outside a capability interface or registered protocols without
// any advertised service. It is raised with panic and is not meant to be
// recovered from.
type InvariantViolationError struct {
	Message string
}

// Error implements the error interface for InvariantViolationError.
func (e *InvariantViolationError) Error() string {
	return "invariant violation: " + e.Message
}

// NewInvariantViolation formats an InvariantViolationError.
func NewInvariantViolation(format string, args ...any) *InvariantViolationError {
	return &InvariantViolationError{Message: fmt.Sprintf(format, args...)}
}

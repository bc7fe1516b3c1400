// Package app bootstraps mediarelay for the CLI.
//
// NewApplication loads config.yaml, initializes logging and assembles one
// relay.Facade for the configured device: a shared session.Manager, a
// metrics.Recorder observing every relayed call, and one simulator backend
// per configured service, added in configuration order.
//
// Execution is driven by the cmd package: exec and features connect, run
// and close; bridge additionally runs RunBridge until interrupted.
package app

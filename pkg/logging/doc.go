// Package logging provides subsystem-tagged structured logging for mediarelay.
//
// The package wraps Go's slog with a small, global API so that every package
// logs the same way without passing a logger around.
//
// # Usage
//
//	logging.InitWithFormat(logging.LevelInfo, logging.FormatText, os.Stderr)
//
//	logging.Info("Facade", "Added protocol %s", p)
//	logging.Debug("Relay", "Relaying %s.%s to %s", capability, op, p)
//	logging.Warn("Facade", "Closing %s failed: %v", p, err)
//	logging.Error("Bridge", err, "Failed to publish to %s", topic)
//
// Every entry carries a "subsystem" attribute. Errors passed to Error are
// added as an "error" attribute.
//
// # Subsystems
//
//   - Relay: capability resolution and dispatch
//   - Features: feature ownership changes
//   - PowerBridge: power notification fan-in
//   - Facade: protocol lifecycle (add, connect, close)
//   - Session, Bridge, Metrics, Simulator: supporting infrastructure
//   - ConfigLoader, Bootstrap, CLI: application startup and commands
//
// # Formats
//
// FormatText uses slog's text handler and FormatJSON its JSON handler. Level
// filtering happens before the message is formatted, so filtered-out calls
// do not allocate.
//
// Before initialization, messages below WARN are dropped and the rest are
// written to stderr with a marker.
package logging

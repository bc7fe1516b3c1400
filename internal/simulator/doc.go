// Package simulator provides configurable in-memory protocol backends.
//
// A Backend models one protocol of a device: its power state, what is
// playing, installed apps and feature states. Which operations it declares
// to the relay, and which of them fail, is taken from the service's
// simulate section:
//
//	services:
//	  - protocol: Companion
//	    simulate:
//	      operations: [Apps, Power, RemoteControl.suspend]
//	      powerState: off
//	      powerDelay: 200ms
//	      failures:
//	        operations:
//	          launch_app: "device busy"
//
// Backends implement every capability interface so that undeclared
// operations can be exercised directly in tests; the relay only routes
// declared operations to them.
package simulator

// Package config provides configuration management for mediarelay.
//
// Configuration is loaded from a single directory containing config.yaml.
// The default directory is ~/.config/mediarelay; commands accept
// --config-path to use another one. Values from the file are decoded over
// GetDefaultConfig, so every key is optional.
//
// # File Format
//
//	device:
//	  name: Living Room
//	  address: 10.0.0.2
//	  model: Gen4
//	  services:
//	    - protocol: MRP
//	      identifier: mrp-id
//	      port: 49152
//	      simulate:
//	        operations: [RemoteControl, Metadata, power_state]
//	        features: [Play, Pause, PowerState]
//	        powerState: on
//	        pushUpdates: true
//	    - protocol: Companion
//	      port: 49153
//	      simulate:
//	        operations: [Apps, turn_on, turn_off]
//	        apps:
//	          - {name: Music, identifier: com.example.music}
//	priorities: [MRP, Companion, AirPlay]
//	relay:
//	  rollbackOnConnectFailure: false
//	  powerDedup: none
//	logging:
//	  level: info
//	  format: text
//	bridge:
//	  broker: tcp://localhost:1883
//	  topicPrefix: mediarelay
//	metrics:
//	  enabled: true
//	  listen: localhost:9464
//	connectTimeout: 30s
//	closeTimeout: 5s
//
// # Simulated Services
//
// The simulate block of a service configures the in-memory backend that
// serves the protocol: which operations and features it declares, the state
// it starts in, and failures to inject. Operations may be listed one by one,
// qualified by capability ("Stream.close") or as a whole capability
// ("RemoteControl").
//
// # Errors
//
// LoadConfig returns a *ConfigurationErrorCollection for malformed YAML and
// for validation failures. Each ConfigurationError names the section it
// belongs to and, where possible, suggestions to fix it.
package config

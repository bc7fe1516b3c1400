package config

import "time"

// MediaRelayConfig is the top-level configuration structure for mediarelay.
type MediaRelayConfig struct {
	Device     DeviceConfig  `yaml:"device"`
	Priorities []string      `yaml:"priorities,omitempty"` // Protocol preference order (default: MRP, DMAP, Companion, AirPlay, RAOP)
	Relay      RelayConfig   `yaml:"relay,omitempty"`
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Bridge     BridgeConfig  `yaml:"bridge,omitempty"`
	Metrics    MetricsConfig `yaml:"metrics,omitempty"`

	ConnectTimeout time.Duration `yaml:"connectTimeout,omitempty"` // Upper bound for connecting all protocols (default: 30s)
	CloseTimeout   time.Duration `yaml:"closeTimeout,omitempty"`   // Upper bound for releasing the shared session (default: 5s)
}

// DeviceConfig describes the device to control and the services it advertises.
type DeviceConfig struct {
	Name            string          `yaml:"name"`
	Address         string          `yaml:"address"`
	Model           string          `yaml:"model,omitempty"`
	OperatingSystem string          `yaml:"operatingSystem,omitempty"`
	Version         string          `yaml:"version,omitempty"`
	BuildNumber     string          `yaml:"buildNumber,omitempty"`
	MAC             string          `yaml:"mac,omitempty"`
	Services        []ServiceConfig `yaml:"services"`
}

// ServiceConfig is one protocol service advertised by the device.
type ServiceConfig struct {
	Protocol   string            `yaml:"protocol"`
	Identifier string            `yaml:"identifier,omitempty"`
	Port       int               `yaml:"port,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`

	// Simulate configures the in-memory backend serving this protocol.
	Simulate SimulateConfig `yaml:"simulate,omitempty"`
}

// SimulateConfig describes what the simulated backend for a service can do
// and what state it starts in.
type SimulateConfig struct {
	// Operations lists the operations the backend declares. An entry may be a
	// capability name ("RemoteControl") to declare all of its operations.
	Operations []string `yaml:"operations,omitempty"`

	// Features lists declared features. FeatureStates overrides the reported
	// state per feature (default: Available).
	Features      []string          `yaml:"features,omitempty"`
	FeatureStates map[string]string `yaml:"featureStates,omitempty"`

	PushUpdates bool `yaml:"pushUpdates,omitempty"` // Provide a push updater

	DeviceID   string        `yaml:"deviceId,omitempty"`
	PowerState string        `yaml:"powerState,omitempty"` // on, off or unknown
	PowerDelay time.Duration `yaml:"powerDelay,omitempty"` // Time until a power change is reported
	Playing    PlayingConfig `yaml:"playing,omitempty"`
	Apps       []AppConfig   `yaml:"apps,omitempty"`
	Failures   FailureConfig `yaml:"failures,omitempty"`
}

// PlayingConfig is the initial playing state of a simulated backend.
type PlayingConfig struct {
	Title       string `yaml:"title,omitempty"`
	Artist      string `yaml:"artist,omitempty"`
	Album       string `yaml:"album,omitempty"`
	Genre       string `yaml:"genre,omitempty"`
	MediaType   string `yaml:"mediaType,omitempty"`   // video, music, tv
	DeviceState string `yaml:"deviceState,omitempty"` // idle, playing, paused, ...
	Position    *int   `yaml:"position,omitempty"`
	TotalTime   *int   `yaml:"totalTime,omitempty"`
	App         string `yaml:"app,omitempty"` // Bundle identifier of the playing app
}

// AppConfig is an installed app on a simulated backend.
type AppConfig struct {
	Name       string `yaml:"name"`
	Identifier string `yaml:"identifier"`
}

// FailureConfig injects failures into a simulated backend. Values are the
// error messages returned.
type FailureConfig struct {
	Connect    string            `yaml:"connect,omitempty"`
	Close      string            `yaml:"close,omitempty"`
	Operations map[string]string `yaml:"operations,omitempty"` // operation name -> error message
}

// RelayConfig holds the relay policy points.
type RelayConfig struct {
	RollbackOnConnectFailure bool   `yaml:"rollbackOnConnectFailure,omitempty"` // Close already connected protocols when one fails (default: false)
	PowerDedup               string `yaml:"powerDedup,omitempty"`               // none or consecutive (default: none)
}

// LoggingConfig configures the log output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error (default: info)
	Format string `yaml:"format,omitempty"` // text or json (default: text)
}

// BridgeConfig configures the MQTT event bridge.
type BridgeConfig struct {
	Broker      string `yaml:"broker,omitempty"`      // e.g. tcp://localhost:1883
	TopicPrefix string `yaml:"topicPrefix,omitempty"` // default: mediarelay
	ClientID    string `yaml:"clientId,omitempty"`    // default: generated
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	QoS         byte   `yaml:"qos,omitempty"`
	Retain      bool   `yaml:"retain,omitempty"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Listen  string `yaml:"listen,omitempty"` // default: localhost:9464
}

package config

import "time"

const (
	// DefaultTopicPrefix is the MQTT topic prefix used by the event bridge.
	DefaultTopicPrefix = "mediarelay"

	// DefaultMetricsListen is the default address of the metrics endpoint.
	DefaultMetricsListen = "localhost:9464"

	DefaultConnectTimeout = 30 * time.Second
	DefaultCloseTimeout   = 5 * time.Second
)

// Power dedup policy names accepted in relay.powerDedup.
const (
	PowerDedupNone        = "none"
	PowerDedupConsecutive = "consecutive"
)

// GetDefaultConfig returns the default configuration. It has no device; one
// must come from config.yaml.
func GetDefaultConfig() MediaRelayConfig {
	return MediaRelayConfig{
		Relay: RelayConfig{
			PowerDedup: PowerDedupNone,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Bridge: BridgeConfig{
			TopicPrefix: DefaultTopicPrefix,
			QoS:         0,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  DefaultMetricsListen,
		},
		ConnectTimeout: DefaultConnectTimeout,
		CloseTimeout:   DefaultCloseTimeout,
	}
}

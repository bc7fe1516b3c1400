package bridge

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"mediarelay/internal/config"
	"mediarelay/pkg/logging"
)

// Publisher is the minimal surface the bridge needs from a message broker.
// It allows testing the bridge without a live broker.
type Publisher interface {
	Publish(topic string, payload []byte, retain bool) error
	Close()
}

// MQTTPublisher publishes bridge events to an MQTT broker.
type MQTTPublisher struct {
	cli     mqtt.Client
	qos     byte
	timeout time.Duration
}

// brokerURL normalizes the accepted broker schemes to the ones paho knows.
func brokerURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid broker URL %q: %w", raw, err)
	}
	switch u.Scheme {
	case "mqtt", "tcp":
		return "tcp://" + u.Host, nil
	case "ssl", "tls", "mqtts":
		return "ssl://" + u.Host, nil
	case "ws", "wss":
		return u.Scheme + "://" + u.Host + u.Path, nil
	default:
		return "", fmt.Errorf("unsupported broker scheme %q", u.Scheme)
	}
}

// NewMQTTPublisher connects to the broker configured in cfg.
func NewMQTTPublisher(cfg config.BridgeConfig) (*MQTTPublisher, error) {
	server, err := brokerURL(cfg.Broker)
	if err != nil {
		return nil, err
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "mediarelay-" + uuid.NewString()[:8]
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(server)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if u, _ := url.Parse(server); u != nil && (u.Scheme == "ssl" || u.Scheme == "wss") {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	opts.OnConnect = func(mqtt.Client) {
		logging.Info("Bridge", "Connected to MQTT broker %s", server)
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		logging.Warn("Bridge", "Lost connection to MQTT broker %s: %v", server, err)
	}

	cli := mqtt.NewClient(opts)
	if t := cli.Connect(); t.Wait() && t.Error() != nil {
		return nil, fmt.Errorf("connect to MQTT broker %s: %w", server, t.Error())
	}
	return &MQTTPublisher{cli: cli, qos: cfg.QoS, timeout: 5 * time.Second}, nil
}

// Publish implements Publisher.
func (p *MQTTPublisher) Publish(topic string, payload []byte, retain bool) error {
	t := p.cli.Publish(topic, p.qos, retain, payload)
	if !t.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish to %s timed out after %s", topic, p.timeout)
	}
	return t.Error()
}

// Close disconnects from the broker, allowing in-flight messages to drain.
func (p *MQTTPublisher) Close() {
	p.cli.Disconnect(250)
}

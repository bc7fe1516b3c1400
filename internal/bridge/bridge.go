package bridge

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"mediarelay/internal/api"
	"mediarelay/internal/config"
	"mediarelay/internal/relay"
	"mediarelay/pkg/logging"
)

// PowerEvent is published on <prefix>/<device>/power.
type PowerEvent struct {
	Device    string    `json:"device"`
	OldState  string    `json:"old_state"`
	NewState  string    `json:"new_state"`
	Timestamp time.Time `json:"timestamp"`
}

// PlayingEvent is published on <prefix>/<device>/playing.
type PlayingEvent struct {
	Device      string    `json:"device"`
	MediaType   string    `json:"media_type"`
	DeviceState string    `json:"device_state"`
	Title       string    `json:"title,omitempty"`
	Artist      string    `json:"artist,omitempty"`
	Album       string    `json:"album,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	Position    *int      `json:"position,omitempty"`
	TotalTime   *int      `json:"total_time,omitempty"`
	Shuffle     string    `json:"shuffle"`
	Repeat      string    `json:"repeat"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// ConnectionEvent is published on <prefix>/<device>/connection.
type ConnectionEvent struct {
	Device    string    `json:"device"`
	State     string    `json:"state"` // lost or closed
	Protocol  string    `json:"protocol,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Bridge forwards device notifications to a Publisher. It implements
// api.PowerListener, api.PushListener and api.DeviceListener.
type Bridge struct {
	publisher Publisher
	device    string
	prefix    string
	retain    bool
	now       func() time.Time
}

// New creates a bridge publishing events for device.
func New(publisher Publisher, device string, cfg config.BridgeConfig) *Bridge {
	prefix := strings.Trim(cfg.TopicPrefix, "/")
	if prefix == "" {
		prefix = config.DefaultTopicPrefix
	}
	return &Bridge{
		publisher: publisher,
		device:    device,
		prefix:    prefix,
		retain:    cfg.Retain,
		now:       time.Now,
	}
}

// Attach registers the bridge as power, push and device listener of f.
func (b *Bridge) Attach(f *relay.Facade) {
	f.Power().SetListener(b)
	f.PushUpdater().SetListener(b)
	f.SetListener(b)
}

// Topic returns the topic for an event kind, e.g. "power".
func (b *Bridge) Topic(kind string) string {
	return b.prefix + "/" + topicSegment(b.device) + "/" + kind
}

// topicSegment makes name usable as one MQTT topic level.
func topicSegment(name string) string {
	if name == "" {
		return "device"
	}
	return strings.NewReplacer("/", "_", "+", "_", "#", "_", " ", "_").Replace(strings.ToLower(name))
}

// PowerStateUpdate implements api.PowerListener.
func (b *Bridge) PowerStateUpdate(oldState, newState api.PowerState) {
	b.publish("power", PowerEvent{
		Device:    b.device,
		OldState:  oldState.String(),
		NewState:  newState.String(),
		Timestamp: b.now(),
	})
}

// PlayStatusUpdate implements api.PushListener.
func (b *Bridge) PlayStatusUpdate(_ api.PushUpdater, playing api.Playing) {
	b.publish("playing", PlayingEvent{
		Device:      b.device,
		MediaType:   playing.MediaType.String(),
		DeviceState: playing.DeviceState.String(),
		Title:       playing.Title,
		Artist:      playing.Artist,
		Album:       playing.Album,
		Genre:       playing.Genre,
		Position:    playing.Position,
		TotalTime:   playing.TotalTime,
		Shuffle:     playing.Shuffle.String(),
		Repeat:      playing.Repeat.String(),
		Timestamp:   b.now(),
	})
}

// PlayStatusError implements api.PushListener.
func (b *Bridge) PlayStatusError(_ api.PushUpdater, err error) {
	b.publish("playing/error", PlayingEvent{
		Device:    b.device,
		Error:     errString(err),
		Timestamp: b.now(),
	})
}

// ConnectionLost implements api.DeviceListener.
func (b *Bridge) ConnectionLost(err error) {
	event := ConnectionEvent{
		Device:    b.device,
		State:     "lost",
		Error:     errString(err),
		Timestamp: b.now(),
	}
	var connErr *api.ConnectionError
	if errors.As(err, &connErr) {
		event.Protocol = connErr.Protocol.String()
	}
	b.publish("connection", event)
}

// ConnectionClosed implements api.DeviceListener.
func (b *Bridge) ConnectionClosed() {
	b.publish("connection", ConnectionEvent{
		Device:    b.device,
		State:     "closed",
		Timestamp: b.now(),
	})
}

// publish never fails the caller: listeners are notified from backend code
// that cannot act on broker errors.
func (b *Bridge) publish(kind string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		logging.Error("Bridge", err, "Failed to encode %s event", kind)
		return
	}
	topic := b.Topic(kind)
	if err := b.publisher.Publish(topic, payload, b.retain); err != nil {
		logging.Warn("Bridge", "Failed to publish to %s: %v", topic, err)
		return
	}
	logging.Debug("Bridge", "Published %s", topic)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

var (
	_ api.PowerListener  = (*Bridge)(nil)
	_ api.PushListener   = (*Bridge)(nil)
	_ api.DeviceListener = (*Bridge)(nil)
)

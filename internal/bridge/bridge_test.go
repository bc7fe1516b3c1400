package bridge

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarelay/internal/api"
	"mediarelay/internal/config"
	"mediarelay/internal/relay"
)

type published struct {
	topic   string
	payload []byte
	retain  bool
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []published
	err      error
	closed   bool
}

func (p *fakePublisher) Publish(topic string, payload []byte, retain bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, published{topic: topic, payload: payload, retain: retain})
	return nil
}

func (p *fakePublisher) Close() { p.closed = true }

func (p *fakePublisher) last(t *testing.T) published {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.messages)
	return p.messages[len(p.messages)-1]
}

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestBridge(pub Publisher, cfg config.BridgeConfig) *Bridge {
	b := New(pub, "Living Room", cfg)
	b.now = func() time.Time { return fixedTime }
	return b
}

func TestBridge_Topic(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		device string
		want   string
	}{
		{"default prefix", "", "Living Room", "mediarelay/living_room/power"},
		{"custom prefix trimmed", "/home/media/", "tv", "home/media/tv/power"},
		{"wildcards replaced", "x", "a+b#c/d", "x/a_b_c_d/power"},
		{"empty device", "x", "", "x/device/power"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(&fakePublisher{}, tt.device, config.BridgeConfig{TopicPrefix: tt.prefix})
			assert.Equal(t, tt.want, b.Topic("power"))
		})
	}
}

func TestBridge_PowerStateUpdate(t *testing.T) {
	pub := &fakePublisher{}
	b := newTestBridge(pub, config.BridgeConfig{Retain: true})

	b.PowerStateUpdate(api.PowerStateOff, api.PowerStateOn)

	msg := pub.last(t)
	assert.Equal(t, "mediarelay/living_room/power", msg.topic)
	assert.True(t, msg.retain)

	var event PowerEvent
	require.NoError(t, json.Unmarshal(msg.payload, &event))
	assert.Equal(t, PowerEvent{Device: "Living Room", OldState: "Off", NewState: "On", Timestamp: fixedTime}, event)
}

func TestBridge_PlayStatus(t *testing.T) {
	pub := &fakePublisher{}
	b := newTestBridge(pub, config.BridgeConfig{})
	pos := 42

	b.PlayStatusUpdate(nil, api.Playing{
		MediaType:   api.MediaTypeMusic,
		DeviceState: api.DeviceStatePlaying,
		Title:       "Song",
		Position:    &pos,
	})

	msg := pub.last(t)
	assert.Equal(t, "mediarelay/living_room/playing", msg.topic)
	var event PlayingEvent
	require.NoError(t, json.Unmarshal(msg.payload, &event))
	assert.Equal(t, "Music", event.MediaType)
	assert.Equal(t, "Playing", event.DeviceState)
	assert.Equal(t, "Song", event.Title)
	require.NotNil(t, event.Position)
	assert.Equal(t, 42, *event.Position)
	assert.Nil(t, event.TotalTime)

	b.PlayStatusError(nil, errors.New("stream ended"))
	msg = pub.last(t)
	assert.Equal(t, "mediarelay/living_room/playing/error", msg.topic)
	require.NoError(t, json.Unmarshal(msg.payload, &event))
	assert.Equal(t, "stream ended", event.Error)
}

func TestBridge_Connection(t *testing.T) {
	pub := &fakePublisher{}
	b := newTestBridge(pub, config.BridgeConfig{})

	b.ConnectionLost(&api.ConnectionError{Protocol: api.ProtocolMRP, Err: errors.New("reset")})
	var event ConnectionEvent
	require.NoError(t, json.Unmarshal(pub.last(t).payload, &event))
	assert.Equal(t, "lost", event.State)
	assert.Equal(t, "MRP", event.Protocol)
	assert.Contains(t, event.Error, "reset")

	b.ConnectionClosed()
	require.NoError(t, json.Unmarshal(pub.last(t).payload, &event))
	assert.Equal(t, "closed", event.State)
	assert.Equal(t, "mediarelay/living_room/connection", pub.last(t).topic)
}

func TestBridge_PublishErrorIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	b := newTestBridge(pub, config.BridgeConfig{})

	assert.NotPanics(t, func() { b.PowerStateUpdate(api.PowerStateOn, api.PowerStateOff) })
	assert.Empty(t, pub.messages)
}

func TestBridge_AttachReceivesFacadeEvents(t *testing.T) {
	pub := &fakePublisher{}
	b := newTestBridge(pub, config.BridgeConfig{})
	f := relay.NewFacade(api.DeviceConfig{Name: "Living Room"}, nil)

	b.Attach(f)
	f.Power().PowerStateUpdate(api.PowerStateOff, api.PowerStateOn)
	assert.Equal(t, "mediarelay/living_room/power", pub.last(t).topic)

	f.ConnectionLost(api.ProtocolAirPlay, errors.New("gone"))
	assert.Equal(t, "mediarelay/living_room/connection", pub.last(t).topic)
}

func TestBrokerURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"tcp://localhost:1883", "tcp://localhost:1883", false},
		{"mqtt://broker:1883", "tcp://broker:1883", false},
		{"tls://broker:8883", "ssl://broker:8883", false},
		{"ws://broker:9001/mqtt", "ws://broker:9001/mqtt", false},
		{"http://broker", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := brokerURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mediarelay/internal/api"
	"mediarelay/internal/relay"
)

// Recorder counts relayed calls and power notifications. It implements
// relay.CallRecorder and relay.PowerEventRecorder.
type Recorder struct {
	registry    *prometheus.Registry
	calls       *prometheus.CounterVec
	powerEvents *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry, so several facades
// or tests never collide on registration.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mediarelay_relay_calls_total",
				Help: "Relayed calls by capability, operation, serving protocol and outcome.",
			},
			[]string{"capability", "operation", "protocol", "outcome"},
		),
		powerEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mediarelay_power_events_total",
				Help: "Power state notifications received from protocols, and whether they were forwarded.",
			},
			[]string{"old_state", "new_state", "forwarded"},
		),
	}
	r.registry.MustRegister(r.calls, r.powerEvents)
	return r
}

// RecordCall implements relay.CallRecorder.
func (r *Recorder) RecordCall(capability string, op api.Operation, protocol api.Protocol, outcome relay.Outcome) {
	protocolLabel := "none"
	if protocol != 0 {
		protocolLabel = protocol.String()
	}
	r.calls.WithLabelValues(capability, string(op), protocolLabel, string(outcome)).Inc()
}

// RecordPowerEvent implements relay.PowerEventRecorder.
func (r *Recorder) RecordPowerEvent(oldState, newState api.PowerState, forwarded bool) {
	fwd := "false"
	if forwarded {
		fwd = "true"
	}
	r.powerEvents.WithLabelValues(oldState.String(), newState.String(), fwd).Inc()
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's metrics in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

var (
	_ relay.CallRecorder       = (*Recorder)(nil)
	_ relay.PowerEventRecorder = (*Recorder)(nil)
)

// Package metrics counts relayed calls and power notifications with
// Prometheus collectors and serves them over HTTP.
//
// Metrics:
//
//	mediarelay_relay_calls_total{capability,operation,protocol,outcome}
//	mediarelay_power_events_total{old_state,new_state,forwarded}
//
// protocol is "none" for calls no protocol could serve.
package metrics

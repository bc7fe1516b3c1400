// Package bridge publishes device notifications to an MQTT broker.
//
// Events are JSON documents on the topics
//
//	<prefix>/<device>/power
//	<prefix>/<device>/playing
//	<prefix>/<device>/playing/error
//	<prefix>/<device>/connection
//
// where <prefix> defaults to "mediarelay" and <device> is the lower-cased
// device name with topic wildcards and separators replaced by "_".
package bridge

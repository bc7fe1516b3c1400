package api

import (
	"slices"
	"sort"
)

// Operation names one method or read-only property of a capability interface.
// Backends declare the operations they actually provide when they are
// registered; the relay never inspects implementations to find out.
type Operation string

// RemoteControl operations.
const (
	OpUp           Operation = "up"
	OpDown         Operation = "down"
	OpLeft         Operation = "left"
	OpRight        Operation = "right"
	OpSelect       Operation = "select"
	OpMenu         Operation = "menu"
	OpHome         Operation = "home"
	OpHomeHold     Operation = "home_hold"
	OpTopMenu      Operation = "top_menu"
	OpPlay         Operation = "play"
	OpPlayPause    Operation = "play_pause"
	OpPause        Operation = "pause"
	OpStop         Operation = "stop"
	OpNext         Operation = "next"
	OpPrevious     Operation = "previous"
	OpVolumeUp     Operation = "volume_up"
	OpVolumeDown   Operation = "volume_down"
	OpSuspend      Operation = "suspend"
	OpWakeUp       Operation = "wakeup"
	OpSkipForward  Operation = "skip_forward"
	OpSkipBackward Operation = "skip_backward"
	OpSetPosition  Operation = "set_position"
	OpSetShuffle   Operation = "set_shuffle"
	OpSetRepeat    Operation = "set_repeat"
)

// Metadata operations.
const (
	OpDeviceID  Operation = "device_id"
	OpArtwork   Operation = "artwork"
	OpArtworkID Operation = "artwork_id"
	OpPlaying   Operation = "playing"
	OpApp       Operation = "app"
)

// Power operations.
const (
	OpPowerState Operation = "power_state"
	OpTurnOn     Operation = "turn_on"
	OpTurnOff    Operation = "turn_off"
)

// Stream operations.
const (
	OpPlayURL     Operation = "play_url"
	OpStreamClose Operation = "close"
)

// Apps operations.
const (
	OpAppList   Operation = "app_list"
	OpLaunchApp Operation = "launch_app"
)

// Features and PushUpdater operations.
const (
	OpGetFeature Operation = "get_feature"
	OpPushStart  Operation = "start"
	OpPushStop   Operation = "stop"
)

// OperationSet is an immutable set of operations.
type OperationSet struct {
	ops map[Operation]struct{}
}

// NewOperationSet builds a set from the given operations.
func NewOperationSet(ops ...Operation) OperationSet {
	m := make(map[Operation]struct{}, len(ops))
	for _, op := range ops {
		m[op] = struct{}{}
	}
	return OperationSet{ops: m}
}

// Has reports whether op is part of the set.
func (s OperationSet) Has(op Operation) bool {
	_, ok := s.ops[op]
	return ok
}

// Len returns the number of operations in the set.
func (s OperationSet) Len() int {
	return len(s.ops)
}

// List returns the operations sorted by name.
func (s OperationSet) List() []Operation {
	out := make([]Operation, 0, len(s.ops))
	for op := range s.ops {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Missing returns the operations in ops that are not part of the set.
func (s OperationSet) Missing(ops []Operation) []Operation {
	var missing []Operation
	for _, op := range ops {
		if !s.Has(op) && !slices.Contains(missing, op) {
			missing = append(missing, op)
		}
	}
	return missing
}

var (
	RemoteControlOperations = NewOperationSet(
		OpUp, OpDown, OpLeft, OpRight, OpSelect, OpMenu, OpHome,
		OpHomeHold, OpTopMenu,
		OpPlay, OpPlayPause, OpPause, OpStop, OpNext, OpPrevious,
		OpVolumeUp, OpVolumeDown, OpSuspend, OpWakeUp,
		OpSkipForward, OpSkipBackward,
		OpSetPosition, OpSetShuffle, OpSetRepeat,
	)
	MetadataOperations    = NewOperationSet(OpDeviceID, OpArtwork, OpArtworkID, OpPlaying, OpApp)
	PowerOperations       = NewOperationSet(OpPowerState, OpTurnOn, OpTurnOff)
	StreamOperations      = NewOperationSet(OpPlayURL, OpStreamClose)
	AppsOperations        = NewOperationSet(OpAppList, OpLaunchApp)
	FeaturesOperations    = NewOperationSet(OpGetFeature)
	PushUpdaterOperations = NewOperationSet(OpPushStart, OpPushStop)

	// PropertyOperations return a value without an error; their relayed
	// form falls back to a default instead of failing.
	PropertyOperations = NewOperationSet(OpPowerState, OpDeviceID, OpArtworkID, OpApp)
)

// Capability names used in errors, logs and metrics.
const (
	CapabilityRemoteControl = "RemoteControl"
	CapabilityMetadata      = "Metadata"
	CapabilityPower         = "Power"
	CapabilityStream        = "Stream"
	CapabilityApps          = "Apps"
	CapabilityFeatures      = "Features"
	CapabilityPushUpdater   = "PushUpdater"
)

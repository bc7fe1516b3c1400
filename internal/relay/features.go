package relay

import (
	"slices"

	"mediarelay/internal/api"
	"mediarelay/pkg/logging"
)

type featureHolder struct {
	protocol api.Protocol
	instance api.Features
}

// FeatureAggregator maps each feature name to the single highest priority
// protocol that declared support for it.
//
// Feature support is declared as a set when a protocol is added, independent
// of which interface operations that protocol provides. The map is optimized
// for lookup and updated incrementally as protocols come and go.
type FeatureAggregator struct {
	priorities api.PriorityList
	instances  map[api.Protocol]api.Features
	declared   map[api.Protocol]map[api.FeatureName]struct{}
	holders    map[api.FeatureName]featureHolder
	// seen holds every protocol that ever declared features, in first
	// declaration order. Unlisted protocols rank by it.
	seen []api.Protocol
}

// NewFeatureAggregator creates an empty aggregator using priorities to pick
// between protocols declaring the same feature.
func NewFeatureAggregator(priorities api.PriorityList) *FeatureAggregator {
	return &FeatureAggregator{
		priorities: priorities.Clone(),
		instances:  make(map[api.Protocol]api.Features),
		declared:   make(map[api.Protocol]map[api.FeatureName]struct{}),
		holders:    make(map[api.FeatureName]featureHolder),
	}
}

// AddMapping records that protocol p, answering through instance, supports
// the given features. A feature is claimed when nobody holds it yet or when
// the current holder ranks strictly lower than p. Protocols outside the
// priority list rank after listed ones, in the order they were first seen.
// Adding p again refreshes its instance but never demotes a higher priority
// holder.
func (a *FeatureAggregator) AddMapping(p api.Protocol, instance api.Features, features ...api.FeatureName) {
	if instance == nil {
		logging.Debug("Features", "%s declares %d features but has no feature source, ignoring", p, len(features))
		return
	}

	a.note(p)
	a.instances[p] = instance
	set, ok := a.declared[p]
	if !ok {
		set = make(map[api.FeatureName]struct{}, len(features))
		a.declared[p] = set
	}

	for _, feature := range features {
		set[feature] = struct{}{}

		current, held := a.holders[feature]
		if !held || current.protocol == p || a.outranks(p, current.protocol) {
			a.holders[feature] = featureHolder{protocol: p, instance: instance}
		}
	}

	// Refresh features p already held from an earlier call.
	for feature, holder := range a.holders {
		if holder.protocol == p {
			a.holders[feature] = featureHolder{protocol: p, instance: instance}
		}
	}
	logging.Debug("Features", "Added %d features for %s", len(features), p)
}

// RemoveMapping forgets everything protocol p declared. Features it held are
// handed to the best remaining protocol that declared them.
func (a *FeatureAggregator) RemoveMapping(p api.Protocol) {
	if _, ok := a.declared[p]; !ok {
		return
	}
	delete(a.declared, p)
	delete(a.instances, p)

	for feature, holder := range a.holders {
		if holder.protocol != p {
			continue
		}
		delete(a.holders, feature)
		if next, ok := a.bestDeclaring(feature); ok {
			a.holders[feature] = next
		}
	}
	logging.Debug("Features", "Removed feature mappings for %s", p)
}

// note fixes p's place among unlisted protocols on first sight.
func (a *FeatureAggregator) note(p api.Protocol) {
	if !slices.Contains(a.seen, p) {
		a.seen = append(a.seen, p)
	}
}

func (a *FeatureAggregator) outranks(first, second api.Protocol) bool {
	ranked := a.priorities.Rank(a.seen)
	return slices.Index(ranked, first) < slices.Index(ranked, second)
}

func (a *FeatureAggregator) bestDeclaring(feature api.FeatureName) (featureHolder, bool) {
	for _, p := range a.priorities.Rank(a.seen) {
		if _, ok := a.declared[p][feature]; ok {
			return featureHolder{protocol: p, instance: a.instances[p]}, true
		}
	}
	return featureHolder{}, false
}

// GetFeature returns the live state of a feature. Features no protocol
// claims are reported as unsupported. The holder is asked on every call and
// nothing is cached.
func (a *FeatureAggregator) GetFeature(name api.FeatureName) api.FeatureInfo {
	holder, ok := a.holders[name]
	if !ok {
		return api.UnsupportedFeature()
	}
	info := holder.instance.GetFeature(name)
	if info.Options == nil {
		info.Options = map[string]any{}
	}
	return info
}

// Holder returns the protocol currently answering for a feature.
func (a *FeatureAggregator) Holder(name api.FeatureName) (api.Protocol, bool) {
	holder, ok := a.holders[name]
	return holder.protocol, ok
}

var (
	_ api.Features      = (*FeatureAggregator)(nil)
	_ api.FeatureHolder = (*FeatureAggregator)(nil)
)

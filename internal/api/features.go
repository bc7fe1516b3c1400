package api

import "slices"

// FeaturesInState reports whether every named feature is in one of the
// given states.
func FeaturesInState(f Features, states []FeatureState, names ...FeatureName) bool {
	for _, name := range names {
		if !slices.Contains(states, f.GetFeature(name).State) {
			return false
		}
	}
	return true
}

// FeatureHolder is implemented by feature sources that answer on behalf of
// several protocols.
type FeatureHolder interface {
	Holder(name FeatureName) (Protocol, bool)
}

// NamedFeature pairs a feature name with its current info. Protocol is the
// protocol answering for the feature, zero when unknown or unsupported.
type NamedFeature struct {
	Name     FeatureName
	Info     FeatureInfo
	Protocol Protocol
}

// AllFeatures queries every known feature. Unsupported features are left out
// unless includeUnsupported is set. When f is a FeatureHolder each entry
// names the protocol answering for it.
func AllFeatures(f Features, includeUnsupported bool) []NamedFeature {
	holders, _ := f.(FeatureHolder)

	var out []NamedFeature
	for _, name := range AllFeatureNames() {
		info := f.GetFeature(name)
		if info.State == FeatureStateUnsupported && !includeUnsupported {
			continue
		}
		feature := NamedFeature{Name: name, Info: info}
		if holders != nil {
			feature.Protocol, _ = holders.Holder(name)
		}
		out = append(out, feature)
	}
	return out
}

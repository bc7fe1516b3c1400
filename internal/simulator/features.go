package simulator

import (
	"slices"

	"mediarelay/internal/api"
)

// GetFeature reports the configured state of a declared feature, Available
// unless overridden. Position carries its valid range as options.
func (b *Backend) GetFeature(name api.FeatureName) api.FeatureInfo {
	if !slices.Contains(b.features, name) {
		return api.UnsupportedFeature()
	}

	state, ok := b.featureStates[name]
	if !ok {
		state = api.FeatureStateAvailable
	}
	info := api.FeatureInfo{State: state, Options: map[string]any{}}

	if name == api.FeaturePosition || name == api.FeatureSetPosition {
		b.mu.Lock()
		if total := b.playing.TotalTime; total != nil {
			info.Options["minimum"] = 0
			info.Options["maximum"] = *total
		}
		b.mu.Unlock()
	}
	return info
}

var _ api.Features = (*Backend)(nil)

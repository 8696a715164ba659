package services

import (
	"maps"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

// ProfileMerger merges profiles according to inheritance semantics.
//
// Merge Semantics:
//   - Settings: overlay wins per key
//   - Vars: deep merge, overlay wins on conflict
//   - Extends: NOT propagated (already resolved)
type ProfileMerger struct{}

// NewProfileMerger creates a new profile merger service.
func NewProfileMerger() *ProfileMerger {
	return &ProfileMerger{}
}

// MergeAll merges parents left-to-right (later parents win), then applies
// current. Returns a NEW profile (does not mutate inputs).
func (m *ProfileMerger) MergeAll(parents []*entities.Profile, current *entities.Profile) *entities.Profile {
	result := &entities.Profile{}
	for _, parent := range parents {
		result = m.Merge(result, parent)
	}
	return m.Merge(result, current)
}

// Merge combines two profiles with overlay winning on conflicts.
// Returns a NEW profile (does not mutate inputs).
func (m *ProfileMerger) Merge(base, overlay *entities.Profile) *entities.Profile {
	merged := base.Clone()
	if merged == nil {
		merged = &entities.Profile{}
	}
	merged.Extends = nil
	if overlay == nil {
		return merged
	}

	merged.Settings = merged.Settings.Merge(overlay.Settings)
	merged.Vars = mergeVars(merged.Vars, overlay.Clone().Vars)
	return merged
}

// mergeVars deep merges overlay into base (mutates base).
func mergeVars(base, overlay map[string]any) map[string]any {
	if base == nil {
		base = make(map[string]any, len(overlay))
	}
	for k, v := range overlay {
		baseNested, baseIsMap := base[k].(map[string]any)
		overlayNested, overlayIsMap := v.(map[string]any)
		if baseIsMap && overlayIsMap {
			base[k] = mergeVars(maps.Clone(baseNested), overlayNested)
			continue
		}
		base[k] = v
	}
	if len(base) == 0 {
		return nil
	}
	return base
}

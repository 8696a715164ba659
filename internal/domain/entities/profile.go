package entities

import (
	"fmt"
	"maps"
	"strings"

	"github.com/petersen65/CppPlayground/internal/domain/values"
)

// Profile is a named set of platform settings read from a profile file.
// Profiles can extend other profiles; Vars are substituted into setting
// values before the profile is used.
//
// Invariants Enforced (after inheritance and substitution):
//   - Every setting key belongs to the settings vocabulary
//   - Enumerated settings hold an allowed value
type Profile struct {
	Extends  []string        `yaml:"extends,omitempty"`
	Vars     map[string]any  `yaml:"vars,omitempty"`
	Settings values.Settings `yaml:"settings"`
}

// NewProfile creates a profile holding settings.
func NewProfile(settings values.Settings) *Profile {
	return &Profile{Settings: settings.Merge(nil)}
}

// Validate checks every setting against the vocabulary. It does not
// require a complete platform; that is checked by NewPlatform.
func (p *Profile) Validate() error {
	var problems []string
	for _, key := range p.Settings.Keys() {
		if err := values.ValidateSetting(key, p.Settings[key]); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid profile:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// Clone returns a deep copy of the profile. Nested var maps are copied.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := &Profile{
		Settings: p.Settings.Merge(nil),
		Vars:     deepCopyVars(p.Vars),
	}
	if p.Extends != nil {
		out.Extends = append([]string(nil), p.Extends...)
	}
	return out
}

func deepCopyVars(vars map[string]any) map[string]any {
	if vars == nil {
		return nil
	}
	out := make(map[string]any, len(vars))
	for k, v := range vars {
		if nested, ok := v.(map[string]any); ok {
			out[k] = deepCopyVars(nested)
			continue
		}
		out[k] = v
	}
	return out
}

// SettingsWith returns the profile's settings with overrides applied.
// Command-line -s flags are passed as overrides.
func (p *Profile) SettingsWith(overrides values.Settings) values.Settings {
	if p == nil {
		return maps.Clone(overrides)
	}
	return p.Settings.Merge(overrides)
}

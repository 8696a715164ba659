package values

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Setting keys understood by the declarator.
const (
	SettingOS              = "os"
	SettingArch            = "arch"
	SettingCompiler        = "compiler"
	SettingCompilerVersion = "compiler.version"
	SettingCompilerLibcxx  = "compiler.libcxx"
	SettingCompilerRuntime = "compiler.runtime"
	SettingCompilerCppstd  = "compiler.cppstd"
	SettingBuildType       = "build_type"
)

// settingVocabulary lists the accepted values for enumerated settings.
// Keys missing from the map accept any non-empty value.
var settingVocabulary = map[string][]string{
	SettingOS:        {"Linux", "Windows", "Macos", "FreeBSD"},
	SettingArch:      {"x86", "x86_64", "armv7", "armv8"},
	SettingCompiler:  {"gcc", "clang", "apple-clang", "msvc"},
	SettingBuildType: {"Debug", "Release", "RelWithDebInfo", "MinSizeRel"},
}

var knownSettings = []string{
	SettingOS,
	SettingArch,
	SettingCompiler,
	SettingCompilerVersion,
	SettingCompilerLibcxx,
	SettingCompilerRuntime,
	SettingCompilerCppstd,
	SettingBuildType,
}

// Settings is a flat key/value view of a platform, as written in profiles
// and passed with -s key=value.
type Settings map[string]string

// ParseSettingAssignment splits "key=value" into its parts.
func ParseSettingAssignment(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return "", "", fmt.Errorf("invalid setting %q: expected key=value", s)
	}
	return key, value, nil
}

// ParseSettings parses a list of key=value assignments. Later entries win.
func ParseSettings(assignments []string) (Settings, error) {
	out := make(Settings, len(assignments))
	for _, a := range assignments {
		k, v, err := ParseSettingAssignment(a)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// Merge returns a copy of s with overrides applied on top.
func (s Settings) Merge(overrides Settings) Settings {
	out := make(Settings, len(s)+len(overrides))
	maps.Copy(out, s)
	maps.Copy(out, overrides)
	return out
}

// Get returns the value for key or "".
func (s Settings) Get(key string) string {
	return s[key]
}

// Keys returns the setting keys in sorted order.
func (s Settings) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// ValidateSetting checks that key is a known setting and value belongs to
// its vocabulary.
func ValidateSetting(key, value string) error {
	if !slices.Contains(knownSettings, key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("setting %q cannot be empty", key)
	}
	allowed, ok := settingVocabulary[key]
	if ok && !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid value %q for setting %q (allowed: %s)", value, key, strings.Join(allowed, ", "))
	}
	return nil
}

// AllowedSettingValues returns the vocabulary for an enumerated setting, or
// nil when the setting accepts free values.
func AllowedSettingValues(key string) []string {
	return slices.Clone(settingVocabulary[key])
}

package entities

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/petersen65/CppPlayground/internal/domain/values"
)

// Platform is the read-only description of the target a run configures
// for: operating system, architecture, compiler and build variant.
//
// Invariants:
// - OS, Arch and Compiler are always set and belong to the settings vocabulary
// - CompilerVersion parses as a (possibly partial) version
// - BuildType is either empty or a valid build type
type Platform struct {
	OS              string
	Arch            string
	Compiler        string
	CompilerVersion string
	CompilerLibcxx  string
	CompilerRuntime string
	BuildType       string
	settings        values.Settings
}

// NewPlatform validates settings and builds a Platform. build_type may be
// absent; layout selection decides whether that is acceptable.
func NewPlatform(settings values.Settings) (*Platform, error) {
	var problems []string
	for _, key := range []string{values.SettingOS, values.SettingArch, values.SettingCompiler, values.SettingCompilerVersion} {
		if settings.Get(key) == "" {
			problems = append(problems, fmt.Sprintf("setting %q is required", key))
		}
	}
	for _, key := range settings.Keys() {
		if err := values.ValidateSetting(key, settings[key]); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if v := settings.Get(values.SettingCompilerVersion); v != "" {
		if _, err := semver.NewVersion(v); err != nil {
			problems = append(problems, fmt.Sprintf("invalid compiler.version %q", v))
		}
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid platform settings:\n  - %s", strings.Join(problems, "\n  - "))
	}

	return &Platform{
		OS:              settings.Get(values.SettingOS),
		Arch:            settings.Get(values.SettingArch),
		Compiler:        settings.Get(values.SettingCompiler),
		CompilerVersion: settings.Get(values.SettingCompilerVersion),
		CompilerLibcxx:  settings.Get(values.SettingCompilerLibcxx),
		CompilerRuntime: settings.Get(values.SettingCompilerRuntime),
		BuildType:       settings.Get(values.SettingBuildType),
		settings:        settings.Merge(nil),
	}, nil
}

// Settings returns a copy of the settings the platform was built from.
func (p *Platform) Settings() values.Settings {
	return p.settings.Merge(nil)
}

// MultiConfig reports whether the compiler's native CMake generator builds
// several configurations from one build folder.
func (p *Platform) MultiConfig() bool {
	return p.Compiler == "msvc"
}

// Variant returns the lower-case build type used in generated file names,
// defaulting to "release".
func (p *Platform) Variant() string {
	if p.BuildType == "" {
		return "release"
	}
	return strings.ToLower(p.BuildType)
}

// Env returns the platform as an expression environment.
func (p *Platform) Env() map[string]any {
	return map[string]any{
		"os":               p.OS,
		"arch":             p.Arch,
		"compiler":         p.Compiler,
		"compiler_version": p.CompilerVersion,
		"build_type":       p.BuildType,
	}
}

func (p *Platform) String() string {
	return fmt.Sprintf("%s-%s-%s%s-%s", p.OS, p.Arch, p.Compiler, p.CompilerVersion, p.Variant())
}

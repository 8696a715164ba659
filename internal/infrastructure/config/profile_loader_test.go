package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadProfileFromReader_Valid(t *testing.T) {
	yaml := `
settings:
  os: Linux
  arch: x86_64
  compiler: gcc
  compiler.version: 14
  build_type: Release
`
	profile, err := NewProfileLoader().LoadProfileFromReader(strings.NewReader(yaml))
	require.NoError(t, err)
	assert.Equal(t, "14", profile.Settings.Get("compiler.version"))
	assert.Equal(t, "Release", profile.Settings.Get("build_type"))
	assert.Empty(t, profile.Extends)
}

func TestLoadProfileFromReader_KeepsScalarText(t *testing.T) {
	yaml := `
settings:
  compiler.version: 14.10
  compiler.cppstd: 26
  arch: "1.0"
  os: 'Linux'
`
	profile, err := NewProfileLoader().LoadProfileFromReader(strings.NewReader(yaml))
	require.NoError(t, err)
	assert.Equal(t, "14.10", profile.Settings.Get("compiler.version"))
	assert.Equal(t, "26", profile.Settings.Get("compiler.cppstd"))
	assert.Equal(t, "1.0", profile.Settings.Get("arch"))
	assert.Equal(t, "Linux", profile.Settings.Get("os"))
}

func TestLoadProfileFromReader_Empty(t *testing.T) {
	profile, err := NewProfileLoader().LoadProfileFromReader(strings.NewReader("\n"))
	require.NoError(t, err)
	assert.Empty(t, profile.Settings)
}

func TestLoadProfileFromReader_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown section", yaml: "toolchain:\n  cppstd: 26\n"},
		{name: "list value", yaml: "settings:\n  compiler.version: [14]\n"},
		{name: "bad key", yaml: "settings:\n  Compiler: gcc\n"},
		{name: "extends not a list", yaml: "extends: base.yaml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProfileLoader().LoadProfileFromReader(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "profile.schema.json validation failed")
		})
	}
}

func TestLoadProfile_Inheritance(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "common"), 0o750))
	writeProfile(t, filepath.Join(dir, "common"), "linux.yaml", `
vars:
  gcc: "13"
settings:
  os: Linux
  arch: x86_64
  compiler: gcc
  compiler.version: "{{ .vars.gcc }}"
  build_type: Debug
`)
	path := writeProfile(t, dir, "release.yaml", `
extends:
  - common/linux.yaml
vars:
  gcc: "14"
settings:
  build_type: Release
`)

	profile, err := NewProfileLoader().LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, values.Settings{
		"os":               "Linux",
		"arch":             "x86_64",
		"compiler":         "gcc",
		"compiler.version": "14",
		"build_type":       "Release",
	}, profile.Settings)
	assert.Empty(t, profile.Extends)
}

func TestLoadProfile_CircularInheritance(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "a.yaml", "extends: [b.yaml]\n")
	path := writeProfile(t, dir, "b.yaml", "extends: [a.yaml]\n")

	_, err := NewProfileLoader().LoadProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular inheritance detected")
}

func TestLoadProfile_DiamondInheritance(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "base.yaml", "settings:\n  os: Linux\n")
	writeProfile(t, dir, "left.yaml", "extends: [base.yaml]\nsettings:\n  arch: armv8\n")
	writeProfile(t, dir, "right.yaml", "extends: [base.yaml]\nsettings:\n  compiler: clang\n")
	path := writeProfile(t, dir, "top.yaml", "extends: [left.yaml, right.yaml]\n")

	profile, err := NewProfileLoader().LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "armv8", profile.Settings.Get("arch"))
	assert.Equal(t, "clang", profile.Settings.Get("compiler"))
}

func TestLoadProfile_InvalidSettingValue(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "bad.yaml", "settings:\n  os: Plan9\n")

	_, err := NewProfileLoader().LoadProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid value "Plan9"`)
}

func TestLoadProfile_MissingFile(t *testing.T) {
	_, err := NewProfileLoader().LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open profile")
}

func TestSaveProfile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles", "default.yaml")
	profile := entities.NewProfile(values.Settings{
		"os":               "Linux",
		"arch":             "x86_64",
		"compiler":         "clang",
		"compiler.version": "18",
	})

	require.NoError(t, SaveProfile(path, profile, false))

	loaded, err := NewProfileLoader().LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, profile.Settings, loaded.Settings)

	err = SaveProfile(path, profile, false)
	assert.ErrorContains(t, err, "already exists")
	assert.NoError(t, SaveProfile(path, profile, true))
}

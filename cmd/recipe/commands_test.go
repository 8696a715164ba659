package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/petersen65/CppPlayground/internal/application/dto"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useSystemConfig points the container at a system config under dir so
// the user's ~/.recipe is never read.
func useSystemConfig(t *testing.T, dir string) {
	t.Helper()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`index:
  paths: [index]
profiles:
  dir: profiles
  default: default
`), 0o600))
	viper.Set("system_config", cfg)
	t.Cleanup(func() { viper.Set("system_config", "") })
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInstallCommand(t *testing.T) {
	dir := t.TempDir()
	useSystemConfig(t, dir)
	source := filepath.Join(dir, "project")
	require.NoError(t, os.Mkdir(source, 0o750))

	out, err := runCommand(t, newInstallCmd(), source,
		"-s", "os=Linux",
		"-s", "arch=x86_64",
		"-s", "compiler=gcc",
		"-s", "compiler.version=14",
		"-s", "build_type=Release",
		"--format", "json",
	)
	require.NoError(t, err)

	var resp dto.InstallResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Packages, 1)
	assert.Equal(t, "gtest/1.16.0", resp.Packages[0].Reference)

	generators := filepath.Join(source, "build", "Release", "generators")
	assert.Equal(t, generators, resp.Layout.GeneratorsFolder)
	assert.FileExists(t, filepath.Join(generators, "CMakePresets.json"))
	assert.FileExists(t, filepath.Join(generators, "GTestConfig.cmake"))
}

func TestInstallCommand_IncompleteSettings(t *testing.T) {
	dir := t.TempDir()
	useSystemConfig(t, dir)

	_, err := runCommand(t, newInstallCmd(), dir, "-s", "os=Linux")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiler")
	assert.NoDirExists(t, filepath.Join(dir, "build"))
}

func TestInstallCommand_TimeoutCoversIndexLoading(t *testing.T) {
	dir := t.TempDir()
	useSystemConfig(t, dir)
	indexDir := filepath.Join(dir, "extra-index")
	require.NoError(t, os.Mkdir(indexDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(indexDir, "zlib.yaml"), []byte(`name: zlib
version: "1.3.1"
cmake_file_name: ZLIB
`), 0o600))

	_, err := runCommand(t, newInstallCmd(), dir,
		"--index", indexDir,
		"--timeout", "1ns",
		"-s", "os=Linux",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "failed to initialize application")
	assert.NoDirExists(t, filepath.Join(dir, "build"))
}

func TestInstallCommand_WithProfile(t *testing.T) {
	dir := t.TempDir()
	useSystemConfig(t, dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "profiles"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profiles", "gcc14.yaml"), []byte(`settings:
  os: Linux
  arch: x86_64
  compiler: gcc
  compiler.version: "14"
  build_type: Release
`), 0o600))

	out, err := runCommand(t, newInstallCmd(), dir, "--profile", "gcc14", "-s", "build_type=Debug", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "gtest/1.16.0")
	assert.DirExists(t, filepath.Join(dir, "build", "Debug", "generators"))
}

func TestInspectCommand(t *testing.T) {
	useSystemConfig(t, t.TempDir())

	out, err := runCommand(t, newInspectCmd(), "--format", "json")
	require.NoError(t, err)

	var info dto.RecipeInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, []string{"gtest/1.16.0"}, info.Requires)
	assert.Equal(t, "26", info.CppStd)
	assert.Equal(t, "True", info.Options["gtest/*:build_gmock"])
	assert.Equal(t, "ON", info.CacheVariables["BUILD_TESTING"])
}

func TestLockCreateCommand(t *testing.T) {
	dir := t.TempDir()
	useSystemConfig(t, dir)
	lockfile := filepath.Join(dir, "recipe.lock")

	out, err := runCommand(t, newLockCreateCmd(),
		"-s", "os=Linux",
		"-s", "arch=x86_64",
		"-s", "compiler=clang",
		"-s", "compiler.version=18",
		"--lockfile", lockfile,
		"--format", "json",
	)
	require.NoError(t, err)
	assert.FileExists(t, lockfile)

	var resp dto.LockResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Packages, 1)
	assert.Equal(t, "gtest", resp.Packages[0].Name)
	assert.Equal(t, "1.16.0", resp.Packages[0].Resolved)
	assert.Contains(t, resp.Packages[0].Digest, "sha256:")
}

func TestProfileShowCommand(t *testing.T) {
	dir := t.TempDir()
	useSystemConfig(t, dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "profiles"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profiles", "base.yaml"), []byte(`vars:
  gcc: "14"
settings:
  os: Linux
  compiler: gcc
  compiler.version: "{{ .vars.gcc }}"
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profiles", "default.yaml"), []byte(`extends: [base.yaml]
settings:
  arch: armv8
`), 0o600))

	out, err := runCommand(t, newProfileShowCmd(), "--format", "json")
	require.NoError(t, err)

	var info dto.ProfileInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "14", info.Settings["compiler.version"])
	assert.Equal(t, "armv8", info.Settings["arch"])
}

package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCMakeTemplates_Load(t *testing.T) {
	t.Parallel()

	tmpl, err := CMakeTemplates()
	require.NoError(t, err)

	for _, name := range []string{Config, ConfigVersion, Targets, Toolchain} {
		assert.NotNil(t, tmpl.Lookup(name), "template %s should be loaded", name)
	}
}

func TestCMakeTemplates_RenderToolchain(t *testing.T) {
	t.Parallel()

	tmpl, err := CMakeTemplates()
	require.NoError(t, err)

	out, err := Render(tmpl, Toolchain, ToolchainData{
		RunID:      "run-1",
		Platform:   "Linux-x86_64-gcc14-release",
		CppStd:     "26",
		Extensions: "OFF",
		BuildType:  "Release",
	})
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "set(CMAKE_CXX_STANDARD 26)\n")
	assert.Contains(t, content, "set(CMAKE_CXX_STANDARD_REQUIRED ON)\n")
	assert.Contains(t, content, "set(CMAKE_CXX_EXTENSIONS OFF)\n")
	assert.Contains(t, content, `set(CMAKE_BUILD_TYPE "Release"`)

	out, err = Render(tmpl, Toolchain, ToolchainData{CppStd: "26", Extensions: "OFF", MultiConfig: true})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "CMAKE_BUILD_TYPE")
}

func TestCMakeTemplates_RenderTargets(t *testing.T) {
	t.Parallel()

	tmpl, err := CMakeTemplates()
	require.NoError(t, err)

	out, err := Render(tmpl, Targets, PackageData{
		Name:        "gtest",
		Version:     "1.16.0",
		FileName:    "GTest",
		IncludeDirs: []string{"/usr/include"},
		LibDirs:     []string{"/usr/lib"},
		Components: []ComponentData{
			{Target: "GTest::gtest", LinkLibraries: []string{"gtest", "pthread"}},
			{Target: "GTest::gmock", LinkLibraries: []string{"gmock", "GTest::gtest"}},
		},
	})
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "add_library(GTest::gtest INTERFACE IMPORTED)")
	assert.Contains(t, content, `INTERFACE_LINK_LIBRARIES "gmock;GTest::gtest")`)
	assert.Contains(t, content, `INTERFACE_INCLUDE_DIRECTORIES "/usr/include"`)
}

func TestCMakeList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `""`, cmakeList(nil))
	assert.Equal(t, `"a;b"`, cmakeList([]string{"a", "b"}))
	assert.Equal(t, `"C:/deps/include;X=\"y\""`, cmakeList([]string{`C:\deps\include`, `X="y"`}))
}

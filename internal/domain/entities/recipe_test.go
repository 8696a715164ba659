package entities_test

import (
	"testing"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRecipe(t *testing.T) {
	t.Parallel()

	recipe := entities.DefaultRecipe()

	requires := recipe.Requires()
	require.Len(t, requires, 1)
	assert.Equal(t, "gtest", requires[0].Name())
	assert.Equal(t, "1.16.0", requires[0].Version())

	opts := recipe.Options().For(values.MustParsePackageReference("gtest/1.16.0"))
	assert.Equal(t, map[string]string{"build_gmock": "True"}, opts)

	tc := recipe.Toolchain()
	assert.Equal(t, "26", tc.CppStd.String())
	assert.Equal(t, "OFF", tc.Extensions.String())

	assert.Equal(t, map[string]string{"BUILD_TESTING": "ON"}, recipe.CacheVariables())
}

func TestRecipe_AccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	recipe := entities.DefaultRecipe()

	vars := recipe.CacheVariables()
	vars["BUILD_TESTING"] = "OFF"
	assert.Equal(t, "ON", recipe.CacheVariables()["BUILD_TESTING"])

	requires := recipe.Requires()
	requires[0] = values.MustParsePackageReference("zlib/1.3.1")
	assert.Equal(t, "gtest", recipe.Requires()[0].Name())
}

func TestRequirements_Add(t *testing.T) {
	t.Parallel()

	t.Run("idempotent", func(t *testing.T) {
		reqs := entities.NewRequirements()
		ref := values.MustParsePackageReference("gtest/1.16.0")

		require.NoError(t, reqs.Add(ref))
		require.NoError(t, reqs.Add(ref))

		assert.Equal(t, 1, reqs.Len())
		got, ok := reqs.Get("gtest")
		require.True(t, ok)
		assert.True(t, got.Ref.Equals(ref))
	})

	t.Run("conflicting version", func(t *testing.T) {
		reqs := entities.NewRequirements()
		require.NoError(t, reqs.Add(values.MustParsePackageReference("gtest/1.16.0")))

		err := reqs.Add(values.MustParsePackageReference("gtest/1.15.0"))
		assert.ErrorContains(t, err, "conflicting requirements")
		assert.Equal(t, 1, reqs.Len())
	})

	t.Run("keeps registration order", func(t *testing.T) {
		reqs := entities.NewRequirements()
		require.NoError(t, reqs.Add(values.MustParsePackageReference("zlib/1.3.1")))
		require.NoError(t, reqs.Add(values.MustParsePackageReference("gtest/1.16.0")))

		list := reqs.List()
		require.Len(t, list, 2)
		assert.Equal(t, "zlib", list[0].Ref.Name())
		assert.Equal(t, "gtest", list[1].Ref.Name())
	})
}

func TestOptionSet(t *testing.T) {
	t.Parallel()

	t.Run("duplicate key", func(t *testing.T) {
		key := values.MustParseOptionKey("gtest/*:shared")
		_, err := entities.NewOptionSet(
			entities.OptionEntry{Key: key, Value: "True"},
			entities.OptionEntry{Key: key, Value: "False"},
		)
		assert.ErrorContains(t, err, "duplicate option")
	})

	t.Run("later pattern wins", func(t *testing.T) {
		set, err := entities.NewOptionSet(
			entities.OptionEntry{Key: values.MustParseOptionKey("*:shared"), Value: "True"},
			entities.OptionEntry{Key: values.MustParseOptionKey("gtest/*:shared"), Value: "False"},
		)
		require.NoError(t, err)

		assert.Equal(t, "False", set.For(values.MustParsePackageReference("gtest/1.16.0"))["shared"])
		assert.Equal(t, "True", set.For(values.MustParsePackageReference("zlib/1.3.1"))["shared"])
	})
}

func TestNewPlatform(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		p, err := entities.NewPlatform(values.Settings{
			"os":               "Linux",
			"arch":             "x86_64",
			"compiler":         "gcc",
			"compiler.version": "14",
			"build_type":       "Release",
		})
		require.NoError(t, err)
		assert.Equal(t, "Linux", p.OS)
		assert.Equal(t, "release", p.Variant())
		assert.False(t, p.MultiConfig())
		assert.Equal(t, "Linux-x86_64-gcc14-release", p.String())
	})

	t.Run("missing and invalid settings are all reported", func(t *testing.T) {
		_, err := entities.NewPlatform(values.Settings{
			"os":               "Plan9",
			"compiler":         "gcc",
			"compiler.version": "fourteen",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `setting "arch" is required`)
		assert.Contains(t, err.Error(), `invalid value "Plan9"`)
		assert.Contains(t, err.Error(), `invalid compiler.version "fourteen"`)
	})

	t.Run("msvc is multi-config", func(t *testing.T) {
		p, err := entities.NewPlatform(values.Settings{
			"os":               "Windows",
			"arch":             "x86_64",
			"compiler":         "msvc",
			"compiler.version": "194",
		})
		require.NoError(t, err)
		assert.True(t, p.MultiConfig())
	})
}

func TestPackageInfo_Validate(t *testing.T) {
	t.Parallel()

	base := func() *entities.PackageInfo {
		return &entities.PackageInfo{
			Name:          "gtest",
			Version:       "1.16.0",
			CMakeFileName: "GTest",
			Components: []entities.ComponentInfo{
				{Name: "gtest", Target: "GTest::gtest"},
				{Name: "gmock", Target: "GTest::gmock", Requires: []string{"gtest"}},
			},
			Options: map[string]entities.OptionSpec{
				"build_gmock": {Default: "True", Values: []string{"True", "False"}},
			},
		}
	}

	assert.NoError(t, base().Validate())

	noFile := base()
	noFile.CMakeFileName = ""
	assert.ErrorContains(t, noFile.Validate(), "cmake_file_name is required")

	badDep := base()
	badDep.Components[1].Requires = []string{"gtest_main"}
	assert.ErrorContains(t, badDep.Validate(), `unknown component "gtest_main"`)

	badDefault := base()
	badDefault.Options["build_gmock"] = entities.OptionSpec{Default: "Maybe", Values: []string{"True", "False"}}
	assert.ErrorContains(t, badDefault.Validate(), "is not an allowed value")
}

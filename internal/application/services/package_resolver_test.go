package services

import (
	"context"
	"testing"

	apperrors "github.com/petersen65/CppPlayground/internal/application/errors"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zlibInfo(version string) *entities.PackageInfo {
	return &entities.PackageInfo{
		Name:          "zlib",
		Version:       version,
		CMakeFileName: "ZLIB",
	}
}

func requirements(t *testing.T, refs ...string) *entities.Requirements {
	t.Helper()
	reqs := entities.NewRequirements()
	for _, r := range refs {
		require.NoError(t, reqs.Add(values.MustParsePackageReference(r)))
	}
	return reqs
}

func platformFor(t *testing.T) *entities.Platform {
	t.Helper()
	p, err := entities.NewPlatform(linuxGCC("14"))
	require.NoError(t, err)
	return p
}

func TestPackageResolver_TransitiveDependenciesFirst(t *testing.T) {
	t.Parallel()

	gtest := gtestInfo("1.16.0")
	gtest.Requires = []string{"zlib/1.3.1"}
	resolver := NewPackageResolver(newMockIndex(gtest, zlibInfo("1.3.1")), MockVersionResolver{}, &MockDigester{}, nil)

	pkgs, err := resolver.Resolve(context.Background(), requirements(t, "gtest/1.16.0"),
		entities.OptionSet{}, platformFor(t), nil)
	require.NoError(t, err)

	require.Len(t, pkgs, 2)
	assert.Equal(t, "zlib/1.3.1", pkgs[0].Ref.String())
	assert.Equal(t, "gtest/1.16.0", pkgs[1].Ref.String())
	assert.Equal(t, []string{"ZLIB::zlib"}, pkgs[0].Targets())
	assert.Equal(t, "sha256:zlib-1.3.1", pkgs[0].Digest)
	assert.Equal(t, "mock:zlib-1.3.1", pkgs[0].Source)
}

func TestPackageResolver_ConflictingTransitiveRequirement(t *testing.T) {
	t.Parallel()

	gtest := gtestInfo("1.16.0")
	gtest.Requires = []string{"zlib/1.2.13"}
	resolver := NewPackageResolver(newMockIndex(gtest, zlibInfo("1.2.13"), zlibInfo("1.3.1")),
		MockVersionResolver{}, &MockDigester{}, nil)

	_, err := resolver.Resolve(context.Background(), requirements(t, "gtest/1.16.0", "zlib/1.3.1"),
		entities.OptionSet{}, platformFor(t), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnresolvableDependency)
	assert.Contains(t, err.Error(), "conflicting requirements")
}

func TestPackageResolver_BindsRecipeOptions(t *testing.T) {
	t.Parallel()

	resolver := NewPackageResolver(newMockIndex(gtestInfo("1.16.0")), MockVersionResolver{}, &MockDigester{}, nil)
	off, err := entities.NewOptionSet(entities.OptionEntry{
		Key:   values.MustParseOptionKey("gtest/*:build_gmock"),
		Value: "False",
	})
	require.NoError(t, err)

	pkgs, err := resolver.Resolve(context.Background(), requirements(t, "gtest/1.16.0"), off, platformFor(t), nil)
	require.NoError(t, err)

	require.Len(t, pkgs, 1)
	assert.Equal(t, "False", pkgs[0].Options["build_gmock"])
	assert.Equal(t, "False", pkgs[0].Options["shared"])
	assert.Equal(t, []string{"GTest::gtest"}, pkgs[0].Targets())
}

func TestPackageResolver_RejectsUnknownOption(t *testing.T) {
	t.Parallel()

	info := gtestInfo("1.16.0")
	delete(info.Options, "build_gmock")
	info.Components = nil
	resolver := NewPackageResolver(newMockIndex(info), MockVersionResolver{}, &MockDigester{}, nil)

	_, err := resolver.Resolve(context.Background(), requirements(t, "gtest/1.16.0"),
		entities.DefaultRecipe().Options(), platformFor(t), nil)
	require.Error(t, err)

	var configErr *apperrors.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, err.Error(), `no option "build_gmock"`)
}

func TestPackageResolver_LockPinsVersion(t *testing.T) {
	t.Parallel()

	resolver := NewPackageResolver(newMockIndex(zlibInfo("1.2.13"), zlibInfo("1.3.1")),
		MockVersionResolver{}, &MockDigester{}, nil)

	lock := entities.NewLockfile()
	require.NoError(t, lock.AddPackage("zlib", entities.PackageLock{
		Requested: "[>=1.2]",
		Resolved:  "1.2.13",
		Digest:    "sha256:zlib-1.2.13",
	}))

	// The mock resolver only knows exact versions, so success means the
	// lock supplied the version.
	pkgs, err := resolver.Resolve(context.Background(), requirements(t, "zlib/[>=1.2]"),
		entities.OptionSet{}, platformFor(t), lock)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "zlib/1.2.13", pkgs[0].Ref.String())
	assert.Equal(t, "[>=1.2]", pkgs[0].Requested)
}

func TestPackageResolver_LockIgnoredForChangedConstraint(t *testing.T) {
	t.Parallel()

	resolver := NewPackageResolver(newMockIndex(zlibInfo("1.2.13"), zlibInfo("1.3.1")),
		MockVersionResolver{}, &MockDigester{}, nil)

	lock := entities.NewLockfile()
	require.NoError(t, lock.AddPackage("zlib", entities.PackageLock{
		Requested: "1.2.13",
		Resolved:  "1.2.13",
		Digest:    "sha256:zlib-1.2.13",
	}))

	pkgs, err := resolver.Resolve(context.Background(), requirements(t, "zlib/1.3.1"),
		entities.OptionSet{}, platformFor(t), lock)
	require.NoError(t, err)
	assert.Equal(t, "zlib/1.3.1", pkgs[0].Ref.String())
}

func TestPackageResolver_InvalidCondition(t *testing.T) {
	t.Parallel()

	info := gtestInfo("1.16.0")
	info.Components[1].When = `options.build_gmock ==`
	resolver := NewPackageResolver(newMockIndex(info), MockVersionResolver{}, &MockDigester{}, nil)

	_, err := resolver.Resolve(context.Background(), requirements(t, "gtest/1.16.0"),
		entities.OptionSet{}, platformFor(t), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid condition")
}

package services

import (
	"testing"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolved(ref string, requires ...string) *entities.ResolvedPackage {
	r := values.MustParsePackageReference(ref)
	return &entities.ResolvedPackage{
		Ref:  r,
		Info: &entities.PackageInfo{Name: r.Name(), Version: r.Version(), Requires: requires},
	}
}

func names(pkgs []*entities.ResolvedPackage) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.Ref.Name())
	}
	return out
}

func Test_DependencyResolver_BuildPackageDAG_NoDependencies(t *testing.T) {
	resolver := NewDependencyResolver()
	pkgs := []*entities.ResolvedPackage{
		resolved("gtest/1.16.0"),
		resolved("zlib/1.3.1"),
		resolved("fmt/11.0.2"),
	}

	levels, err := resolver.BuildPackageDAG(pkgs)
	require.NoError(t, err)
	require.Len(t, levels, 1, "all packages should be in level 0")
	assert.Equal(t, 0, levels[0].Level)
	assert.Equal(t, []string{"fmt", "gtest", "zlib"}, names(levels[0].Packages))
}

func Test_DependencyResolver_BuildPackageDAG_LinearDependencies(t *testing.T) {
	resolver := NewDependencyResolver()
	pkgs := []*entities.ResolvedPackage{
		resolved("app/1.0.0", "spdlog/1.14.1"),
		resolved("spdlog/1.14.1", "fmt/11.0.2"),
		resolved("fmt/11.0.2"),
	}

	levels, err := resolver.BuildPackageDAG(pkgs)
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, []string{"fmt"}, names(levels[0].Packages))
	assert.Equal(t, []string{"spdlog"}, names(levels[1].Packages))
	assert.Equal(t, []string{"app"}, names(levels[2].Packages))
}

func Test_DependencyResolver_Order_Diamond(t *testing.T) {
	resolver := NewDependencyResolver()
	pkgs := []*entities.ResolvedPackage{
		resolved("top/1.0.0", "left/1.0.0", "right/1.0.0"),
		resolved("right/1.0.0", "base/1.0.0"),
		resolved("left/1.0.0", "base/1.0.0", "base/1.0.0"),
		resolved("base/1.0.0"),
	}

	ordered, err := resolver.Order(pkgs)
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "left", "right", "top"}, names(ordered))
}

func Test_DependencyResolver_CircularDependency(t *testing.T) {
	resolver := NewDependencyResolver()
	pkgs := []*entities.ResolvedPackage{
		resolved("aa/1.0.0", "bb/1.0.0"),
		resolved("bb/1.0.0", "aa/1.0.0"),
		resolved("cc/1.0.0"),
	}

	_, err := resolver.BuildPackageDAG(pkgs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
	assert.Contains(t, err.Error(), "[aa bb]")
}

func Test_DependencyResolver_MissingDependency(t *testing.T) {
	resolver := NewDependencyResolver()
	pkgs := []*entities.ResolvedPackage{
		resolved("gtest/1.16.0", "abseil/20240722.0"),
	}

	_, err := resolver.BuildPackageDAG(pkgs)
	assert.ErrorContains(t, err, "requires unresolved package abseil")
}

package entities

import (
	"maps"

	"github.com/petersen65/CppPlayground/internal/domain/values"
)

// Fixed declaration of the playground build.
const (
	TestLibraryReference = "gtest/1.16.0"
	MockOptionKey        = "gtest/*:build_gmock"
	MockOptionValue      = "True"
	CppStdVersion        = "26"
	BuildTestingVariable = "BUILD_TESTING"
)

// ToolchainConstraint fixes the language standard and extension mode the
// compiler is invoked with.
type ToolchainConstraint struct {
	CppStd     values.CppStd
	Extensions values.Switch
}

// Recipe is the immutable declaration a run works from: what the project
// requires, which package options it sets, and how the toolchain is
// constrained. It is built once per run and never mutated.
type Recipe struct {
	requires       []values.PackageReference
	options        OptionSet
	toolchain      ToolchainConstraint
	cacheVariables map[string]string
}

// DefaultRecipe returns the playground declaration: GoogleTest 1.16.0 with
// GoogleMock enabled, C++26 without extensions, tests enabled.
func DefaultRecipe() *Recipe {
	options, err := NewOptionSet(OptionEntry{
		Key:   values.MustParseOptionKey(MockOptionKey),
		Value: MockOptionValue,
	})
	if err != nil {
		panic(err)
	}

	return &Recipe{
		requires: []values.PackageReference{values.MustParsePackageReference(TestLibraryReference)},
		options:  options,
		toolchain: ToolchainConstraint{
			CppStd:     values.MustNewCppStd(CppStdVersion),
			Extensions: values.Off,
		},
		cacheVariables: map[string]string{
			BuildTestingVariable: values.On.String(),
		},
	}
}

// Requires returns the declared package references.
func (r *Recipe) Requires() []values.PackageReference {
	out := make([]values.PackageReference, len(r.requires))
	copy(out, r.requires)
	return out
}

// Options returns the declared option assignments.
func (r *Recipe) Options() OptionSet {
	return r.options
}

// Toolchain returns the toolchain constraint.
func (r *Recipe) Toolchain() ToolchainConstraint {
	return r.toolchain
}

// CacheVariables returns a copy of the CMake cache variables to preset.
func (r *Recipe) CacheVariables() map[string]string {
	return maps.Clone(r.cacheVariables)
}

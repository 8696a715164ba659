package services

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

// cppStdSupport maps a compiler to the first version accepting each
// standard. Missing entries mean the compiler cannot be asked for it.
var cppStdSupport = map[string]map[string]string{
	"gcc": {
		"98": "0", "11": "4.8", "14": "5", "17": "7", "20": "10", "23": "11", "26": "14",
	},
	"clang": {
		"98": "0", "11": "3.4", "14": "3.5", "17": "5", "20": "10", "23": "17", "26": "17",
	},
	"apple-clang": {
		"98": "0", "11": "5", "14": "6.1", "17": "10", "20": "13", "23": "16", "26": "16",
	},
	"msvc": {
		"14": "190", "17": "191", "20": "192", "23": "193",
	},
}

// ToolchainChecker verifies that a platform's compiler can honour a
// toolchain constraint.
type ToolchainChecker struct{}

// NewToolchainChecker creates a toolchain checker.
func NewToolchainChecker() *ToolchainChecker {
	return &ToolchainChecker{}
}

// Check returns an error describing why the compiler cannot build with the
// constraint, or nil.
func (c *ToolchainChecker) Check(platform *entities.Platform, constraint entities.ToolchainConstraint) error {
	std := constraint.CppStd.String()

	table, ok := cppStdSupport[platform.Compiler]
	if !ok {
		return fmt.Errorf("compiler %q is not known to support any C++ standard", platform.Compiler)
	}
	minimum, ok := table[std]
	if !ok {
		return fmt.Errorf("compiler %s does not support C++%s", platform.Compiler, std)
	}

	have, err := semver.NewVersion(platform.CompilerVersion)
	if err != nil {
		return fmt.Errorf("invalid compiler version %q: %w", platform.CompilerVersion, err)
	}
	need, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return fmt.Errorf("invalid support table entry %q: %w", minimum, err)
	}
	if !need.Check(have) {
		return fmt.Errorf("C++%s requires %s >= %s, got %s", std, platform.Compiler, minimum, platform.CompilerVersion)
	}
	return nil
}

// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

// PackageIndex provides package metadata.
type PackageIndex interface {
	// Versions lists the versions available for name.
	// Returns *entities.PackageNotFoundError when the package is unknown.
	Versions(ctx context.Context, name string) ([]string, error)

	// Lookup returns the entry for name at an exact version, and the
	// source it was loaded from.
	// Returns *entities.PackageNotFoundError when it doesn't exist.
	Lookup(ctx context.Context, name, version string) (*entities.PackageInfo, string, error)
}

// LayoutProvider selects the directory convention for a run.
type LayoutProvider interface {
	Select(ctx context.Context, platform *entities.Platform, sourceFolder string) (*entities.Layout, error)
}

// GenerationInput is everything a generator needs for one run.
type GenerationInput struct {
	RunID          string
	Platform       *entities.Platform
	Layout         *entities.Layout
	Packages       []*entities.ResolvedPackage
	Toolchain      entities.ToolchainConstraint
	CacheVariables map[string]string
}

// DependencyGenerator writes the dependency descriptor set into dir.
type DependencyGenerator interface {
	Generate(ctx context.Context, dir string, in GenerationInput) (*entities.DescriptorSet, error)
}

// ToolchainGenerator writes the toolchain descriptor into dir.
// LinkUserPresets points the source folder's user presets at a committed
// presets file and returns the file it wrote, or "" when it wrote none.
type ToolchainGenerator interface {
	Generate(ctx context.Context, dir string, in GenerationInput) (*entities.ToolchainDescriptor, error)
	LinkUserPresets(ctx context.Context, sourceFolder, presetsPath string) (string, error)
}

// Staging is a scratch directory that replaces its target on Commit.
type Staging interface {
	// Dir is where generators write.
	Dir() string

	// Commit atomically replaces the target directory with Dir.
	Commit() error

	// Discard removes Dir. Safe to call after Commit.
	Discard() error
}

// ArtifactStager creates staging directories for a target directory.
type ArtifactStager interface {
	Stage(ctx context.Context, target string) (Staging, error)
}

// OutputFormatter formats command results.
type OutputFormatter interface {
	Format(v any) error
}

// FormatterOptions tunes formatter output.
type FormatterOptions struct {
	Indent bool
	Color  bool
}

// OutputFormatterFactory creates formatters.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
}

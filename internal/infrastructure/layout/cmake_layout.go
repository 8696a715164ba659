// Package layout selects the CMake directory convention for a run.
package layout

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "github.com/petersen65/CppPlayground/internal/application/errors"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

const (
	// DefaultBuildRoot is the build folder relative to the source folder.
	DefaultBuildRoot = "build"

	// GeneratorsDir is the generators folder relative to the build folder.
	GeneratorsDir = "generators"
)

// CMakeLayout implements ports.LayoutProvider with the CMake layout:
// build/<build_type>/generators for single-config generators and
// build/generators for multi-config ones.
type CMakeLayout struct {
	buildRoot string
}

// NewCMakeLayout creates a layout provider. An empty buildRoot means
// DefaultBuildRoot.
func NewCMakeLayout(buildRoot string) *CMakeLayout {
	if buildRoot == "" {
		buildRoot = DefaultBuildRoot
	}
	return &CMakeLayout{buildRoot: buildRoot}
}

// Select computes the folders for platform. It only inspects the
// filesystem; nothing is created.
func (l *CMakeLayout) Select(ctx context.Context, platform *entities.Platform, sourceFolder string) (*entities.Layout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sourceFolder == "" {
		sourceFolder = "."
	}

	source, err := filepath.Abs(sourceFolder)
	if err != nil {
		return nil, apperrors.NewUnsupportedLayoutError("source", sourceFolder, "cannot resolve path", err)
	}
	if err := requireDir(source, "source", true); err != nil {
		return nil, err
	}

	multi := platform.MultiConfig()
	if !multi && platform.BuildType == "" {
		return nil, apperrors.NewUnsupportedLayoutError("build", "",
			"setting build_type is required for single-config generators", nil)
	}

	buildRoot := l.buildRoot
	if !filepath.IsAbs(buildRoot) {
		buildRoot = filepath.Join(source, buildRoot)
	}
	build := buildRoot
	if !multi {
		build = filepath.Join(buildRoot, platform.BuildType)
	}
	generators := filepath.Join(build, GeneratorsDir)

	for _, check := range []struct{ role, path string }{
		{"build", buildRoot},
		{"build", build},
		{"generators", generators},
	} {
		if err := requireDir(check.path, check.role, false); err != nil {
			return nil, err
		}
	}

	return &entities.Layout{
		SourceFolder:     source,
		BuildFolder:      build,
		GeneratorsFolder: generators,
		BuildType:        platform.BuildType,
		MultiConfig:      multi,
	}, nil
}

// requireDir fails when path exists as something other than a directory,
// or when it is missing and mustExist is set.
func requireDir(path, role string, mustExist bool) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if mustExist {
			return apperrors.NewUnsupportedLayoutError(role, path, "does not exist", nil)
		}
		return nil
	case err != nil:
		return apperrors.NewUnsupportedLayoutError(role, path, "cannot be inspected", err)
	case !info.IsDir():
		return apperrors.NewUnsupportedLayoutError(role, path, "exists and is not a directory", nil)
	}
	return nil
}

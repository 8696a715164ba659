package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/petersen65/CppPlayground/internal/application/dto"
	apperrors "github.com/petersen65/CppPlayground/internal/application/errors"
	"github.com/petersen65/CppPlayground/internal/application/ports"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
	domainservices "github.com/petersen65/CppPlayground/internal/domain/services"
	"github.com/petersen65/CppPlayground/internal/domain/values"
)

// Run is the state of one configuration pass. It is created by NewRun
// and discarded once the pass finishes.
type Run struct {
	ID           string
	Platform     *entities.Platform
	Requirements *entities.Requirements
	Packages     []*entities.ResolvedPackage
	Layout       *entities.Layout
	Lock         *entities.Lockfile
}

// ConfigureRecipe is the build configuration use case: declare the
// recipe's requirements, select the layout, and generate the dependency
// and toolchain descriptors.
type ConfigureRecipe struct {
	recipe     *entities.Recipe
	packages   *PackageResolver
	lockfiles  *LockfileService
	layouts    ports.LayoutProvider
	checker    *domainservices.ToolchainChecker
	deps       ports.DependencyGenerator
	toolchains ports.ToolchainGenerator
	stager     ports.ArtifactStager
	logger     *slog.Logger
}

// NewConfigureRecipe creates the use case with all dependencies injected.
func NewConfigureRecipe(
	recipe *entities.Recipe,
	packages *PackageResolver,
	lockfiles *LockfileService,
	layouts ports.LayoutProvider,
	deps ports.DependencyGenerator,
	toolchains ports.ToolchainGenerator,
	stager ports.ArtifactStager,
	logger *slog.Logger,
) *ConfigureRecipe {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigureRecipe{
		recipe:     recipe,
		packages:   packages,
		lockfiles:  lockfiles,
		layouts:    layouts,
		checker:    domainservices.NewToolchainChecker(),
		deps:       deps,
		toolchains: toolchains,
		stager:     stager,
		logger:     logger,
	}
}

// Recipe returns the declaration this use case configures.
func (uc *ConfigureRecipe) Recipe() *entities.Recipe {
	return uc.recipe
}

// NewRun starts a configuration pass for platform. lock may be nil.
func (uc *ConfigureRecipe) NewRun(platform *entities.Platform, lock *entities.Lockfile) *Run {
	return &Run{
		ID:           uuid.NewString(),
		Platform:     platform,
		Requirements: entities.NewRequirements(),
		Lock:         lock,
	}
}

// DeclareRequirements registers the recipe's requirements on run and
// resolves them against the package index. Calling it again registers
// nothing new.
func (uc *ConfigureRecipe) DeclareRequirements(ctx context.Context, run *Run) error {
	for _, ref := range uc.recipe.Requires() {
		if err := run.Requirements.Add(ref); err != nil {
			return apperrors.NewUnresolvableDependencyError(ref.String(), err)
		}
	}

	pkgs, err := uc.packages.Resolve(ctx, run.Requirements, uc.recipe.Options(), run.Platform, run.Lock)
	if err != nil {
		return err
	}
	run.Packages = pkgs

	uc.logger.Debug("requirements declared",
		"run_id", run.ID,
		"requirements", run.Requirements.Len(),
		"packages", len(pkgs))
	return nil
}

// SelectLayout records the directory convention for run.
func (uc *ConfigureRecipe) SelectLayout(ctx context.Context, run *Run, sourceFolder string) error {
	layout, err := uc.layouts.Select(ctx, run.Platform, sourceFolder)
	if err != nil {
		var layoutErr *apperrors.UnsupportedLayoutError
		if errors.As(err, &layoutErr) {
			return err
		}
		return apperrors.NewUnsupportedLayoutError("source", sourceFolder, "layout selection failed", err)
	}
	run.Layout = layout

	uc.logger.Debug("layout selected",
		"run_id", run.ID,
		"build_folder", layout.BuildFolder,
		"generators_folder", layout.GeneratorsFolder,
		"multi_config", layout.MultiConfig)
	return nil
}

// GenerateDependencyDescriptors writes the descriptor set for run's
// resolved packages into dir.
func (uc *ConfigureRecipe) GenerateDependencyDescriptors(ctx context.Context, run *Run, dir string) (*entities.DescriptorSet, error) {
	if run.Layout == nil {
		return nil, fmt.Errorf("layout must be selected before generating descriptors")
	}
	set, err := uc.deps.Generate(ctx, dir, uc.generationInput(run))
	if err != nil {
		return nil, asWriteError("dependency", dir, err)
	}
	return set, nil
}

// GenerateToolchainDescriptor writes the toolchain descriptor for run into
// dir.
func (uc *ConfigureRecipe) GenerateToolchainDescriptor(ctx context.Context, run *Run, dir string) (*entities.ToolchainDescriptor, error) {
	if run.Layout == nil {
		return nil, fmt.Errorf("layout must be selected before generating descriptors")
	}
	desc, err := uc.toolchains.Generate(ctx, dir, uc.generationInput(run))
	if err != nil {
		return nil, asWriteError("toolchain", dir, err)
	}
	return desc, nil
}

// Execute runs a full configuration pass. Either both descriptors are
// committed to the generators folder or nothing there changes.
func (uc *ConfigureRecipe) Execute(ctx context.Context, req *dto.InstallRequest) (*dto.InstallResponse, error) {
	start := time.Now()

	platform, err := entities.NewPlatform(req.Settings)
	if err != nil {
		return nil, apperrors.NewValidationError("settings", err.Error())
	}
	if std := req.Settings.Get(values.SettingCompilerCppstd); std != "" && std != uc.recipe.Toolchain().CppStd.String() {
		uc.logger.Debug("ignoring compiler.cppstd from settings",
			"settings", std,
			"declared", uc.recipe.Toolchain().CppStd.String())
	}

	lock, err := uc.lockfiles.Load(ctx, req.LockfilePath)
	if err != nil {
		return nil, apperrors.NewConfigurationError("lockfile", req.LockfilePath, err)
	}

	run := uc.NewRun(platform, lock)
	uc.logger.Info("configuring", "run_id", run.ID, "platform", platform.String())

	if err := uc.DeclareRequirements(ctx, run); err != nil {
		return nil, err
	}
	if err := uc.SelectLayout(ctx, run, req.SourceFolder); err != nil {
		return nil, err
	}
	if err := uc.checker.Check(platform, uc.recipe.Toolchain()); err != nil {
		return nil, apperrors.NewIncompatibleToolchainError(platform.Compiler, platform.CompilerVersion, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	staging, err := uc.stager.Stage(ctx, run.Layout.GeneratorsFolder)
	if err != nil {
		return nil, asWriteError("staging", run.Layout.GeneratorsFolder, err)
	}
	defer func() {
		if err := staging.Discard(); err != nil {
			uc.logger.Warn("failed to remove staging directory", "dir", staging.Dir(), "error", err)
		}
	}()

	set, err := uc.GenerateDependencyDescriptors(ctx, run, staging.Dir())
	if err != nil {
		return nil, err
	}
	toolchain, err := uc.GenerateToolchainDescriptor(ctx, run, staging.Dir())
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := staging.Commit(); err != nil {
		return nil, asWriteError("staging", run.Layout.GeneratorsFolder, err)
	}

	presets := filepath.Join(run.Layout.GeneratorsFolder, toolchain.PresetsFile)
	userPresets, err := uc.toolchains.LinkUserPresets(ctx, run.Layout.SourceFolder, presets)
	if err != nil {
		return nil, asWriteError("user presets", run.Layout.SourceFolder, err)
	}
	if userPresets == "" {
		uc.logger.Warn("user presets file not managed by recipe, leaving it unchanged",
			"source_folder", run.Layout.SourceFolder)
	}
	toolchain.UserPresets = userPresets

	uc.logger.Info("configuration complete",
		"run_id", run.ID,
		"packages", len(run.Packages),
		"generators_folder", run.Layout.GeneratorsFolder)

	return uc.buildResponse(run, set, toolchain, time.Since(start)), nil
}

// Lock resolves the recipe's requirements for the requested settings and
// writes the result as a lockfile. No descriptors are generated.
func (uc *ConfigureRecipe) Lock(ctx context.Context, req *dto.LockRequest) (*entities.Lockfile, error) {
	platform, err := entities.NewPlatform(req.Settings)
	if err != nil {
		return nil, apperrors.NewValidationError("settings", err.Error())
	}

	run := uc.NewRun(platform, nil)
	if err := uc.DeclareRequirements(ctx, run); err != nil {
		return nil, err
	}

	lock, err := uc.lockfiles.Write(ctx, run.Packages, req.LockfilePath)
	if err != nil {
		return nil, apperrors.NewConfigurationError("lockfile", req.LockfilePath, err)
	}
	uc.logger.Info("lockfile written", "path", req.LockfilePath, "packages", lock.PackageCount())
	return lock, nil
}

func (uc *ConfigureRecipe) generationInput(run *Run) ports.GenerationInput {
	return ports.GenerationInput{
		RunID:          run.ID,
		Platform:       run.Platform,
		Layout:         run.Layout,
		Packages:       run.Packages,
		Toolchain:      uc.recipe.Toolchain(),
		CacheVariables: uc.recipe.CacheVariables(),
	}
}

func (uc *ConfigureRecipe) buildResponse(
	run *Run,
	set *entities.DescriptorSet,
	toolchain *entities.ToolchainDescriptor,
	elapsed time.Duration,
) *dto.InstallResponse {
	final := run.Layout.GeneratorsFolder
	files := make([]string, 0, len(set.Files))
	for _, f := range set.Files {
		files = append(files, filepath.Join(final, f))
	}

	committed := *toolchain
	committed.ToolchainFile = filepath.Join(final, toolchain.ToolchainFile)
	committed.PresetsFile = filepath.Join(final, toolchain.PresetsFile)

	return &dto.InstallResponse{
		RunID:    run.ID,
		Platform: run.Platform.String(),
		Layout: dto.LayoutInfo{
			SourceFolder:     run.Layout.SourceFolder,
			BuildFolder:      run.Layout.BuildFolder,
			GeneratorsFolder: run.Layout.GeneratorsFolder,
			MultiConfig:      run.Layout.MultiConfig,
		},
		Packages:    dto.NewResolvedPackageInfo(run.Packages),
		Descriptors: files,
		Toolchain:   &committed,
		Duration:    elapsed,
	}
}

func asWriteError(artifact, path string, err error) error {
	if errors.Is(err, apperrors.ErrDescriptorWrite) {
		return err
	}
	return apperrors.NewDescriptorWriteError(artifact, path, err)
}

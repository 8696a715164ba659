// Package container provides dependency injection for the application.
package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/petersen65/CppPlayground/internal/application/ports"
	"github.com/petersen65/CppPlayground/internal/application/services"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/infrastructure/config"
	"github.com/petersen65/CppPlayground/internal/infrastructure/detect"
	"github.com/petersen65/CppPlayground/internal/infrastructure/filesystem"
	"github.com/petersen65/CppPlayground/internal/infrastructure/generators"
	"github.com/petersen65/CppPlayground/internal/infrastructure/index"
	"github.com/petersen65/CppPlayground/internal/infrastructure/layout"
	"github.com/petersen65/CppPlayground/internal/infrastructure/output"
	"github.com/petersen65/CppPlayground/internal/infrastructure/system"
)

// Container holds all application dependencies.
type Container struct {
	configureRecipe *services.ConfigureRecipe
	profileLoader   *config.ProfileLoader
	detector        *detect.Detector
	prompter        *detect.TerminalPrompter
	formatters      ports.OutputFormatterFactory
	systemCfg       *system.Config
	logger          *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger           *slog.Logger
	SystemConfigPath string

	// SystemConfig is used instead of loading SystemConfigPath when set.
	SystemConfig *system.Config

	// IndexPaths are searched before the configured index paths.
	IndexPaths []string

	// BuildRoot overrides the layout's build folder name.
	BuildRoot string
}

// New creates a new dependency injection container. Index directories
// are read here, so ctx bounds that work.
func New(ctx context.Context, opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	systemCfg := opts.SystemConfig
	if systemCfg == nil {
		configPath := opts.SystemConfigPath
		if configPath == "" {
			configPath = system.DefaultConfigPath()
		}
		loaded, err := system.NewConfigLoader().Load(configPath)
		if err != nil {
			return nil, err
		}
		systemCfg = loaded
	}

	packageIndex, err := buildIndex(ctx, opts, systemCfg)
	if err != nil {
		return nil, err
	}

	// Resolution
	resolver := services.NewPackageResolver(
		packageIndex,
		index.NewSemverResolver(),
		index.NewDigester(),
		opts.Logger,
	)
	lockfiles := services.NewLockfileService(filesystem.NewFileLockfileRepository())

	// Generation
	deps, err := generators.NewCMakeDeps()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dependency generator: %w", err)
	}
	toolchains, err := generators.NewCMakeToolchain()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize toolchain generator: %w", err)
	}

	configureRecipe := services.NewConfigureRecipe(
		entities.DefaultRecipe(),
		resolver,
		lockfiles,
		layout.NewCMakeLayout(opts.BuildRoot),
		deps,
		toolchains,
		filesystem.NewDirStager(),
		opts.Logger,
	)

	return &Container{
		configureRecipe: configureRecipe,
		profileLoader:   config.NewProfileLoader(),
		detector:        detect.NewDetector(opts.Logger),
		prompter:        detect.NewTerminalPrompter(),
		formatters:      output.NewFormatterFactory(),
		systemCfg:       systemCfg,
		logger:          opts.Logger,
	}, nil
}

// buildIndex chains the file indexes in front of the embedded one.
func buildIndex(ctx context.Context, opts Options, cfg *system.Config) (ports.PackageIndex, error) {
	dirs := append(append([]string{}, opts.IndexPaths...), cfg.Index.Paths...)

	var chain []ports.PackageIndex
	if len(dirs) > 0 {
		files, err := index.LoadFileIndex(ctx, opts.Logger, dirs...)
		if err != nil {
			return nil, err
		}
		if files.Len() > 0 {
			chain = append(chain, files)
		}
	}

	if !cfg.Index.DisableEmbedded {
		embedded, err := index.NewEmbeddedIndex()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded index: %w", err)
		}
		chain = append(chain, embedded)
	}

	if len(chain) == 0 {
		opts.Logger.Warn("no package index configured", "paths", dirs)
	}
	return index.NewChainIndex(chain...), nil
}

// ConfigureRecipe returns the configuration use case.
func (c *Container) ConfigureRecipe() *services.ConfigureRecipe {
	return c.configureRecipe
}

// ProfileLoader returns the profile loader.
func (c *Container) ProfileLoader() *config.ProfileLoader {
	return c.profileLoader
}

// Detector returns the host settings detector.
func (c *Container) Detector() *detect.Detector {
	return c.detector
}

// Prompter returns the interactive prompter.
func (c *Container) Prompter() *detect.TerminalPrompter {
	return c.prompter
}

// Formatters returns the output formatter factory.
func (c *Container) Formatters() ports.OutputFormatterFactory {
	return c.formatters
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

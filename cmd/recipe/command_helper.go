package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/petersen65/CppPlayground/internal/infrastructure/container"
	"github.com/petersen65/CppPlayground/internal/infrastructure/system"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
// Handles common setup: config loading, logger creation, dependency injection.
//
// Usage:
//
//	cmd := &cobra.Command{
//	    Use: "inspect",
//	    RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
//	        return show(ctx.Container.ConfigureRecipe().Recipe())
//	    }),
//	}
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		// --index is only registered on commands that resolve packages
		indexPaths, _ := cmd.Flags().GetStringSlice("index")
		buildRoot, _ := cmd.Flags().GetString("build-root")

		configPath := viper.GetString("system_config")
		if configPath == "" {
			configPath = system.DefaultConfigPath()
		}
		systemCfg, err := system.NewConfigLoader().Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		// The timeout also covers reading the index directories.
		ctx, cancel := commandContext(cmd, systemCfg)
		defer cancel()

		c, err := container.New(ctx, container.Options{
			Logger:       logger,
			SystemConfig: systemCfg,
			IndexPaths:   indexPaths,
			BuildRoot:    buildRoot,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		return handler(&CommandContext{
			Container: c,
			Logger:    logger,
			Context:   ctx,
		}, cmd, args)
	}
}

// commandContext derives the command's context, bounded by --timeout on
// commands that register it. An unset flag takes the system config value,
// as CommonOptions.ApplyConfig does.
func commandContext(cmd *cobra.Command, cfg *system.Config) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return ctx, func() {}
	}
	if !cmd.Flags().Changed("timeout") && cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// addResolutionFlags adds the flags shared by commands that resolve the
// declared requirements.
func addResolutionFlags(cmd *cobra.Command, profile *string, settings *[]string, lockfile *string, lockfileDefault string) {
	cmd.Flags().StringVarP(profile, "profile", "p", "",
		"Profile name or path (default from system config)")
	cmd.Flags().StringArrayVarP(settings, "settings", "s", nil,
		"Setting override key=value (repeatable)")
	cmd.Flags().StringSlice("index", nil,
		"Additional package index directory (repeatable)")
	cmd.Flags().StringVar(lockfile, "lockfile", lockfileDefault,
		"Lockfile path")
}

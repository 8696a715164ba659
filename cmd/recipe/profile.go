package main

import (
	"fmt"

	"github.com/petersen65/CppPlayground/internal/application/dto"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/domain/values"
	"github.com/petersen65/CppPlayground/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

// platformSettings must be present before a profile can drive a run.
var platformSettings = []string{
	values.SettingOS,
	values.SettingArch,
	values.SettingCompiler,
	values.SettingCompilerVersion,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage platform profiles",
}

type profileDetectOptions struct {
	CommonOptions
	name        string
	interactive bool
	force       bool
}

func newProfileDetectCmd() *cobra.Command {
	opts := &profileDetectOptions{CommonOptions: DefaultCommonOptions()}

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect host settings and write a profile",
		Long: `Map the host operating system and architecture to settings, look for
a C++ compiler on PATH (CXX, g++, clang++) and write the result as a
profile. With --interactive every detected value can be reviewed.`,
		Example: `  recipe profile detect
  recipe profile detect --name gcc14 --force
  recipe profile detect --interactive`,
		Args: cobra.NoArgs,
		RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
			opts.ApplyConfig(cc.Container.SystemConfig())
			if err := opts.ValidateFlags(); err != nil {
				return err
			}

			ctx, cancel := opts.ApplyToContext(cc.Context)
			defer cancel()

			settings, err := cc.Container.Detector().Detect(ctx)
			if err != nil {
				return fmt.Errorf("failed to detect settings: %w", err)
			}

			missing := missingSettings(settings)
			prompter := cc.Container.Prompter()
			if opts.interactive {
				if !prompter.IsInteractive() {
					return prompter.FormatNonInteractiveError(missing)
				}
				if settings, err = prompter.Review(settings); err != nil {
					return err
				}
			} else if len(missing) > 0 {
				cc.Logger.Warn("profile is incomplete; pass the missing settings with -s", "missing", missing)
			}

			profile := entities.NewProfile(settings)
			if err := profile.Validate(); err != nil {
				return err
			}

			path := cc.Container.SystemConfig().ProfilePath(opts.name)
			if err := config.SaveProfile(path, profile, opts.force); err != nil {
				return err
			}
			cc.Logger.Info("profile written", "path", path)

			return showProfile(cmd, &opts.CommonOptions, cc, path, profile)
		}),
	}

	opts.RegisterFlags(cmd)
	cmd.Flags().StringVar(&opts.name, "name", "", "Profile name or path (default from system config)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Review detected settings interactively")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing profile")
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	opts := DefaultCommonOptions()

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a profile after inheritance and variable substitution",
		Args:  cobra.MaximumNArgs(1),
		RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, args []string) error {
			opts.ApplyConfig(cc.Container.SystemConfig())
			if err := opts.ValidateFlags(); err != nil {
				return err
			}

			var name string
			if len(args) == 1 {
				name = args[0]
			}
			path := cc.Container.SystemConfig().ProfilePath(name)
			profile, err := cc.Container.ProfileLoader().LoadProfile(path)
			if err != nil {
				return err
			}
			return showProfile(cmd, &opts, cc, path, profile)
		}),
	}

	opts.RegisterFlags(cmd)
	return cmd
}

func showProfile(cmd *cobra.Command, opts *CommonOptions, cc *CommandContext, path string, profile *entities.Profile) error {
	formatter, err := cc.Container.Formatters().Create(opts.Format, cmd.OutOrStdout(), opts.FormatterOptions())
	if err != nil {
		return err
	}
	return formatter.Format(&dto.ProfileInfo{Path: path, Settings: profile.Settings})
}

func missingSettings(settings values.Settings) []string {
	var missing []string
	for _, key := range platformSettings {
		if settings.Get(key) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

func init() {
	profileCmd.AddCommand(newProfileDetectCmd())
	profileCmd.AddCommand(newProfileShowCmd())
	rootCmd.AddCommand(profileCmd)
}

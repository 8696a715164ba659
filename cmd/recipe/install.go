package main

import (
	"github.com/petersen65/CppPlayground/internal/application/dto"
	"github.com/spf13/cobra"
)

type installOptions struct {
	CommonOptions
	profile  string
	settings []string
	lockfile string
}

func newInstallCmd() *cobra.Command {
	opts := &installOptions{CommonOptions: DefaultCommonOptions()}

	cmd := &cobra.Command{
		Use:   "install [source-folder]",
		Short: "Resolve dependencies and generate CMake descriptors",
		Long: `Resolve the declared requirements for the platform described by the
profile and -s overrides, select the CMake layout under the source folder,
and write the package config files, toolchain file and CMakePresets.json
into the generators folder.

Either every descriptor is written or the generators folder is left as it
was.`,
		Example: `  recipe install . -pr default
  recipe install -pr ./profiles/gcc14.yaml -s build_type=Debug
  recipe install --lockfile recipe.lock --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, args []string) error {
			return runInstall(cc, cmd, opts, args)
		}),
	}

	opts.RegisterFlags(cmd)
	addResolutionFlags(cmd, &opts.profile, &opts.settings, &opts.lockfile, "")
	cmd.Flags().String("build-root", "", "Build folder name under the source folder (default \"build\")")

	return cmd
}

func runInstall(cc *CommandContext, cmd *cobra.Command, opts *installOptions, args []string) error {
	opts.ApplyConfig(cc.Container.SystemConfig())
	if err := opts.ValidateFlags(); err != nil {
		return err
	}

	sourceFolder := "."
	if len(args) == 1 {
		sourceFolder = args[0]
	}

	settings, profilePath, err := resolveSettings(cc, opts.profile, opts.settings)
	if err != nil {
		return err
	}

	ctx, cancel := opts.ApplyToContext(cc.Context)
	defer cancel()

	resp, err := cc.Container.ConfigureRecipe().Execute(ctx, &dto.InstallRequest{
		Settings:     settings,
		SourceFolder: sourceFolder,
		LockfilePath: opts.lockfile,
		Metadata: dto.RequestMetadata{
			ProfilePath: profilePath,
			Verbose:     verbose,
		},
	})
	if err != nil {
		return err
	}

	formatter, err := cc.Container.Formatters().Create(opts.Format, cmd.OutOrStdout(), opts.FormatterOptions())
	if err != nil {
		return err
	}
	return formatter.Format(resp)
}

func init() {
	rootCmd.AddCommand(newInstallCmd())
}

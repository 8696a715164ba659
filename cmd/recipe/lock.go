package main

import (
	"github.com/petersen65/CppPlayground/internal/application/dto"
	"github.com/spf13/cobra"
)

const defaultLockfile = "recipe.lock"

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Manage the lockfile",
}

type lockCreateOptions struct {
	CommonOptions
	profile  string
	settings []string
	lockfile string
}

func newLockCreateCmd() *cobra.Command {
	opts := &lockCreateOptions{CommonOptions: DefaultCommonOptions()}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Resolve requirements and write a lockfile",
		Long: `Resolve the declared requirements for the given settings and pin the
resolved versions and index digests in a lockfile. Pass the lockfile to
install with --lockfile to reproduce the resolution.`,
		Example: `  recipe lock create -pr default
  recipe lock create -s os=Linux -s arch=x86_64 -s compiler=gcc -s compiler.version=14`,
		Args: cobra.NoArgs,
		RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
			opts.ApplyConfig(cc.Container.SystemConfig())
			if err := opts.ValidateFlags(); err != nil {
				return err
			}

			settings, profilePath, err := resolveSettings(cc, opts.profile, opts.settings)
			if err != nil {
				return err
			}

			ctx, cancel := opts.ApplyToContext(cc.Context)
			defer cancel()

			lock, err := cc.Container.ConfigureRecipe().Lock(ctx, &dto.LockRequest{
				Settings:     settings,
				LockfilePath: opts.lockfile,
				Metadata:     dto.RequestMetadata{ProfilePath: profilePath, Verbose: verbose},
			})
			if err != nil {
				return err
			}

			formatter, err := cc.Container.Formatters().Create(opts.Format, cmd.OutOrStdout(), opts.FormatterOptions())
			if err != nil {
				return err
			}
			return formatter.Format(dto.NewLockResponse(opts.lockfile, lock))
		}),
	}

	opts.RegisterFlags(cmd)
	addResolutionFlags(cmd, &opts.profile, &opts.settings, &opts.lockfile, defaultLockfile)
	return cmd
}

func init() {
	lockCmd.AddCommand(newLockCreateCmd())
	rootCmd.AddCommand(lockCmd)
}

package main

import (
	"github.com/petersen65/CppPlayground/internal/application/dto"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	opts := DefaultCommonOptions()

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the declared requirements and toolchain constraints",
		Args:  cobra.NoArgs,
		RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
			opts.ApplyConfig(cc.Container.SystemConfig())
			if err := opts.ValidateFlags(); err != nil {
				return err
			}

			formatter, err := cc.Container.Formatters().Create(opts.Format, cmd.OutOrStdout(), opts.FormatterOptions())
			if err != nil {
				return err
			}
			return formatter.Format(dto.NewRecipeInfo(cc.Container.ConfigureRecipe().Recipe()))
		}),
	}

	opts.RegisterFlags(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(newInspectCmd())
}

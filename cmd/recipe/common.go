package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/petersen65/CppPlayground/internal/application/ports"
	"github.com/petersen65/CppPlayground/internal/infrastructure/system"
	"github.com/spf13/cobra"
)

var validFormats = []string{"table", "json", "yaml"}

// CommonOptions contains flags shared across commands that produce
// output.
type CommonOptions struct {
	// Output
	Format  string
	NoColor bool

	// Execution
	Timeout time.Duration

	cmd *cobra.Command
}

// DefaultCommonOptions returns sensible defaults.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Timeout: 2 * time.Minute,
		Format:  "table",
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	opts.cmd = cmd

	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Global timeout for the command (0 to disable)")
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: table, json, yaml")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false,
		"Disable colored table output")
}

// ApplyConfig fills flags the user did not set from the system config.
func (opts *CommonOptions) ApplyConfig(cfg *system.Config) {
	if cfg == nil || opts.cmd == nil {
		return
	}
	if !opts.cmd.Flags().Changed("format") && cfg.Output.Format != "" {
		opts.Format = cfg.Output.Format
	}
	if !opts.cmd.Flags().Changed("timeout") && cfg.Timeout > 0 {
		opts.Timeout = cfg.Timeout
	}
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return ctx, func() {}
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags() error {
	if !slices.Contains(validFormats, opts.Format) {
		return fmt.Errorf("invalid format: %s (valid: table, json, yaml)", opts.Format)
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("--timeout cannot be negative")
	}
	return nil
}

// FormatterOptions returns the formatter options for these flags.
func (opts *CommonOptions) FormatterOptions() ports.FormatterOptions {
	return ports.FormatterOptions{
		Indent: true,
		Color:  !opts.NoColor,
	}
}

package output

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/petersen65/CppPlayground/internal/application/dto"
)

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
)

// TableFormatter formats results as human-readable text.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes v as text. Unknown types are rejected.
func (f *TableFormatter) Format(v any) error {
	switch r := v.(type) {
	case *dto.InstallResponse:
		f.formatInstall(r)
	case *dto.RecipeInfo:
		f.formatRecipe(r)
	case *dto.LockResponse:
		f.formatLock(r)
	case *dto.ProfileInfo:
		f.formatProfile(r)
	default:
		return fmt.Errorf("table format does not support %T", v)
	}
	return nil
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) rule() {
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatInstall(r *dto.InstallResponse) {
	f.rule()
	fmt.Fprintf(f.writer, "Platform: %s\n", f.colorize(r.Platform, colorBold))
	fmt.Fprintf(f.writer, "Run: %s\n", r.RunID)
	fmt.Fprintf(f.writer, "Duration: %s\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintln(f.writer)

	fmt.Fprintln(f.writer, f.colorize("Layout:", colorBold))
	fmt.Fprintf(f.writer, "  Source:     %s\n", r.Layout.SourceFolder)
	fmt.Fprintf(f.writer, "  Build:      %s\n", r.Layout.BuildFolder)
	fmt.Fprintf(f.writer, "  Generators: %s\n", r.Layout.GeneratorsFolder)
	fmt.Fprintln(f.writer)

	fmt.Fprintln(f.writer, f.colorize("Packages:", colorBold))
	for _, p := range r.Packages {
		fmt.Fprintf(f.writer, "  %s %s (requested %s)\n", f.colorize("✓", colorGreen), f.colorize(p.Reference, colorCyan), p.Requested)
		fmt.Fprintf(f.writer, "    Targets: %s\n", strings.Join(p.Targets, ", "))
		if len(p.Options) > 0 {
			fmt.Fprintf(f.writer, "    Options: %s\n", formatMap(p.Options))
		}
		fmt.Fprintf(f.writer, "    Source:  %s\n", p.Source)
	}
	fmt.Fprintln(f.writer)

	if r.Toolchain != nil {
		fmt.Fprintln(f.writer, f.colorize("Toolchain:", colorBold))
		fmt.Fprintf(f.writer, "  C++ standard: %s (extensions %s)\n", r.Toolchain.CppStd, r.Toolchain.Extensions)
		fmt.Fprintf(f.writer, "  Cache:        %s\n", formatMap(r.Toolchain.CacheVariables))
		fmt.Fprintln(f.writer)
	}

	fmt.Fprintln(f.writer, f.colorize("Generated:", colorBold))
	for _, d := range r.Descriptors {
		fmt.Fprintf(f.writer, "  %s\n", d)
	}
	if r.Toolchain != nil {
		fmt.Fprintf(f.writer, "  %s\n", r.Toolchain.ToolchainFile)
		fmt.Fprintf(f.writer, "  %s\n", r.Toolchain.PresetsFile)
		if r.Toolchain.UserPresets != "" {
			fmt.Fprintf(f.writer, "  %s\n", r.Toolchain.UserPresets)
		}
	}
	f.rule()
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatRecipe(r *dto.RecipeInfo) {
	fmt.Fprintln(f.writer, f.colorize("Requires:", colorBold))
	for _, req := range r.Requires {
		fmt.Fprintf(f.writer, "  %s\n", req)
	}
	fmt.Fprintln(f.writer, f.colorize("Options:", colorBold))
	for _, k := range slices.Sorted(maps.Keys(r.Options)) {
		fmt.Fprintf(f.writer, "  %s=%s\n", k, r.Options[k])
	}
	fmt.Fprintln(f.writer, f.colorize("Toolchain:", colorBold))
	fmt.Fprintf(f.writer, "  cppstd=%s\n", r.CppStd)
	fmt.Fprintf(f.writer, "  extensions=%s\n", r.Extensions)
	fmt.Fprintln(f.writer, f.colorize("Cache variables:", colorBold))
	for _, k := range slices.Sorted(maps.Keys(r.CacheVariables)) {
		fmt.Fprintf(f.writer, "  %s=%s\n", k, r.CacheVariables[k])
	}
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatLock(r *dto.LockResponse) {
	fmt.Fprintf(f.writer, "Lockfile: %s\n", f.colorize(r.Path, colorBold))
	for _, p := range r.Packages {
		fmt.Fprintf(f.writer, "  %s %s/%s (requested %s)\n", f.colorize("✓", colorGreen), p.Name, p.Resolved, p.Requested)
		fmt.Fprintf(f.writer, "    %s\n", f.colorize(p.Digest, colorGray))
	}
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatProfile(r *dto.ProfileInfo) {
	if r.Path != "" {
		fmt.Fprintf(f.writer, "Profile: %s\n", f.colorize(r.Path, colorBold))
	}
	for _, k := range slices.Sorted(maps.Keys(r.Settings)) {
		fmt.Fprintf(f.writer, "  %s=%s\n", k, r.Settings[k])
	}
}

func formatMap(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		parts = append(parts, k+"="+m[k])
	}
	return strings.Join(parts, ", ")
}

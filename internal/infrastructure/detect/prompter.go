package detect

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/petersen65/CppPlayground/internal/domain/values"
)

// TerminalPrompter asks for settings interactively.
type TerminalPrompter struct{}

// NewTerminalPrompter creates a new TerminalPrompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// IsInteractive checks if we're running in an interactive terminal.
func (p *TerminalPrompter) IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	// Check if it's a character device (terminal) and not a pipe/file
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Review lets the user confirm or change each setting. Detected values
// are preselected.
func (p *TerminalPrompter) Review(settings values.Settings) (values.Settings, error) {
	out := settings.Merge(nil)

	for _, key := range []string{values.SettingOS, values.SettingArch, values.SettingCompiler, values.SettingBuildType} {
		value := out.Get(key)
		if err := huh.NewSelect[string]().
			Title(key).
			Options(huh.NewOptions(values.AllowedSettingValues(key)...)...).
			Value(&value).
			Run(); err != nil {
			return nil, err
		}
		out[key] = value
	}

	version := out.Get(values.SettingCompilerVersion)
	if err := huh.NewInput().
		Title(values.SettingCompilerVersion).
		Value(&version).
		Validate(func(s string) error {
			return values.ValidateSetting(values.SettingCompilerVersion, s)
		}).
		Run(); err != nil {
		return nil, err
	}
	out[values.SettingCompilerVersion] = version

	return out, nil
}

// FormatNonInteractiveError explains how to provide settings without a
// terminal.
func (p *TerminalPrompter) FormatNonInteractiveError(missing []string) error {
	return fmt.Errorf("cannot prompt for %v in non-interactive mode; pass them with -s key=value", missing)
}

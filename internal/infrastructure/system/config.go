// Package system provides infrastructure for system-level configuration.
// This covers the user config file (~/.recipe/config.yaml): where to look
// for package indexes and profiles, and output defaults.
package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Config represents the global configuration file (~/.recipe/config.yaml).
// This is infrastructure-level configuration separate from profiles.
type Config struct {
	Index    IndexConfig   `yaml:"index"`
	Profiles ProfileConfig `yaml:"profiles"`
	Output   OutputConfig  `yaml:"output"`
	Timeout  time.Duration `yaml:"timeout"`
}

// IndexConfig configures package index lookup.
type IndexConfig struct {
	// Paths are index directories searched before the embedded index.
	Paths []string `yaml:"paths"`

	// DisableEmbedded removes the compiled-in index from the chain.
	DisableEmbedded bool `yaml:"disable_embedded"`
}

// ProfileConfig configures profile lookup.
type ProfileConfig struct {
	// Dir is where named profiles live. "-pr name" resolves to Dir/name.yaml.
	Dir string `yaml:"dir"`

	// Default is used when install runs without -pr.
	Default string `yaml:"default"`
}

// OutputConfig holds output defaults.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// DefaultDir returns ~/.recipe, or .recipe when the home directory is
// unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".recipe"
	}
	return filepath.Join(home, ".recipe")
}

// DefaultConfigPath returns ~/.recipe/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns a Config with defaults for all fields.
// This is used when no system config file exists.
func DefaultConfig() *Config {
	dir := DefaultDir()
	return &Config{
		Index: IndexConfig{
			Paths: []string{filepath.Join(dir, "index")},
		},
		Profiles: ProfileConfig{
			Dir:     filepath.Join(dir, "profiles"),
			Default: "default",
		},
		Output: OutputConfig{
			Format: "table",
		},
		Timeout: 2 * time.Minute,
	}
}

// Load loads the system configuration from the specified path. Fields the
// file leaves empty keep their defaults. If the file does not exist,
// returns DefaultConfig().
func (l *ConfigLoader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	//nolint:gosec // G304: path is user-provided config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}

	base := filepath.Dir(path)
	for i, p := range config.Index.Paths {
		config.Index.Paths[i] = expandPath(base, p)
	}
	config.Profiles.Dir = expandPath(base, config.Profiles.Dir)

	return config, nil
}

// ProfilePath resolves a -pr argument. Values containing a path
// separator or ending in .yaml are used as paths; anything else names a
// profile in the profiles directory.
func (c *Config) ProfilePath(name string) string {
	if name == "" {
		name = c.Profiles.Default
	}
	if strings.ContainsRune(name, filepath.Separator) || strings.Contains(name, "/") ||
		strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return name
	}
	return filepath.Join(c.Profiles.Dir, name+".yaml")
}

// expandPath resolves ~ and paths relative to the config file.
func expandPath(base, p string) string {
	if p == "" {
		return p
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

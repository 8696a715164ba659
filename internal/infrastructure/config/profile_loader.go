// Package config loads and writes platform profiles.
// This package handles YAML parsing, file I/O, variable substitution, and profile inheritance.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/domain/services"
	"github.com/petersen65/CppPlayground/internal/domain/values"
	"github.com/petersen65/CppPlayground/internal/infrastructure/validation"
)

//go:embed schema/profile.schema.json
var profileSchema []byte

// profileDocument is the on-disk shape.
type profileDocument struct {
	Extends  []string                `yaml:"extends,omitempty"`
	Vars     map[string]any          `yaml:"vars,omitempty"`
	Settings map[string]settingValue `yaml:"settings,omitempty"`
}

// settingValue is a setting scalar as written. Values may be unquoted
// (compiler.version: 14.10) and must not go through a numeric type.
type settingValue string

// UnmarshalYAML implements yaml.NodeUnmarshaler.
func (v *settingValue) UnmarshalYAML(node ast.Node) error {
	switch n := node.(type) {
	case *ast.StringNode:
		*v = settingValue(n.Value)
	case *ast.NullNode:
		*v = ""
	case *ast.TagNode:
		return v.UnmarshalYAML(n.Value)
	case ast.ScalarNode:
		*v = settingValue(n.GetToken().Value)
	default:
		return fmt.Errorf("setting value must be a scalar, got %s", node.Type())
	}
	return nil
}

// ProfileLoader handles loading profiles from YAML files with inheritance support.
//
// Inheritance Resolution:
//   - Profiles can specify parent profiles via the `extends` field
//   - Parents are loaded recursively and merged left-to-right
//   - Circular dependencies are detected and rejected
//   - Relative paths are resolved from the extending profile's directory
//
// Variables ({{ .vars.key }}) are substituted after inheritance, so a
// child can set a var its parent's settings use.
type ProfileLoader struct {
	merger      *services.ProfileMerger
	substitutor *VariableSubstitutor
	schema      *validation.SchemaValidator
}

// NewProfileLoader creates a new profile loader.
func NewProfileLoader() *ProfileLoader {
	return &ProfileLoader{
		merger:      services.NewProfileMerger(),
		substitutor: NewVariableSubstitutor(),
		schema:      validation.MustNewSchemaValidator("profile.schema.json", profileSchema),
	}
}

// LoadProfile loads a profile, resolves inheritance, substitutes
// variables and validates the resulting settings.
func (l *ProfileLoader) LoadProfile(path string) (*entities.Profile, error) {
	visited := make(map[string]bool)
	profile, err := l.loadProfileRecursive(path, visited)
	if err != nil {
		return nil, err
	}
	if err := l.substitutor.Substitute(profile); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return profile, nil
}

// loadProfileRecursive loads a profile and its parents recursively.
// visited holds the profiles on the current inheritance path.
func (l *ProfileLoader) loadProfileRecursive(path string, visited map[string]bool) (*entities.Profile, error) {
	// Resolve to absolute path for consistent tracking
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", path, err)
	}

	if visited[absPath] {
		return nil, fmt.Errorf("circular inheritance detected: %s", absPath)
	}
	visited[absPath] = true
	defer delete(visited, absPath)

	current, err := l.loadSingleProfile(absPath)
	if err != nil {
		return nil, err
	}

	if len(current.Extends) == 0 {
		return current, nil
	}

	parents := make([]*entities.Profile, 0, len(current.Extends))
	for _, parentPath := range current.Extends {
		resolvedPath := l.resolveRelativePath(absPath, parentPath)
		parent, err := l.loadProfileRecursive(resolvedPath, visited)
		if err != nil {
			return nil, fmt.Errorf("loading parent %q: %w", parentPath, err)
		}
		parents = append(parents, parent)
	}

	return l.merger.MergeAll(parents, current), nil
}

// loadSingleProfile loads a single profile from disk without resolving inheritance.
func (l *ProfileLoader) loadSingleProfile(path string) (*entities.Profile, error) {
	// os.OpenRoot keeps the open inside the profile's directory
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open profile directory: %w", err)
	}
	defer func() {
		_ = root.Close()
	}()

	file, err := root.Open(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	profile, err := l.LoadProfileFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return profile, nil
}

// LoadProfileFromReader parses and schema-checks one profile document.
// Note: This does NOT resolve inheritance or substitute variables.
func (l *ProfileLoader) LoadProfileFromReader(r io.Reader) (*entities.Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &entities.Profile{Settings: values.Settings{}}, nil
	}
	if err := l.schema.ValidateYAML(data); err != nil {
		return nil, err
	}

	var doc profileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode profile YAML: %w", err)
	}

	settings := make(values.Settings, len(doc.Settings))
	for k, v := range doc.Settings {
		settings[k] = string(v)
	}
	return &entities.Profile{
		Extends:  doc.Extends,
		Vars:     doc.Vars,
		Settings: settings,
	}, nil
}

// resolveRelativePath resolves a path relative to the current profile's directory.
// If extendsPath is absolute, it is returned as-is.
func (l *ProfileLoader) resolveRelativePath(currentPath, extendsPath string) string {
	if filepath.IsAbs(extendsPath) {
		return extendsPath
	}
	return filepath.Join(filepath.Dir(currentPath), extendsPath)
}

// SaveProfile writes profile to path, creating parent directories.
// Existing files are only replaced when overwrite is set.
func SaveProfile(path string, profile *entities.Profile, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("profile %s already exists", path)
		}
	}

	data, err := yaml.Marshal(profileDocument{
		Extends:  profile.Extends,
		Vars:     profile.Vars,
		Settings: settingsDocument(profile.Settings),
	})
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

func settingsDocument(s values.Settings) map[string]settingValue {
	out := make(map[string]settingValue, len(s))
	for k, v := range s {
		out[k] = settingValue(v)
	}
	return out
}

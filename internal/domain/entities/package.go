package entities

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/petersen65/CppPlayground/internal/domain/values"
)

// PackageInfo is the metadata a package index holds for one package
// version.
type PackageInfo struct {
	Name           string                `yaml:"name" json:"name"`
	Version        string                `yaml:"version" json:"version"`
	Description    string                `yaml:"description,omitempty" json:"description,omitempty"`
	License        string                `yaml:"license,omitempty" json:"license,omitempty"`
	CMakeFileName  string                `yaml:"cmake_file_name" json:"cmake_file_name"`
	CMakeNamespace string                `yaml:"cmake_namespace,omitempty" json:"cmake_namespace,omitempty"`
	PackageFolder  string                `yaml:"package_folder,omitempty" json:"package_folder,omitempty"`
	IncludeDirs    []string              `yaml:"include_dirs,omitempty" json:"include_dirs,omitempty"`
	LibDirs        []string              `yaml:"lib_dirs,omitempty" json:"lib_dirs,omitempty"`
	Defines        []string              `yaml:"defines,omitempty" json:"defines,omitempty"`
	Requires       []string              `yaml:"requires,omitempty" json:"requires,omitempty"`
	Options        map[string]OptionSpec `yaml:"options,omitempty" json:"options,omitempty"`
	Components     []ComponentInfo       `yaml:"components,omitempty" json:"components,omitempty"`
	SystemLibs     []Conditional         `yaml:"system_libs,omitempty" json:"system_libs,omitempty"`

	// IndexDir is the directory of the index file the entry came from. It
	// anchors a relative PackageFolder and is not part of the digest.
	IndexDir string `yaml:"-" json:"-"`
}

// OptionSpec declares an option a package accepts.
type OptionSpec struct {
	Default string   `yaml:"default" json:"default"`
	Values  []string `yaml:"values,omitempty" json:"values,omitempty"`
}

// ComponentInfo is one CMake target a package exports.
type ComponentInfo struct {
	Name       string        `yaml:"name" json:"name"`
	Target     string        `yaml:"target,omitempty" json:"target,omitempty"`
	Libs       []string      `yaml:"libs,omitempty" json:"libs,omitempty"`
	Requires   []string      `yaml:"requires,omitempty" json:"requires,omitempty"`
	SystemLibs []Conditional `yaml:"system_libs,omitempty" json:"system_libs,omitempty"`
	When       string        `yaml:"when,omitempty" json:"when,omitempty"`
}

// Conditional is a value that applies only when its expression holds.
// An empty expression always holds.
type Conditional struct {
	Name string `yaml:"name" json:"name"`
	When string `yaml:"when,omitempty" json:"when,omitempty"`
}

// Reference returns the exact reference of this entry.
func (p *PackageInfo) Reference() (values.PackageReference, error) {
	return values.NewPackageReference(p.Name, p.Version)
}

// Namespace returns the CMake target namespace, defaulting to the CMake
// file name.
func (p *PackageInfo) Namespace() string {
	if p.CMakeNamespace != "" {
		return p.CMakeNamespace
	}
	return p.CMakeFileName
}

// ResolvedPackageFolder returns PackageFolder, joined to IndexDir when it
// is relative.
func (p *PackageInfo) ResolvedPackageFolder() string {
	if p.PackageFolder == "" || p.IndexDir == "" || filepath.IsAbs(p.PackageFolder) {
		return p.PackageFolder
	}
	return filepath.Join(p.IndexDir, p.PackageFolder)
}

// Validate checks the structural invariants of an index entry.
func (p *PackageInfo) Validate() error {
	if _, err := p.Reference(); err != nil {
		return err
	}
	if p.CMakeFileName == "" {
		return fmt.Errorf("package %s/%s: cmake_file_name is required", p.Name, p.Version)
	}
	seen := make(map[string]bool, len(p.Components))
	for _, c := range p.Components {
		if c.Name == "" {
			return fmt.Errorf("package %s/%s: component name is required", p.Name, p.Version)
		}
		if seen[c.Name] {
			return fmt.Errorf("package %s/%s: duplicate component %q", p.Name, p.Version, c.Name)
		}
		seen[c.Name] = true
	}
	for _, c := range p.Components {
		for _, dep := range c.Requires {
			if !seen[dep] {
				return fmt.Errorf("package %s/%s: component %q requires unknown component %q",
					p.Name, p.Version, c.Name, dep)
			}
		}
	}
	for name, spec := range p.Options {
		if len(spec.Values) > 0 && !slices.Contains(spec.Values, spec.Default) {
			return fmt.Errorf("package %s/%s: option %q default %q is not an allowed value",
				p.Name, p.Version, name, spec.Default)
		}
	}
	return nil
}

// ResolvedComponent is a component that survived condition evaluation.
type ResolvedComponent struct {
	Name       string   `json:"name"`
	Target     string   `json:"target"`
	Libs       []string `json:"libs,omitempty"`
	Requires   []string `json:"requires,omitempty"`
	SystemLibs []string `json:"system_libs,omitempty"`
}

// ResolvedPackage is an index entry bound to one run: exact version,
// effective option values, and components evaluated for the platform.
type ResolvedPackage struct {
	Ref        values.PackageReference
	Requested  string
	Info       *PackageInfo
	Options    map[string]string
	Components []ResolvedComponent
	SystemLibs []string
	Source     string
	Digest     string
}

// Targets returns the CMake targets the package exports.
func (r *ResolvedPackage) Targets() []string {
	out := make([]string, 0, len(r.Components))
	for _, c := range r.Components {
		out = append(out, c.Target)
	}
	return out
}

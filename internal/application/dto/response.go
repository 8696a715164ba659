package dto

import (
	"maps"
	"slices"
	"time"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

// InstallResponse encapsulates the result of a configuration run.
type InstallResponse struct {
	RunID       string                        `json:"run_id" yaml:"run_id"`
	Platform    string                        `json:"platform" yaml:"platform"`
	Layout      LayoutInfo                    `json:"layout" yaml:"layout"`
	Packages    []ResolvedPackageInfo         `json:"packages" yaml:"packages"`
	Descriptors []string                      `json:"descriptors" yaml:"descriptors"`
	Toolchain   *entities.ToolchainDescriptor `json:"toolchain" yaml:"toolchain"`
	Duration    time.Duration                 `json:"duration" yaml:"duration"`
}

// LayoutInfo is the serialisable view of the selected layout.
type LayoutInfo struct {
	SourceFolder     string `json:"source_folder" yaml:"source_folder"`
	BuildFolder      string `json:"build_folder" yaml:"build_folder"`
	GeneratorsFolder string `json:"generators_folder" yaml:"generators_folder"`
	MultiConfig      bool   `json:"multi_config" yaml:"multi_config"`
}

// ResolvedPackageInfo is the serialisable view of a resolved package.
type ResolvedPackageInfo struct {
	Reference string            `json:"reference" yaml:"reference"`
	Requested string            `json:"requested" yaml:"requested"`
	Source    string            `json:"source" yaml:"source"`
	Targets   []string          `json:"targets" yaml:"targets"`
	Options   map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// RecipeInfo is the serialisable view of the fixed declaration.
type RecipeInfo struct {
	Requires       []string          `json:"requires" yaml:"requires"`
	Options        map[string]string `json:"options" yaml:"options"`
	CppStd         string            `json:"cppstd" yaml:"cppstd"`
	Extensions     string            `json:"cppstd_extensions" yaml:"cppstd_extensions"`
	CacheVariables map[string]string `json:"cache_variables" yaml:"cache_variables"`
}

// NewRecipeInfo converts a recipe to its serialisable view.
func NewRecipeInfo(recipe *entities.Recipe) *RecipeInfo {
	info := &RecipeInfo{
		Options:        make(map[string]string),
		CppStd:         recipe.Toolchain().CppStd.String(),
		Extensions:     recipe.Toolchain().Extensions.String(),
		CacheVariables: recipe.CacheVariables(),
	}
	for _, ref := range recipe.Requires() {
		info.Requires = append(info.Requires, ref.String())
	}
	for _, e := range recipe.Options().Entries() {
		info.Options[e.Key.String()] = e.Value
	}
	return info
}

// NewResolvedPackageInfo converts resolved packages to their view.
func NewResolvedPackageInfo(pkgs []*entities.ResolvedPackage) []ResolvedPackageInfo {
	out := make([]ResolvedPackageInfo, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, ResolvedPackageInfo{
			Reference: p.Ref.String(),
			Requested: p.Requested,
			Source:    p.Source,
			Targets:   p.Targets(),
			Options:   p.Options,
		})
	}
	return out
}

// LockResponse describes a written lockfile.
type LockResponse struct {
	Path      string              `json:"path" yaml:"path"`
	Generated time.Time           `json:"generated" yaml:"generated"`
	Packages  []LockedPackageInfo `json:"packages" yaml:"packages"`
}

// LockedPackageInfo is one pinned package.
type LockedPackageInfo struct {
	Name      string `json:"name" yaml:"name"`
	Requested string `json:"requested" yaml:"requested"`
	Resolved  string `json:"resolved" yaml:"resolved"`
	Digest    string `json:"digest" yaml:"digest"`
}

// NewLockResponse converts a lockfile to its view, packages sorted by
// name.
func NewLockResponse(path string, lock *entities.Lockfile) *LockResponse {
	resp := &LockResponse{Path: path, Generated: lock.Generated}
	for _, name := range slices.Sorted(maps.Keys(lock.Packages)) {
		p := lock.Packages[name]
		resp.Packages = append(resp.Packages, LockedPackageInfo{
			Name:      name,
			Requested: p.Requested,
			Resolved:  p.Resolved,
			Digest:    p.Digest,
		})
	}
	return resp
}

// ProfileInfo describes a detected or loaded profile.
type ProfileInfo struct {
	Path     string            `json:"path,omitempty" yaml:"path,omitempty"`
	Settings map[string]string `json:"settings" yaml:"settings"`
}

package entities

// PackageIdentity is the name/version pair a descriptor set links.
type PackageIdentity struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// DescriptorSet describes the dependency files written for one run.
type DescriptorSet struct {
	Folder   string
	Files    []string
	Manifest string
	Packages []PackageIdentity
}

// ToolchainDescriptor describes the toolchain files written for one run.
type ToolchainDescriptor struct {
	ToolchainFile  string            `json:"toolchain_file" yaml:"toolchain_file"`
	PresetsFile    string            `json:"presets_file" yaml:"presets_file"`
	UserPresets    string            `json:"user_presets_file,omitempty" yaml:"user_presets_file,omitempty"`
	CppStd         string            `json:"cppstd" yaml:"cppstd"`
	Extensions     string            `json:"cppstd_extensions" yaml:"cppstd_extensions"`
	CacheVariables map[string]string `json:"cache_variables" yaml:"cache_variables"`
}

// DependencyManifest is the machine-readable index of a descriptor set.
type DependencyManifest struct {
	Generator string            `json:"generator"`
	RunID     string            `json:"run_id"`
	Platform  map[string]string `json:"platform"`
	Packages  []ManifestPackage `json:"packages"`
}

// ManifestPackage is one package entry of a DependencyManifest.
type ManifestPackage struct {
	Name          string            `json:"name"`
	Version       string            `json:"version"`
	CMakeFileName string            `json:"cmake_file_name"`
	Targets       []string          `json:"targets"`
	Options       map[string]string `json:"options,omitempty"`
	Digest        string            `json:"digest,omitempty"`
}

// Identities returns the package identities listed in the manifest.
func (m *DependencyManifest) Identities() []PackageIdentity {
	out := make([]PackageIdentity, 0, len(m.Packages))
	for _, p := range m.Packages {
		out = append(out, PackageIdentity{Name: p.Name, Version: p.Version})
	}
	return out
}

// Package generators writes the CMake files a configuration run produces:
// package config files, the dependency manifest, the toolchain file and
// CMake presets.
package generators

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/semver/v3"
	"github.com/petersen65/CppPlayground/internal/application/ports"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/templates"
)

const (
	// ManifestFile is the name of the dependency manifest.
	ManifestFile = "recipe_deps.json"

	// GeneratorName identifies this tool in generated manifests.
	GeneratorName = "recipe/CMakeDeps"

	filePerm = 0o644
)

// CMakeDeps implements ports.DependencyGenerator. Per package it writes
// <FileName>Config.cmake, <FileName>ConfigVersion.cmake and
// <FileName>Targets.cmake, plus one recipe_deps.json manifest.
type CMakeDeps struct {
	tmpl *template.Template
}

// NewCMakeDeps creates the generator.
func NewCMakeDeps() (*CMakeDeps, error) {
	tmpl, err := templates.CMakeTemplates()
	if err != nil {
		return nil, err
	}
	return &CMakeDeps{tmpl: tmpl}, nil
}

// Generate writes the descriptor set into dir. File names in the returned
// set are relative to dir.
func (g *CMakeDeps) Generate(ctx context.Context, dir string, in ports.GenerationInput) (*entities.DescriptorSet, error) {
	byName := make(map[string]*entities.ResolvedPackage, len(in.Packages))
	for _, pkg := range in.Packages {
		byName[pkg.Ref.Name()] = pkg
	}

	set := &entities.DescriptorSet{Folder: dir, Manifest: ManifestFile}
	manifest := entities.DependencyManifest{
		Generator: GeneratorName,
		RunID:     in.RunID,
		Platform:  in.Platform.Settings(),
		Packages:  make([]entities.ManifestPackage, 0, len(in.Packages)),
	}

	for _, pkg := range in.Packages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := packageData(in, pkg, byName)
		if err != nil {
			return nil, err
		}

		for _, file := range []struct{ tmpl, name string }{
			{templates.Config, data.FileName + "Config.cmake"},
			{templates.ConfigVersion, data.FileName + "ConfigVersion.cmake"},
			{templates.Targets, data.FileName + "Targets.cmake"},
		} {
			content, err := templates.Render(g.tmpl, file.tmpl, data)
			if err != nil {
				return nil, err
			}
			if err := writeFile(dir, file.name, content); err != nil {
				return nil, err
			}
			set.Files = append(set.Files, file.name)
		}

		set.Packages = append(set.Packages, entities.PackageIdentity{
			Name:    pkg.Ref.Name(),
			Version: pkg.Ref.Version(),
		})
		manifest.Packages = append(manifest.Packages, entities.ManifestPackage{
			Name:          pkg.Ref.Name(),
			Version:       pkg.Ref.Version(),
			CMakeFileName: pkg.Info.CMakeFileName,
			Targets:       pkg.Targets(),
			Options:       pkg.Options,
			Digest:        pkg.Digest,
		})
	}

	content, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := writeFile(dir, ManifestFile, append(content, '\n')); err != nil {
		return nil, err
	}
	set.Files = append(set.Files, ManifestFile)

	return set, nil
}

func packageData(
	in ports.GenerationInput,
	pkg *entities.ResolvedPackage,
	byName map[string]*entities.ResolvedPackage,
) (templates.PackageData, error) {
	info := pkg.Info

	var depFiles, depTargets []string
	for _, req := range info.Requires {
		name, _, _ := strings.Cut(req, "/")
		dep, ok := byName[name]
		if !ok {
			return templates.PackageData{}, fmt.Errorf("package %s requires %s, which was not resolved", pkg.Ref, name)
		}
		depFiles = append(depFiles, dep.Info.CMakeFileName)
		depTargets = append(depTargets, dep.Targets()...)
	}

	components := make([]templates.ComponentData, 0, len(pkg.Components))
	for _, c := range pkg.Components {
		link := append([]string{}, c.Libs...)
		link = append(link, c.Requires...)
		if len(c.Requires) == 0 {
			// Components that depend on nothing inside the package carry
			// the package's external dependencies.
			link = append(link, depTargets...)
		}
		link = append(link, c.SystemLibs...)
		components = append(components, templates.ComponentData{Target: c.Target, LinkLibraries: link})
	}

	return templates.PackageData{
		RunID:        in.RunID,
		Platform:     in.Platform.String(),
		Name:         pkg.Ref.Name(),
		Version:      pkg.Ref.Version(),
		Major:        majorVersion(pkg.Ref.Version()),
		FileName:     info.CMakeFileName,
		IncludeDirs:  packagePaths(info.ResolvedPackageFolder(), info.IncludeDirs),
		LibDirs:      packagePaths(info.ResolvedPackageFolder(), info.LibDirs),
		Defines:      info.Defines,
		Targets:      pkg.Targets(),
		Dependencies: depFiles,
		Components:   components,
	}, nil
}

func majorVersion(version string) string {
	if v, err := semver.NewVersion(version); err == nil {
		return strconv.FormatUint(v.Major(), 10)
	}
	major, _, _ := strings.Cut(version, ".")
	return major
}

func packagePaths(folder string, dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if folder != "" && !filepath.IsAbs(d) {
			d = filepath.Join(folder, d)
		}
		out = append(out, filepath.ToSlash(d))
	}
	return out
}

func writeFile(dir, name string, content []byte) error {
	path := filepath.Join(dir, name)
	//nolint:gosec // G306: generated build files are read by the build tool
	if err := os.WriteFile(path, content, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadManifest reads a recipe_deps.json manifest.
func ReadManifest(path string) (*entities.DependencyManifest, error) {
	//nolint:gosec // G304: path points into a generators folder
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m entities.DependencyManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return &m, nil
}

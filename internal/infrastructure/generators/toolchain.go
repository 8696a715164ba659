package generators

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/petersen65/CppPlayground/internal/application/ports"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/templates"
)

const (
	// ToolchainFile is the name of the generated toolchain file.
	ToolchainFile = "recipe_toolchain.cmake"

	// PresetsFile is the name of the generated presets file.
	PresetsFile = "CMakePresets.json"

	presetsVersion = 4
)

// Presets is the subset of the CMakePresets.json schema recipe writes.
type Presets struct {
	Version              int               `json:"version"`
	Vendor               map[string]any    `json:"vendor,omitempty"`
	CMakeMinimumRequired CMakeVersion      `json:"cmakeMinimumRequired"`
	ConfigurePresets     []ConfigurePreset `json:"configurePresets"`
	BuildPresets         []StepPreset      `json:"buildPresets"`
	TestPresets          []StepPreset      `json:"testPresets"`
}

// CMakeVersion is a CMake version triple.
type CMakeVersion struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// ConfigurePreset is one configurePresets entry.
type ConfigurePreset struct {
	Name           string            `json:"name"`
	DisplayName    string            `json:"displayName"`
	Description    string            `json:"description,omitempty"`
	Generator      string            `json:"generator"`
	BinaryDir      string            `json:"binaryDir"`
	ToolchainFile  string            `json:"toolchainFile"`
	CacheVariables map[string]string `json:"cacheVariables"`
}

// StepPreset is one buildPresets or testPresets entry.
type StepPreset struct {
	Name            string `json:"name"`
	ConfigurePreset string `json:"configurePreset"`
	Configuration   string `json:"configuration,omitempty"`
}

// CMakeToolchain implements ports.ToolchainGenerator. It writes
// recipe_toolchain.cmake and CMakePresets.json, and links the presets
// from the project's CMakeUserPresets.json.
type CMakeToolchain struct {
	tmpl *template.Template
}

// NewCMakeToolchain creates the generator.
func NewCMakeToolchain() (*CMakeToolchain, error) {
	tmpl, err := templates.CMakeTemplates()
	if err != nil {
		return nil, err
	}
	return &CMakeToolchain{tmpl: tmpl}, nil
}

// Generate writes the toolchain file and presets into dir. Paths inside
// the presets point at the layout's final folders, not at dir. The
// returned file names are relative to dir.
func (g *CMakeToolchain) Generate(ctx context.Context, dir string, in ports.GenerationInput) (*entities.ToolchainDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	desc := &entities.ToolchainDescriptor{
		ToolchainFile:  ToolchainFile,
		PresetsFile:    PresetsFile,
		CppStd:         in.Toolchain.CppStd.String(),
		Extensions:     in.Toolchain.Extensions.String(),
		CacheVariables: maps.Clone(in.CacheVariables),
	}

	content, err := templates.Render(g.tmpl, templates.Toolchain, templates.ToolchainData{
		RunID:       in.RunID,
		Platform:    in.Platform.String(),
		CppStd:      desc.CppStd,
		Extensions:  desc.Extensions,
		BuildType:      in.Layout.BuildType,
		MultiConfig:    in.Layout.MultiConfig,
		CacheVariables: toolchainCacheVariables(in.CacheVariables),
	})
	if err != nil {
		return nil, err
	}
	if err := writeFile(dir, ToolchainFile, content); err != nil {
		return nil, err
	}

	presets, err := json.MarshalIndent(buildPresets(in), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding presets: %w", err)
	}
	if err := writeFile(dir, PresetsFile, append(presets, '\n')); err != nil {
		return nil, err
	}

	return desc, nil
}

func buildPresets(in ports.GenerationInput) Presets {
	name := presetName(in)

	cache := maps.Clone(in.CacheVariables)
	if cache == nil {
		cache = make(map[string]string)
	}
	cache["CMAKE_POLICY_DEFAULT_CMP0091"] = "NEW"
	if !in.Layout.MultiConfig {
		cache["CMAKE_BUILD_TYPE"] = in.Layout.BuildType
	}

	step := StepPreset{Name: name, ConfigurePreset: name}
	if in.Layout.MultiConfig && in.Layout.BuildType != "" {
		step.Configuration = in.Layout.BuildType
	}

	return Presets{
		Version: presetsVersion,
		Vendor: map[string]any{
			"recipe": map[string]string{"run_id": in.RunID},
		},
		CMakeMinimumRequired: CMakeVersion{Major: 3, Minor: 23},
		ConfigurePresets: []ConfigurePreset{{
			Name:           name,
			DisplayName:    fmt.Sprintf("'%s' config", name),
			Description:    "Generated by recipe for " + in.Platform.String(),
			Generator:      cmakeGenerator(in.Platform),
			BinaryDir:      filepath.ToSlash(in.Layout.BuildFolder),
			ToolchainFile:  filepath.ToSlash(filepath.Join(in.Layout.GeneratorsFolder, ToolchainFile)),
			CacheVariables: cache,
		}},
		BuildPresets: []StepPreset{step},
		TestPresets:  []StepPreset{step},
	}
}

func toolchainCacheVariables(vars map[string]string) []templates.CacheVariable {
	out := make([]templates.CacheVariable, 0, len(vars))
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		value := vars[name]
		kind := "STRING"
		switch strings.ToUpper(value) {
		case "ON", "OFF", "TRUE", "FALSE":
			kind = "BOOL"
		}
		out = append(out, templates.CacheVariable{Name: name, Value: value, Type: kind})
	}
	return out
}

func presetName(in ports.GenerationInput) string {
	if in.Layout.MultiConfig {
		return "default"
	}
	return "recipe-" + strings.ToLower(in.Layout.BuildType)
}

func cmakeGenerator(p *entities.Platform) string {
	if p.Compiler == "msvc" {
		return "Visual Studio 17 2022"
	}
	return "Unix Makefiles"
}

// ReadPresets reads a CMakePresets.json file.
func ReadPresets(path string) (*Presets, error) {
	//nolint:gosec // G304: path points into a generators folder
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets: %w", err)
	}
	var p Presets
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding presets %s: %w", path, err)
	}
	return &p, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/petersen65/CppPlayground/internal/application/ports"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

// MockIndex is an in-memory package index.
type MockIndex struct {
	Entries map[string]map[string]*entities.PackageInfo
	Err     error
}

func newMockIndex(infos ...*entities.PackageInfo) *MockIndex {
	idx := &MockIndex{Entries: make(map[string]map[string]*entities.PackageInfo)}
	for _, info := range infos {
		if idx.Entries[info.Name] == nil {
			idx.Entries[info.Name] = make(map[string]*entities.PackageInfo)
		}
		idx.Entries[info.Name][info.Version] = info
	}
	return idx
}

func (m *MockIndex) Versions(_ context.Context, name string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	versions, ok := m.Entries[name]
	if !ok {
		return nil, &entities.PackageNotFoundError{Name: name}
	}
	var out []string
	for v := range versions {
		out = append(out, v)
	}
	slices.Sort(out)
	return out, nil
}

func (m *MockIndex) Lookup(_ context.Context, name, version string) (*entities.PackageInfo, string, error) {
	info, ok := m.Entries[name][version]
	if !ok {
		return nil, "", &entities.PackageNotFoundError{Name: name, Version: version}
	}
	return info, "mock:" + name + "-" + version, nil
}

// MockVersionResolver accepts exact versions only.
type MockVersionResolver struct{}

func (MockVersionResolver) Resolve(constraint string, available []string) (string, error) {
	if slices.Contains(available, constraint) {
		return constraint, nil
	}
	return "", fmt.Errorf("no version satisfies %q (available: %v)", constraint, available)
}

// MockDigester digests name and version, or returns Override when set.
type MockDigester struct {
	Override string
}

func (m *MockDigester) DigestPackage(info *entities.PackageInfo) (string, error) {
	if m.Override != "" {
		return m.Override, nil
	}
	return "sha256:" + info.Name + "-" + info.Version, nil
}

// MockLockfileRepository keeps lockfiles in memory.
type MockLockfileRepository struct {
	Files   map[string]*entities.Lockfile
	SaveErr error
}

func newMockLockfileRepository() *MockLockfileRepository {
	return &MockLockfileRepository{Files: make(map[string]*entities.Lockfile)}
}

func (m *MockLockfileRepository) Load(_ context.Context, path string) (*entities.Lockfile, error) {
	return m.Files[path], nil
}

func (m *MockLockfileRepository) Save(_ context.Context, lock *entities.Lockfile, path string) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Files[path] = lock
	return nil
}

func (m *MockLockfileRepository) Exists(_ context.Context, path string) (bool, error) {
	_, ok := m.Files[path]
	return ok, nil
}

// MockLayout places the generators folder under Root.
type MockLayout struct {
	Root  string
	Err   error
	Calls int
}

func (m *MockLayout) Select(_ context.Context, platform *entities.Platform, sourceFolder string) (*entities.Layout, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	build := filepath.Join(m.Root, "build", platform.BuildType)
	return &entities.Layout{
		SourceFolder:     sourceFolder,
		BuildFolder:      build,
		GeneratorsFolder: filepath.Join(build, "generators"),
		BuildType:        platform.BuildType,
		MultiConfig:      platform.MultiConfig(),
	}, nil
}

// MockDependencyGenerator writes one file per package.
type MockDependencyGenerator struct {
	Err   error
	Calls int
	Input ports.GenerationInput
}

func (m *MockDependencyGenerator) Generate(_ context.Context, dir string, in ports.GenerationInput) (*entities.DescriptorSet, error) {
	m.Calls++
	m.Input = in
	set := &entities.DescriptorSet{Folder: dir}
	for _, pkg := range in.Packages {
		name := pkg.Info.CMakeFileName + "Config.cmake"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(pkg.Ref.String()), 0o600); err != nil {
			return nil, err
		}
		set.Files = append(set.Files, name)
		set.Packages = append(set.Packages, entities.PackageIdentity{Name: pkg.Ref.Name(), Version: pkg.Ref.Version()})
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return set, nil
}

// MockToolchainGenerator writes the toolchain file.
type MockToolchainGenerator struct {
	Err   error
	Calls int
	Input ports.GenerationInput

	LinkErr    error
	LinkSource string
	LinkTarget string
}

func (m *MockToolchainGenerator) LinkUserPresets(_ context.Context, sourceFolder, presetsPath string) (string, error) {
	m.LinkSource = sourceFolder
	m.LinkTarget = presetsPath
	if m.LinkErr != nil {
		return "", m.LinkErr
	}
	return filepath.Join(sourceFolder, "CMakeUserPresets.json"), nil
}

func (m *MockToolchainGenerator) Generate(_ context.Context, dir string, in ports.GenerationInput) (*entities.ToolchainDescriptor, error) {
	m.Calls++
	m.Input = in
	if m.Err != nil {
		return nil, m.Err
	}
	if err := os.WriteFile(filepath.Join(dir, "toolchain.cmake"), nil, 0o600); err != nil {
		return nil, err
	}
	return &entities.ToolchainDescriptor{
		ToolchainFile:  "toolchain.cmake",
		PresetsFile:    "CMakePresets.json",
		CppStd:         in.Toolchain.CppStd.String(),
		Extensions:     in.Toolchain.Extensions.String(),
		CacheVariables: in.CacheVariables,
	}, nil
}

// MockStager stages into a scratch directory and renames it on Commit.
type MockStager struct {
	Scratch string
	Staged  []*MockStaging
}

func (m *MockStager) Stage(_ context.Context, target string) (ports.Staging, error) {
	dir := filepath.Join(m.Scratch, fmt.Sprintf("stage-%d", len(m.Staged)))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	s := &MockStaging{dir: dir, target: target}
	m.Staged = append(m.Staged, s)
	return s, nil
}

// MockStaging records whether it was committed or discarded.
type MockStaging struct {
	dir       string
	target    string
	Committed bool
	Discarded bool
}

func (s *MockStaging) Dir() string { return s.dir }

func (s *MockStaging) Commit() error {
	if s.Committed {
		return errors.New("already committed")
	}
	if err := os.MkdirAll(filepath.Dir(s.target), 0o750); err != nil {
		return err
	}
	if err := os.Rename(s.dir, s.target); err != nil {
		return err
	}
	s.Committed = true
	return nil
}

func (s *MockStaging) Discard() error {
	s.Discarded = true
	if s.Committed {
		return nil
	}
	return os.RemoveAll(s.dir)
}

package entities

import (
	"fmt"
	"time"
)

// Lockfile is an aggregate root for reproducible package resolution.
// It pins the versions and index digests a configuration was made from.
//
// Invariants:
// - Version must be 1 (current format version)
// - Each package entry must have a resolved version and a digest
// - Generated timestamp must be set when packages are present
type Lockfile struct {
	Version   int                    `yaml:"lockfile_version"`
	Generated time.Time              `yaml:"generated"`
	Packages  map[string]PackageLock `yaml:"packages"`
}

// PackageLock is a value object representing a pinned package version.
type PackageLock struct {
	Requested string `yaml:"requested"` // Original constraint
	Resolved  string `yaml:"resolved"`  // Exact version
	Source    string `yaml:"source"`    // "file:<name>" or "embedded:<path>"
	Digest    string `yaml:"sha256"`    // SHA-256 of the index entry
}

// NewLockfile creates a new lockfile with the current version.
func NewLockfile() *Lockfile {
	return &Lockfile{
		Version:   1,
		Generated: time.Now().UTC(),
		Packages:  make(map[string]PackageLock),
	}
}

// AddPackage adds or replaces a package lock entry.
func (l *Lockfile) AddPackage(name string, lock PackageLock) error {
	if lock.Digest == "" {
		return fmt.Errorf("package %q: digest is required", name)
	}
	if lock.Resolved == "" {
		return fmt.Errorf("package %q: resolved version is required", name)
	}
	if l.Packages == nil {
		l.Packages = make(map[string]PackageLock)
	}
	l.Packages[name] = lock
	return nil
}

// GetPackage retrieves a package lock entry by name.
// Returns nil if not found.
func (l *Lockfile) GetPackage(name string) *PackageLock {
	if l.Packages == nil {
		return nil
	}
	if lock, ok := l.Packages[name]; ok {
		return &lock
	}
	return nil
}

// Validate checks lockfile invariants.
func (l *Lockfile) Validate() error {
	if l.Version != 1 {
		return fmt.Errorf("unsupported lockfile version: %d", l.Version)
	}
	if l.PackageCount() > 0 && l.Generated.IsZero() {
		return fmt.Errorf("generated timestamp is required")
	}
	for name, lock := range l.Packages {
		if lock.Digest == "" {
			return fmt.Errorf("package %q: digest is required", name)
		}
		if lock.Resolved == "" {
			return fmt.Errorf("package %q: resolved version is required", name)
		}
	}
	return nil
}

// PackageCount returns the number of locked packages.
func (l *Lockfile) PackageCount() int {
	return len(l.Packages)
}

package values

import (
	"fmt"
	"regexp"
	"strings"
)

var packageNamePattern = regexp.MustCompile(`^[a-z0-9_][a-z0-9_+.-]{1,100}$`)

// PackageReference identifies a package by name and version (or version
// constraint), written as "name/version".
type PackageReference struct {
	name    string
	version string
}

// NewPackageReference creates a reference from its parts.
func NewPackageReference(name, version string) (PackageReference, error) {
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)
	if !packageNamePattern.MatchString(name) {
		return PackageReference{}, fmt.Errorf("invalid package name %q", name)
	}
	if version == "" {
		return PackageReference{}, fmt.Errorf("package %q: version cannot be empty", name)
	}
	return PackageReference{name: name, version: version}, nil
}

// ParsePackageReference parses "name/version".
func ParsePackageReference(s string) (PackageReference, error) {
	name, version, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return PackageReference{}, fmt.Errorf("invalid package reference %q: expected name/version", s)
	}
	return NewPackageReference(name, version)
}

// MustParsePackageReference parses a reference or panics.
func MustParsePackageReference(s string) PackageReference {
	ref, err := ParsePackageReference(s)
	if err != nil {
		panic(err)
	}
	return ref
}

// Name returns the package name.
func (r PackageReference) Name() string { return r.name }

// Version returns the version or version constraint.
func (r PackageReference) Version() string { return r.version }

// String returns "name/version".
func (r PackageReference) String() string {
	return r.name + "/" + r.version
}

// IsZero reports whether r is the zero value.
func (r PackageReference) IsZero() bool {
	return r.name == ""
}

// WithVersion returns a copy of r pinned to version.
func (r PackageReference) WithVersion(version string) PackageReference {
	return PackageReference{name: r.name, version: version}
}

// Equals compares name and version.
func (r PackageReference) Equals(other PackageReference) bool {
	return r.name == other.name && r.version == other.version
}

// MarshalText implements encoding.TextMarshaler.
func (r PackageReference) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *PackageReference) UnmarshalText(data []byte) error {
	ref, err := ParsePackageReference(string(data))
	if err != nil {
		return err
	}
	*r = ref
	return nil
}

package entities

import "fmt"

// PackageNotFoundError indicates a package (or package version) doesn't
// exist in an index.
type PackageNotFoundError struct {
	Name    string
	Version string
}

func (e *PackageNotFoundError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf("package not found: %s", e.Name)
	}
	return fmt.Sprintf("package not found: %s/%s", e.Name, e.Version)
}

// IntegrityError indicates a locked digest no longer matches the index.
type IntegrityError struct {
	Package  string
	Expected string
	Actual   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf(
		"integrity check failed for %s: expected %s, got %s",
		e.Package,
		e.Expected,
		e.Actual,
	)
}

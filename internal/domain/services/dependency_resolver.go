package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

// DependencyResolver handles package dependency graph operations
type DependencyResolver struct{}

// NewDependencyResolver creates a new dependency resolver service
func NewDependencyResolver() *DependencyResolver {
	return &DependencyResolver{}
}

// PackageLevel represents packages at a specific dependency level
type PackageLevel struct {
	Level    int
	Packages []*entities.ResolvedPackage
}

// BuildPackageDAG builds a dependency graph using Kahn's algorithm.
// Level 0 holds packages without requirements; every package sits one
// level above the deepest package it requires.
//
// Algorithm:
// 1. Build adjacency list and in-degree map from Info.Requires (by name)
// 2. Find all packages with no requirements (in-degree 0)
// 3. Process packages level by level, decrementing in-degrees
// 4. Detect cycles (remaining packages with in-degree > 0)
func (r *DependencyResolver) BuildPackageDAG(packages []*entities.ResolvedPackage) ([]PackageLevel, error) {
	byName := make(map[string]*entities.ResolvedPackage, len(packages))
	inDegree := make(map[string]int, len(packages))
	dependents := make(map[string][]string)

	for _, pkg := range packages {
		byName[pkg.Ref.Name()] = pkg
	}

	for _, pkg := range packages {
		name := pkg.Ref.Name()
		deps := requiredNames(pkg)
		inDegree[name] = len(deps)
		for _, dep := range deps {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("package %s requires unresolved package %s", pkg.Ref.String(), dep)
			}
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var levels []PackageLevel
	processed := make(map[string]bool, len(packages))
	level := 0

	for len(processed) < len(packages) {
		var current []*entities.ResolvedPackage
		for _, pkg := range packages {
			name := pkg.Ref.Name()
			if !processed[name] && inDegree[name] == 0 {
				current = append(current, pkg)
			}
		}

		// No progress made → cycle detected
		if len(current) == 0 {
			var remaining []string
			for _, pkg := range packages {
				if !processed[pkg.Ref.Name()] {
					remaining = append(remaining, pkg.Ref.Name())
				}
			}
			sort.Strings(remaining)
			return nil, fmt.Errorf("circular dependency detected among packages: %v", remaining)
		}

		sort.Slice(current, func(i, j int) bool {
			return current[i].Ref.Name() < current[j].Ref.Name()
		})
		levels = append(levels, PackageLevel{Level: level, Packages: current})

		for _, pkg := range current {
			processed[pkg.Ref.Name()] = true
			for _, dependent := range dependents[pkg.Ref.Name()] {
				inDegree[dependent]--
			}
		}
		level++
	}

	return levels, nil
}

// Order returns packages dependencies-first, ties broken by name.
func (r *DependencyResolver) Order(packages []*entities.ResolvedPackage) ([]*entities.ResolvedPackage, error) {
	levels, err := r.BuildPackageDAG(packages)
	if err != nil {
		return nil, err
	}
	out := make([]*entities.ResolvedPackage, 0, len(packages))
	for _, l := range levels {
		out = append(out, l.Packages...)
	}
	return out, nil
}

// requiredNames returns the distinct package names pkg requires.
func requiredNames(pkg *entities.ResolvedPackage) []string {
	if pkg.Info == nil {
		return nil
	}
	seen := make(map[string]bool, len(pkg.Info.Requires))
	var names []string
	for _, req := range pkg.Info.Requires {
		name, _, _ := strings.Cut(req, "/")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

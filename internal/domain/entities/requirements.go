package entities

import (
	"fmt"

	"github.com/petersen65/CppPlayground/internal/domain/values"
)

// Requirement is a declared need for one package at a version constraint.
type Requirement struct {
	Ref values.PackageReference
}

// Requirements is the set of requirements registered during a run, keyed
// by package name. Registering the same requirement again is a no-op.
type Requirements struct {
	byName map[string]Requirement
	order  []string
}

// NewRequirements creates an empty set.
func NewRequirements() *Requirements {
	return &Requirements{byName: make(map[string]Requirement)}
}

// Add registers ref. It returns an error when a different version
// constraint was already registered for the same package.
func (r *Requirements) Add(ref values.PackageReference) error {
	if existing, ok := r.byName[ref.Name()]; ok {
		if existing.Ref.Version() != ref.Version() {
			return fmt.Errorf("conflicting requirements for %q: %s and %s",
				ref.Name(), existing.Ref.String(), ref.String())
		}
		return nil
	}
	r.byName[ref.Name()] = Requirement{Ref: ref}
	r.order = append(r.order, ref.Name())
	return nil
}

// Get returns the requirement for name.
func (r *Requirements) Get(name string) (Requirement, bool) {
	req, ok := r.byName[name]
	return req, ok
}

// List returns requirements in registration order.
func (r *Requirements) List() []Requirement {
	out := make([]Requirement, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Len returns the number of registered requirements.
func (r *Requirements) Len() int {
	return len(r.order)
}

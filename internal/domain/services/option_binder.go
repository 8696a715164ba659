package services

import (
	"fmt"
	"maps"
	"slices"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/domain/values"
)

// OptionBinder computes the effective option values of a package from its
// declared defaults and the recipe's option assignments.
type OptionBinder struct{}

// NewOptionBinder creates an option binder.
func NewOptionBinder() *OptionBinder {
	return &OptionBinder{}
}

// Bind returns the effective options for info. Assigning an option the
// package does not declare, or a value outside its allowed values, is an
// error.
func (b *OptionBinder) Bind(ref values.PackageReference, info *entities.PackageInfo, set entities.OptionSet) (map[string]string, error) {
	out := make(map[string]string, len(info.Options))
	for name, spec := range info.Options {
		out[name] = spec.Default
	}

	assigned := set.For(ref)
	for _, name := range slices.Sorted(maps.Keys(assigned)) {
		value := assigned[name]
		spec, ok := info.Options[name]
		if !ok {
			return nil, fmt.Errorf("package %s has no option %q", ref.String(), name)
		}
		if len(spec.Values) > 0 && !slices.Contains(spec.Values, value) {
			return nil, fmt.Errorf("package %s: invalid value %q for option %q (allowed: %v)",
				ref.String(), value, name, spec.Values)
		}
		out[name] = value
	}
	return out, nil
}

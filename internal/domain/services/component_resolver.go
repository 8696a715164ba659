package services

import (
	"fmt"
	"maps"

	"github.com/expr-lang/expr"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

// ComponentResolver evaluates the conditional parts of an index entry
// (components and system libraries) for one platform and option binding.
type ComponentResolver struct{}

// NewComponentResolver creates a component resolver.
func NewComponentResolver() *ComponentResolver {
	return &ComponentResolver{}
}

// Resolve returns the components and package-level system libraries that
// apply. A package without components exports a single target named after
// the package. A component requiring an excluded component is an error.
func (r *ComponentResolver) Resolve(
	info *entities.PackageInfo,
	platform *entities.Platform,
	options map[string]string,
) ([]entities.ResolvedComponent, []string, error) {
	env := platform.Env()
	env["options"] = maps.Clone(options)

	systemLibs, err := r.filter(info.SystemLibs, env)
	if err != nil {
		return nil, nil, fmt.Errorf("package %s/%s: %w", info.Name, info.Version, err)
	}

	if len(info.Components) == 0 {
		return []entities.ResolvedComponent{{
			Name:       info.Name,
			Target:     info.Namespace() + "::" + info.Name,
			Libs:       []string{info.Name},
			SystemLibs: systemLibs,
		}}, systemLibs, nil
	}

	included := make(map[string]entities.ComponentInfo, len(info.Components))
	var order []string
	for _, c := range info.Components {
		ok, err := Evaluate(c.When, env)
		if err != nil {
			return nil, nil, fmt.Errorf("package %s/%s component %q: %w", info.Name, info.Version, c.Name, err)
		}
		if ok {
			included[c.Name] = c
			order = append(order, c.Name)
		}
	}

	components := make([]entities.ResolvedComponent, 0, len(order))
	for _, name := range order {
		c := included[name]
		var requires []string
		for _, dep := range c.Requires {
			depInfo, ok := included[dep]
			if !ok {
				return nil, nil, fmt.Errorf("package %s/%s: component %q requires excluded component %q",
					info.Name, info.Version, c.Name, dep)
			}
			requires = append(requires, targetOf(info, depInfo))
		}
		libs, err := r.filter(c.SystemLibs, env)
		if err != nil {
			return nil, nil, fmt.Errorf("package %s/%s component %q: %w", info.Name, info.Version, c.Name, err)
		}
		components = append(components, entities.ResolvedComponent{
			Name:       c.Name,
			Target:     targetOf(info, c),
			Libs:       c.Libs,
			Requires:   requires,
			SystemLibs: append(libs, systemLibs...),
		})
	}
	return components, systemLibs, nil
}

func (r *ComponentResolver) filter(items []entities.Conditional, env map[string]any) ([]string, error) {
	var out []string
	for _, item := range items {
		ok, err := Evaluate(item.When, env)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", item.Name, err)
		}
		if ok {
			out = append(out, item.Name)
		}
	}
	return out, nil
}

func targetOf(info *entities.PackageInfo, c entities.ComponentInfo) string {
	if c.Target != "" {
		return c.Target
	}
	return info.Namespace() + "::" + c.Name
}

// Evaluate runs a boolean condition against env. An empty condition is
// true.
func Evaluate(condition string, env map[string]any) (bool, error) {
	if condition == "" {
		return true, nil
	}
	program, err := expr.Compile(condition, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("invalid condition %q: %w", condition, err)
	}
	result, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("evaluating condition %q: %w", condition, err)
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("condition %q did not evaluate to a boolean", condition)
	}
	return ok, nil
}

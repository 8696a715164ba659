package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

// Variable pattern: {{ .vars.key }}
var varPattern = regexp.MustCompile(`\{\{\s*\.vars\.([a-zA-Z0-9_.]+)\s*\}\}`)

// VariableSubstitutor replaces {{ .vars.key }} references in profile
// settings with values from the profile's vars map.
type VariableSubstitutor struct{}

// NewVariableSubstitutor creates a new variable substitutor.
func NewVariableSubstitutor() *VariableSubstitutor {
	return &VariableSubstitutor{}
}

// Substitute replaces variable references in every setting value.
// Nested paths like {{ .vars.toolset.gcc }} are supported.
// Returns an error if a referenced variable is not found.
// Modifies the profile in place.
func (s *VariableSubstitutor) Substitute(profile *entities.Profile) error {
	for _, key := range profile.Settings.Keys() {
		value, err := s.substituteInString(profile.Settings[key], profile.Vars)
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		profile.Settings[key] = value
	}
	return nil
}

func (s *VariableSubstitutor) substituteInString(str string, vars map[string]any) (string, error) {
	var lastErr error

	result := varPattern.ReplaceAllStringFunc(str, func(match string) string {
		submatches := varPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			lastErr = fmt.Errorf("invalid variable pattern: %s", match)
			return match
		}

		value, err := lookupVar(vars, submatches[1])
		if err != nil {
			lastErr = err
			return match
		}
		return value
	})

	if lastErr != nil {
		return "", lastErr
	}
	return result, nil
}

// lookupVar looks up a scalar variable by dot-separated path.
func lookupVar(vars map[string]any, path string) (string, error) {
	parts := strings.Split(path, ".")
	current := any(vars)

	for i, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return "", fmt.Errorf("variable path %s: cannot access %s (not a map)", path, strings.Join(parts[:i+1], "."))
		}
		value, exists := m[part]
		if !exists {
			return "", fmt.Errorf("variable not found: %s", path)
		}
		current = value
	}

	switch v := current.(type) {
	case map[string]any, []any:
		return "", fmt.Errorf("variable %s is not a scalar", path)
	case nil:
		return "", fmt.Errorf("variable %s is null", path)
	default:
		return fmt.Sprint(v), nil
	}
}

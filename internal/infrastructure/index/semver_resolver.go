package index

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SemverResolver implements ports.VersionResolver with semantic version
// constraints.
type SemverResolver struct{}

// NewSemverResolver creates a resolver.
func NewSemverResolver() *SemverResolver {
	return &SemverResolver{}
}

// Resolve returns the highest entry of available satisfying constraint.
// "latest" and "" select the highest version. A constraint in brackets,
// such as "[>=1.14 <2]", is a range; anything else is matched as an exact
// version first and as a semver constraint otherwise. Entries that are not
// valid versions are ignored, and pre-releases are only selected by a
// constraint that names one.
func (r *SemverResolver) Resolve(constraint string, available []string) (string, error) {
	constraint = strings.TrimSpace(constraint)

	if constraint != "latest" && constraint != "" && !isRange(constraint) {
		for _, v := range available {
			if v == constraint {
				return v, nil
			}
		}
	}

	var check *semver.Constraints
	if constraint != "latest" && constraint != "" {
		c, err := semver.NewConstraint(rangeExpression(constraint))
		if err != nil {
			return "", fmt.Errorf("invalid version constraint %q: %w", constraint, err)
		}
		check = c
	}

	var best *semver.Version
	var bestRaw string
	for _, raw := range available {
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		if check == nil && v.Prerelease() != "" {
			continue
		}
		if check != nil && !check.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestRaw = raw
		}
	}

	if best == nil {
		return "", fmt.Errorf("no version satisfies %q (available: %s)", constraint, strings.Join(available, ", "))
	}
	return bestRaw, nil
}

// rangeExpression rewrites a bracketed range into Masterminds syntax.
// Conditions inside a range are separated by spaces, semver wants commas;
// "||" alternatives are kept.
func rangeExpression(constraint string) string {
	expr := strings.TrimSuffix(strings.TrimPrefix(constraint, "["), "]")
	alternatives := strings.Split(expr, "||")
	for i, alt := range alternatives {
		alternatives[i] = strings.Join(strings.Fields(alt), ", ")
	}
	return strings.Join(alternatives, " || ")
}

func isRange(constraint string) bool {
	return strings.HasPrefix(constraint, "[") && strings.HasSuffix(constraint, "]")
}

package values

import (
	"fmt"
	"path"
	"strings"
)

// OptionKey addresses one option of every package matching a pattern,
// written as "<pattern>:<option>", e.g. "gtest/*:build_gmock".
type OptionKey struct {
	pattern string
	option  string
}

// ParseOptionKey parses "<pattern>:<option>".
func ParseOptionKey(s string) (OptionKey, error) {
	pattern, option, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || pattern == "" || option == "" {
		return OptionKey{}, fmt.Errorf("invalid option key %q: expected pattern:option", s)
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return OptionKey{}, fmt.Errorf("invalid option key %q: %w", s, err)
	}
	return OptionKey{pattern: pattern, option: option}, nil
}

// MustParseOptionKey parses a key or panics.
func MustParseOptionKey(s string) OptionKey {
	k, err := ParseOptionKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Pattern returns the package pattern.
func (k OptionKey) Pattern() string { return k.pattern }

// Option returns the option name.
func (k OptionKey) Option() string { return k.option }

// String returns "<pattern>:<option>".
func (k OptionKey) String() string {
	return k.pattern + ":" + k.option
}

// Matches reports whether the key applies to ref. A pattern without a
// slash matches on the package name only.
func (k OptionKey) Matches(ref PackageReference) bool {
	target := ref.String()
	if !strings.Contains(k.pattern, "/") {
		target = ref.Name()
	}
	ok, err := path.Match(k.pattern, target)
	return err == nil && ok
}

package entities

import (
	"fmt"

	"github.com/petersen65/CppPlayground/internal/domain/values"
)

// OptionEntry is one pattern-scoped option assignment.
type OptionEntry struct {
	Key   values.OptionKey
	Value string
}

// OptionSet is an ordered set of option assignments with unique keys.
// Values are opaque here; the package that declares the option gives
// them meaning.
type OptionSet struct {
	entries []OptionEntry
}

// NewOptionSet builds a set from entries. Duplicate keys are rejected.
func NewOptionSet(entries ...OptionEntry) (OptionSet, error) {
	var set OptionSet
	for _, e := range entries {
		if err := set.add(e); err != nil {
			return OptionSet{}, err
		}
	}
	return set, nil
}

func (s *OptionSet) add(e OptionEntry) error {
	for _, existing := range s.entries {
		if existing.Key.String() == e.Key.String() {
			return fmt.Errorf("duplicate option %q", e.Key.String())
		}
	}
	s.entries = append(s.entries, e)
	return nil
}

// Entries returns a copy of the assignments in declaration order.
func (s OptionSet) Entries() []OptionEntry {
	out := make([]OptionEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of assignments.
func (s OptionSet) Len() int {
	return len(s.entries)
}

// For returns the assignments that apply to ref, keyed by option name.
// When several patterns set the same option the later declaration wins.
func (s OptionSet) For(ref values.PackageReference) map[string]string {
	out := make(map[string]string)
	for _, e := range s.entries {
		if e.Key.Matches(ref) {
			out[e.Key.Option()] = e.Value
		}
	}
	return out
}

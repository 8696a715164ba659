package values

import (
	"fmt"
	"slices"
	"strings"
)

var cppStandards = []string{"98", "11", "14", "17", "20", "23", "26"}

// CppStd is a C++ language standard version, e.g. "26".
type CppStd struct {
	value string
}

// NewCppStd validates a standard version. A "gnu" prefix is rejected;
// extensions are expressed separately.
func NewCppStd(s string) (CppStd, error) {
	s = strings.TrimSpace(s)
	if !slices.Contains(cppStandards, s) {
		return CppStd{}, fmt.Errorf("invalid C++ standard %q (allowed: %s)", s, strings.Join(cppStandards, ", "))
	}
	return CppStd{value: s}, nil
}

// MustNewCppStd creates a CppStd or panics.
func MustNewCppStd(s string) CppStd {
	std, err := NewCppStd(s)
	if err != nil {
		panic(err)
	}
	return std
}

func (c CppStd) String() string { return c.value }

// Switch is a CMake-style boolean rendered as ON or OFF.
type Switch bool

const (
	On  Switch = true
	Off Switch = false
)

// ParseSwitch accepts ON/OFF, TRUE/FALSE, 1/0 case-insensitively.
func ParseSwitch(s string) (Switch, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ON", "TRUE", "1", "YES":
		return On, nil
	case "OFF", "FALSE", "0", "NO":
		return Off, nil
	default:
		return Off, fmt.Errorf("invalid switch value %q", s)
	}
}

func (s Switch) String() string {
	if s {
		return "ON"
	}
	return "OFF"
}

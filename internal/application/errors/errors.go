// Package apperrors defines application-level error types.
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrUnresolvableDependency = errors.New("unresolvable dependency")
	ErrUnsupportedLayout      = errors.New("unsupported layout")
	ErrDescriptorWrite        = errors.New("descriptor write failure")
	ErrIncompatibleToolchain  = errors.New("incompatible toolchain")
)

// UnresolvableDependencyError indicates a declared package or version
// cannot be located by the package index.
type UnresolvableDependencyError struct {
	Cause     error
	Reference string
}

func (e *UnresolvableDependencyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unresolvable dependency %s: %v", e.Reference, e.Cause)
	}
	return fmt.Sprintf("unresolvable dependency %s", e.Reference)
}

func (e *UnresolvableDependencyError) Unwrap() error {
	return e.Cause
}

// Is matches ErrUnresolvableDependency.
func (e *UnresolvableDependencyError) Is(target error) bool {
	return target == ErrUnresolvableDependency
}

// NewUnresolvableDependencyError creates a new unresolvable dependency error.
func NewUnresolvableDependencyError(reference string, cause error) *UnresolvableDependencyError {
	return &UnresolvableDependencyError{
		Reference: reference,
		Cause:     cause,
	}
}

// UnsupportedLayoutError indicates the environment cannot provide the
// directory roles the layout convention expects.
type UnsupportedLayoutError struct {
	Cause  error
	Role   string
	Path   string
	Reason string
}

func (e *UnsupportedLayoutError) Error() string {
	msg := fmt.Sprintf("unsupported layout: %s folder", e.Role)
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *UnsupportedLayoutError) Unwrap() error {
	return e.Cause
}

// Is matches ErrUnsupportedLayout.
func (e *UnsupportedLayoutError) Is(target error) bool {
	return target == ErrUnsupportedLayout
}

// NewUnsupportedLayoutError creates a new unsupported layout error.
func NewUnsupportedLayoutError(role, path, reason string, cause error) *UnsupportedLayoutError {
	return &UnsupportedLayoutError{
		Role:   role,
		Path:   path,
		Reason: reason,
		Cause:  cause,
	}
}

// DescriptorWriteError indicates an I/O failure while emitting a generated
// artifact. Any partial output is invalid.
type DescriptorWriteError struct {
	Cause    error
	Artifact string
	Path     string
}

func (e *DescriptorWriteError) Error() string {
	return fmt.Sprintf("failed to write %s descriptor %s: %v", e.Artifact, e.Path, e.Cause)
}

func (e *DescriptorWriteError) Unwrap() error {
	return e.Cause
}

// Is matches ErrDescriptorWrite.
func (e *DescriptorWriteError) Is(target error) bool {
	return target == ErrDescriptorWrite
}

// NewDescriptorWriteError creates a new descriptor write error.
func NewDescriptorWriteError(artifact, path string, cause error) *DescriptorWriteError {
	return &DescriptorWriteError{
		Artifact: artifact,
		Path:     path,
		Cause:    cause,
	}
}

// IncompatibleToolchainError indicates the platform's compiler cannot
// honour the declared toolchain constraint.
type IncompatibleToolchainError struct {
	Cause    error
	Compiler string
	Version  string
}

func (e *IncompatibleToolchainError) Error() string {
	return fmt.Sprintf("incompatible toolchain %s %s: %v", e.Compiler, e.Version, e.Cause)
}

func (e *IncompatibleToolchainError) Unwrap() error {
	return e.Cause
}

// Is matches ErrIncompatibleToolchain.
func (e *IncompatibleToolchainError) Is(target error) bool {
	return target == ErrIncompatibleToolchain
}

// NewIncompatibleToolchainError creates a new incompatible toolchain error.
func NewIncompatibleToolchainError(compiler, version string, cause error) *IncompatibleToolchainError {
	return &IncompatibleToolchainError{
		Compiler: compiler,
		Version:  version,
		Cause:    cause,
	}
}

// ValidationError indicates settings or request validation failed.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}

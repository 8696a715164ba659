// Package dto contains data transfer objects for application layer use cases.
package dto

import (
	"github.com/petersen65/CppPlayground/internal/domain/values"
)

// InstallRequest encapsulates all inputs needed for one configuration run.
type InstallRequest struct {
	// Settings describe the target platform (os, arch, compiler, ...).
	Settings values.Settings

	// SourceFolder is the project root the layout is anchored at.
	SourceFolder string

	// LockfilePath pins resolution when set and the file exists.
	LockfilePath string

	Metadata RequestMetadata
}

// LockRequest encapsulates inputs for creating a lockfile.
type LockRequest struct {
	Settings     values.Settings
	LockfilePath string
	Metadata     RequestMetadata
}

// RequestMetadata contains contextual information about the request.
type RequestMetadata struct {
	// ProfilePath is the profile the settings came from, if any
	ProfilePath string

	// Verbose enables verbose logging
	Verbose bool
}

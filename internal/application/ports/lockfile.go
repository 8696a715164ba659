package ports

import (
	"context"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

// VersionResolver resolves version constraints to exact versions.
// This is a PORT - application defines what it needs, infrastructure provides how.
type VersionResolver interface {
	// Resolve picks the highest version in available that satisfies
	// constraint.
	// Examples:
	//   "1.16.0"         -> exactly 1.16.0
	//   "[>=1.14 <2]"    -> highest 1.x at or above 1.14
	//   "latest" or ""   -> highest available
	Resolve(constraint string, available []string) (string, error)
}

// LockfileRepository handles lockfile persistence.
// This is a PORT - abstracts file system or other storage.
type LockfileRepository interface {
	// Load reads a lockfile from the given path.
	// Returns nil, nil if lockfile doesn't exist.
	Load(ctx context.Context, path string) (*entities.Lockfile, error)

	// Save writes a lockfile to the given path.
	Save(ctx context.Context, lockfile *entities.Lockfile, path string) error

	// Exists checks if a lockfile exists at the given path.
	Exists(ctx context.Context, path string) (bool, error)
}

// PackageDigester computes digests for index entries.
// Separate from VersionResolver per Interface Segregation.
type PackageDigester interface {
	// DigestPackage computes SHA-256 of the canonical form of info.
	DigestPackage(info *entities.PackageInfo) (string, error)
}

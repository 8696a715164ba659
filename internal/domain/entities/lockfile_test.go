package entities_test

import (
	"testing"
	"time"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLockfile(t *testing.T) {
	t.Parallel()

	lock := entities.NewLockfile()
	assert.Equal(t, 1, lock.Version)
	assert.False(t, lock.Generated.IsZero())
	assert.Empty(t, lock.Packages)
}

func TestLockfile_AddPackage(t *testing.T) {
	t.Parallel()

	t.Run("valid package", func(t *testing.T) {
		lock := entities.NewLockfile()
		packageLock := entities.PackageLock{
			Requested: "1.16.0",
			Resolved:  "1.16.0",
			Source:    "embedded",
			Digest:    "sha256:123456",
		}

		err := lock.AddPackage("gtest", packageLock)
		require.NoError(t, err)
		assert.Equal(t, 1, lock.PackageCount())

		retrieved := lock.GetPackage("gtest")
		require.NotNil(t, retrieved)
		assert.Equal(t, "1.16.0", retrieved.Resolved)
	})

	t.Run("missing digest", func(t *testing.T) {
		lock := entities.NewLockfile()
		err := lock.AddPackage("gtest", entities.PackageLock{Requested: "1.16.0", Resolved: "1.16.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "digest is required")
		assert.Equal(t, 0, lock.PackageCount())
	})

	t.Run("missing resolved version", func(t *testing.T) {
		lock := entities.NewLockfile()
		err := lock.AddPackage("gtest", entities.PackageLock{Digest: "sha256:1"})
		assert.ErrorContains(t, err, "resolved version is required")
	})

	t.Run("unknown package", func(t *testing.T) {
		lock := entities.NewLockfile()
		assert.Nil(t, lock.GetPackage("zlib"))
	})
}

func TestLockfile_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid, empty", func(t *testing.T) {
		lock := entities.NewLockfile()
		assert.NoError(t, lock.Validate())
	})

	t.Run("valid, populated", func(t *testing.T) {
		lock := entities.NewLockfile()
		_ = lock.AddPackage("gtest", entities.PackageLock{Resolved: "1.16.0", Digest: "hash"})
		assert.NoError(t, lock.Validate())
	})

	t.Run("invalid version", func(t *testing.T) {
		lock := entities.NewLockfile()
		lock.Version = 2
		assert.ErrorContains(t, lock.Validate(), "unsupported lockfile version: 2")
	})

	t.Run("missing timestamp with packages", func(t *testing.T) {
		lock := entities.NewLockfile()
		_ = lock.AddPackage("gtest", entities.PackageLock{Resolved: "1.16.0", Digest: "hash"})
		lock.Generated = time.Time{}
		assert.ErrorContains(t, lock.Validate(), "generated timestamp is required")
	})
}

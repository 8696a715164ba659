package services

import (
	"context"
	"errors"
	"testing"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockfileService_Load(t *testing.T) {
	t.Parallel()

	repo := newMockLockfileRepository()
	svc := NewLockfileService(repo)

	t.Run("empty path", func(t *testing.T) {
		lock, err := svc.Load(context.Background(), "")
		require.NoError(t, err)
		assert.Nil(t, lock)
	})

	t.Run("missing file", func(t *testing.T) {
		lock, err := svc.Load(context.Background(), "absent.lock")
		require.NoError(t, err)
		assert.Nil(t, lock)
	})

	t.Run("invalid lockfile", func(t *testing.T) {
		repo.Files["bad.lock"] = &entities.Lockfile{Version: 99}
		_, err := svc.Load(context.Background(), "bad.lock")
		assert.ErrorContains(t, err, "invalid lockfile bad.lock")
	})
}

func TestLockfileService_Write(t *testing.T) {
	t.Parallel()

	pkgs := []*entities.ResolvedPackage{{
		Ref:       values.MustParsePackageReference("gtest/1.16.0"),
		Requested: "1.16.0",
		Source:    "embedded:packages/gtest-1.16.0.yaml",
		Digest:    "sha256:abc",
	}}

	t.Run("pins packages", func(t *testing.T) {
		repo := newMockLockfileRepository()
		lock, err := NewLockfileService(repo).Write(context.Background(), pkgs, "recipe.lock")
		require.NoError(t, err)

		assert.Equal(t, 1, lock.PackageCount())
		assert.False(t, lock.Generated.IsZero())
		assert.Equal(t, entities.PackageLock{
			Requested: "1.16.0",
			Resolved:  "1.16.0",
			Source:    "embedded:packages/gtest-1.16.0.yaml",
			Digest:    "sha256:abc",
		}, *repo.Files["recipe.lock"].GetPackage("gtest"))
	})

	t.Run("save failure", func(t *testing.T) {
		repo := newMockLockfileRepository()
		repo.SaveErr = errors.New("read-only file system")
		_, err := NewLockfileService(repo).Write(context.Background(), pkgs, "recipe.lock")
		assert.ErrorContains(t, err, "saving lockfile")
	})

	t.Run("missing digest", func(t *testing.T) {
		undigested := []*entities.ResolvedPackage{{Ref: pkgs[0].Ref, Requested: "1.16.0"}}
		_, err := NewLockfileService(newMockLockfileRepository()).Write(context.Background(), undigested, "recipe.lock")
		assert.ErrorContains(t, err, "digest is required")
	})
}

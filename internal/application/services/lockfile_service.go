package services

import (
	"context"
	"fmt"
	"time"

	"github.com/petersen65/CppPlayground/internal/application/ports"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

// LockfileService reads and writes lockfiles pinning resolved packages.
type LockfileService struct {
	repo ports.LockfileRepository
}

// NewLockfileService creates a new LockfileService.
func NewLockfileService(repo ports.LockfileRepository) *LockfileService {
	return &LockfileService{repo: repo}
}

// Load reads the lockfile at path. A missing file yields nil, nil.
func (s *LockfileService) Load(ctx context.Context, path string) (*entities.Lockfile, error) {
	if path == "" {
		return nil, nil
	}
	lock, err := s.repo.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading lockfile: %w", err)
	}
	if lock == nil {
		return nil, nil
	}
	if err := lock.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lockfile %s: %w", path, err)
	}
	return lock, nil
}

// Write pins pkgs into a fresh lockfile at path.
func (s *LockfileService) Write(ctx context.Context, pkgs []*entities.ResolvedPackage, path string) (*entities.Lockfile, error) {
	lock := entities.NewLockfile()
	for _, pkg := range pkgs {
		if err := lock.AddPackage(pkg.Ref.Name(), entities.PackageLock{
			Requested: pkg.Requested,
			Resolved:  pkg.Ref.Version(),
			Source:    pkg.Source,
			Digest:    pkg.Digest,
		}); err != nil {
			return nil, err
		}
	}
	lock.Generated = time.Now().UTC()

	if err := s.repo.Save(ctx, lock, path); err != nil {
		return nil, fmt.Errorf("saving lockfile: %w", err)
	}
	return lock, nil
}

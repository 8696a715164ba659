package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/petersen65/CppPlayground/internal/application/ports"
)

// DirStager implements ports.ArtifactStager with a sibling directory of
// the target that is renamed over it on commit.
type DirStager struct{}

// NewDirStager creates a stager.
func NewDirStager() *DirStager {
	return &DirStager{}
}

// Stage creates <target>.tmp-<uuid>. Missing parents of target are
// created and removed again if the staging is discarded uncommitted.
func (s *DirStager) Stage(ctx context.Context, target string) (ports.Staging, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parent := filepath.Dir(target)
	created, err := firstMissing(parent)
	if err != nil {
		return nil, err
	}
	//nolint:gosec // G301: generated build files are read by the build tool
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", parent, err)
	}

	dir := target + ".tmp-" + uuid.NewString()
	//nolint:gosec // G301: same as above
	if err := os.Mkdir(dir, 0o755); err != nil {
		if created != "" {
			_ = os.RemoveAll(created)
		}
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	return &dirStaging{dir: dir, target: target, createdParent: created}, nil
}

// firstMissing returns the topmost ancestor of path (or path itself) that
// doesn't exist, or "" when path exists.
func firstMissing(path string) (string, error) {
	missing := ""
	for p := path; ; p = filepath.Dir(p) {
		_, err := os.Stat(p)
		if err == nil {
			return missing, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to inspect %s: %w", p, err)
		}
		missing = p
		if filepath.Dir(p) == p {
			return missing, nil
		}
	}
}

type dirStaging struct {
	dir           string
	target        string
	createdParent string
	committed     bool
}

func (s *dirStaging) Dir() string {
	return s.dir
}

// Commit moves the previous target aside, renames the staging directory
// into place and removes the previous contents. If the second rename fails
// the previous target is restored.
func (s *dirStaging) Commit() error {
	if s.committed {
		return errors.New("staging already committed")
	}

	backup := ""
	if _, err := os.Lstat(s.target); err == nil {
		backup = s.target + ".old-" + uuid.NewString()
		if err := os.Rename(s.target, backup); err != nil {
			return fmt.Errorf("failed to move aside %s: %w", s.target, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to inspect %s: %w", s.target, err)
	}

	if err := os.Rename(s.dir, s.target); err != nil {
		if backup != "" {
			_ = os.Rename(backup, s.target)
		}
		return fmt.Errorf("failed to commit %s: %w", s.target, err)
	}
	s.committed = true

	if backup != "" {
		if err := os.RemoveAll(backup); err != nil {
			return fmt.Errorf("failed to remove previous %s: %w", backup, err)
		}
	}
	return nil
}

// Discard removes the staging directory, and any parents Stage created,
// unless the staging was committed.
func (s *dirStaging) Discard() error {
	if s.committed {
		return nil
	}
	if s.createdParent != "" {
		return os.RemoveAll(s.createdParent)
	}
	return os.RemoveAll(s.dir)
}

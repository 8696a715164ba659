package index

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds the number of index files read at once.
const maxConcurrentReads = 8

// FileIndex serves entries loaded from *.yaml files in index directories.
type FileIndex struct {
	catalog *catalog
	dirs    []string
}

// LoadFileIndex reads every *.yaml file directly under dirs. Directories
// that don't exist are skipped. A relative package_folder is kept as
// written and anchored at the directory of the file that declares it, so
// digests don't depend on where the index sits on disk.
func LoadFileIndex(ctx context.Context, logger *slog.Logger, dirs ...string) (*FileIndex, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var files []string
	for _, dir := range dirs {
		matches, err := listEntries(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("index directory not found, skipping", "dir", dir)
				continue
			}
			return nil, err
		}
		files = append(files, matches...)
	}

	infos := make([]*entities.PackageInfo, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info, err := loadEntry(file)
			if err != nil {
				return err
			}
			infos[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Files are added in sorted order so duplicate errors are stable.
	c := newCatalog()
	for i, info := range infos {
		if err := c.add(info, fileSource(files[i]), files[i]); err != nil {
			return nil, err
		}
	}

	logger.Debug("file index loaded", "dirs", dirs, "entries", c.len())
	return &FileIndex{catalog: c, dirs: dirs}, nil
}

func listEntries(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("index path %s is not a directory", dir)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func loadEntry(file string) (*entities.PackageInfo, error) {
	// #nosec G304 -- index files come from user-configured directories
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file %s: %w", file, err)
	}
	info, err := ParseEntry(data)
	if err != nil {
		return nil, fmt.Errorf("index file %s: %w", file, err)
	}
	info.IndexDir = filepath.Dir(file)
	return info, nil
}

// fileSource names an entry by its file name only. The source ends up in
// lockfiles, which are shared between checkouts.
func fileSource(file string) string {
	return "file:" + filepath.Base(file)
}

// Versions implements ports.PackageIndex.
func (i *FileIndex) Versions(ctx context.Context, name string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return i.catalog.versions(name)
}

// Lookup implements ports.PackageIndex.
func (i *FileIndex) Lookup(ctx context.Context, name, version string) (*entities.PackageInfo, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return i.catalog.lookup(name, version)
}

// Len returns the number of loaded entries.
func (i *FileIndex) Len() int {
	return i.catalog.len()
}

// Dirs returns the directories the index was loaded from.
func (i *FileIndex) Dirs() []string {
	return i.dirs
}

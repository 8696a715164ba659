package index

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

//go:embed packages/*.yaml
var embeddedPackages embed.FS

// EmbeddedIndex serves the entries compiled into the binary.
type EmbeddedIndex struct {
	catalog *catalog
}

// NewEmbeddedIndex parses the embedded entries.
func NewEmbeddedIndex() (*EmbeddedIndex, error) {
	return newEmbeddedIndex(embeddedPackages, "packages")
}

func newEmbeddedIndex(fsys fs.FS, dir string) (*EmbeddedIndex, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded index: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	c := newCatalog()
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		name := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		info, err := ParseEntry(data)
		if err != nil {
			return nil, fmt.Errorf("embedded entry %s: %w", name, err)
		}
		if err := c.add(info, "embedded:"+name, name); err != nil {
			return nil, err
		}
	}
	return &EmbeddedIndex{catalog: c}, nil
}

// Versions implements ports.PackageIndex.
func (i *EmbeddedIndex) Versions(ctx context.Context, name string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return i.catalog.versions(name)
}

// Lookup implements ports.PackageIndex.
func (i *EmbeddedIndex) Lookup(ctx context.Context, name, version string) (*entities.PackageInfo, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return i.catalog.lookup(name, version)
}

// Len returns the number of entries.
func (i *EmbeddedIndex) Len() int {
	return i.catalog.len()
}

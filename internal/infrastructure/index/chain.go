package index

import (
	"context"
	"errors"
	"slices"

	"github.com/petersen65/CppPlayground/internal/application/ports"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
)

// ChainIndex queries indexes in order. Versions are the union over all
// indexes; Lookup returns the first index's entry.
type ChainIndex struct {
	indexes []ports.PackageIndex
}

// NewChainIndex creates a chain over indexes.
func NewChainIndex(indexes ...ports.PackageIndex) *ChainIndex {
	return &ChainIndex{indexes: indexes}
}

// Versions implements ports.PackageIndex.
func (c *ChainIndex) Versions(ctx context.Context, name string) ([]string, error) {
	var all []string
	found := false
	for _, idx := range c.indexes {
		versions, err := idx.Versions(ctx, name)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		found = true
		all = append(all, versions...)
	}
	if !found {
		return nil, &entities.PackageNotFoundError{Name: name}
	}
	slices.Sort(all)
	return slices.Compact(all), nil
}

// Lookup implements ports.PackageIndex.
func (c *ChainIndex) Lookup(ctx context.Context, name, version string) (*entities.PackageInfo, string, error) {
	for _, idx := range c.indexes {
		info, source, err := idx.Lookup(ctx, name, version)
		if err == nil {
			return info, source, nil
		}
		if !isNotFound(err) {
			return nil, "", err
		}
	}
	return nil, "", &entities.PackageNotFoundError{Name: name, Version: version}
}

func isNotFound(err error) bool {
	var notFound *entities.PackageNotFoundError
	return errors.As(err, &notFound)
}

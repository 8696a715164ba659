// Package index provides package indexes backed by YAML entries on disk
// or compiled into the binary.
package index

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/infrastructure/validation"
)

//go:embed schema/package.schema.json
var packageSchema []byte

var (
	entryValidatorOnce sync.Once
	entryValidator     *validation.SchemaValidator
)

func validator() *validation.SchemaValidator {
	entryValidatorOnce.Do(func() {
		entryValidator = validation.MustNewSchemaValidator("package.schema.json", packageSchema)
	})
	return entryValidator
}

// ParseEntry decodes and validates one index entry.
func ParseEntry(data []byte) (*entities.PackageInfo, error) {
	if err := validator().ValidateYAML(data); err != nil {
		return nil, err
	}

	var info entities.PackageInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to decode package entry: %w", err)
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return &info, nil
}

type catalogEntry struct {
	info   *entities.PackageInfo
	source string
	origin string
}

// catalog holds loaded entries keyed by name and version. It is filled
// once and read-only afterwards.
type catalog struct {
	entries map[string]map[string]catalogEntry
}

func newCatalog() *catalog {
	return &catalog{entries: make(map[string]map[string]catalogEntry)}
}

// add registers info under source. origin locates the entry in duplicate
// errors.
func (c *catalog) add(info *entities.PackageInfo, source, origin string) error {
	versions, ok := c.entries[info.Name]
	if !ok {
		versions = make(map[string]catalogEntry)
		c.entries[info.Name] = versions
	}
	if existing, dup := versions[info.Version]; dup {
		return fmt.Errorf("duplicate entry %s/%s in %s and %s",
			info.Name, info.Version, existing.origin, origin)
	}
	versions[info.Version] = catalogEntry{info: info, source: source, origin: origin}
	return nil
}

func (c *catalog) versions(name string) ([]string, error) {
	versions, ok := c.entries[name]
	if !ok {
		return nil, &entities.PackageNotFoundError{Name: name}
	}
	out := make([]string, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	slices.Sort(out)
	return out, nil
}

func (c *catalog) lookup(name, version string) (*entities.PackageInfo, string, error) {
	entry, ok := c.entries[name][version]
	if !ok {
		return nil, "", &entities.PackageNotFoundError{Name: name, Version: version}
	}
	info := *entry.info
	return &info, entry.source, nil
}

func (c *catalog) len() int {
	n := 0
	for _, versions := range c.entries {
		n += len(versions)
	}
	return n
}

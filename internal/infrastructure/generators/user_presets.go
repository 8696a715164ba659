package generators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/petersen65/CppPlayground/internal/infrastructure/filesystem"
)

// UserPresetsFile is the presets file CMake reads from the source folder.
const UserPresetsFile = "CMakeUserPresets.json"

const userPresetsVendor = "recipe"

// UserPresets is the CMakeUserPresets.json recipe maintains. It only
// includes generated presets files.
type UserPresets struct {
	Version int            `json:"version"`
	Vendor  map[string]any `json:"vendor,omitempty"`
	Include []string       `json:"include"`
}

// LinkUserPresets makes sourceFolder/CMakeUserPresets.json include
// presetsPath, so `cmake --preset` sees the generated presets. Includes
// from earlier runs are kept while their files exist. A user presets file
// recipe did not write is left alone and "" is returned.
func (g *CMakeToolchain) LinkUserPresets(ctx context.Context, sourceFolder, presetsPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(sourceFolder, UserPresetsFile)
	user, err := readUserPresets(path)
	if err != nil {
		return "", err
	}
	if user == nil {
		user = &UserPresets{}
	} else if _, ours := user.Vendor[userPresetsVendor]; !ours {
		return "", nil
	}

	include := presetsPath
	if rel, err := filepath.Rel(sourceFolder, presetsPath); err == nil {
		include = rel
	}
	include = filepath.ToSlash(include)

	kept := make([]string, 0, len(user.Include)+1)
	for _, existing := range user.Include {
		if existing == include {
			continue
		}
		target := filepath.FromSlash(existing)
		if !filepath.IsAbs(target) {
			target = filepath.Join(sourceFolder, target)
		}
		if _, err := os.Stat(target); err == nil {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, include)
	slices.Sort(kept)

	user.Version = presetsVersion
	user.Vendor = map[string]any{userPresetsVendor: map[string]string{}}
	user.Include = kept

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding user presets: %w", err)
	}
	if err := filesystem.WriteFileAtomic(path, append(data, '\n'), filePerm); err != nil {
		return "", err
	}
	return path, nil
}

func readUserPresets(path string) (*UserPresets, error) {
	//nolint:gosec // G304: path is the project's user presets file
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading user presets: %w", err)
	}
	var p UserPresets
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding user presets %s: %w", path, err)
	}
	return &p, nil
}

// ReadUserPresets reads a CMakeUserPresets.json file.
func ReadUserPresets(path string) (*UserPresets, error) {
	p, err := readUserPresets(path)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("reading user presets: %w", fs.ErrNotExist)
	}
	return p, nil
}

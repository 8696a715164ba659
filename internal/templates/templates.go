// Package templates provides the embedded CMake templates the generators
// render.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed cmake/*.tmpl
var cmakeTemplates embed.FS

// Template names.
const (
	Config        = "config.cmake"
	ConfigVersion = "config-version.cmake"
	Targets       = "targets.cmake"
	Toolchain     = "toolchain.cmake"
)

// PackageData is the data the package templates render.
type PackageData struct {
	RunID        string
	Platform     string
	Name         string
	Version      string
	Major        string
	FileName     string
	IncludeDirs  []string
	LibDirs      []string
	Defines      []string
	Targets      []string
	Dependencies []string
	Components   []ComponentData
}

// ComponentData is one imported target.
type ComponentData struct {
	Target        string
	LinkLibraries []string
}

// ToolchainData is the data the toolchain template renders.
type ToolchainData struct {
	RunID       string
	Platform    string
	CppStd      string
	Extensions  string
	BuildType   string
	MultiConfig bool

	// CacheVariables are seeded into the cache so builds that only pass
	// the toolchain file see them too.
	CacheVariables []CacheVariable
}

// CacheVariable is one cache entry the toolchain declares.
type CacheVariable struct {
	Name  string
	Value string
	Type  string
}

var funcs = template.FuncMap{
	"cmakeList": cmakeList,
}

// cmakeList renders values as one quoted CMake list argument.
func cmakeList(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		v = strings.ReplaceAll(v, `\`, `/`)
		v = strings.ReplaceAll(v, `"`, `\"`)
		escaped[i] = v
	}
	return `"` + strings.Join(escaped, ";") + `"`
}

// CMakeTemplates returns the parsed CMake templates.
func CMakeTemplates() (*template.Template, error) {
	tmpl := template.New("").Funcs(funcs)

	err := fs.WalkDir(cmakeTemplates, "cmake", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}

		content, err := cmakeTemplates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}

		// Use filename without .tmpl as template name
		name := strings.TrimPrefix(path, "cmake/")
		name = strings.TrimSuffix(name, ".tmpl")

		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("parsing template %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	return tmpl, nil
}

// Render executes the named template.
func Render(tmpl *template.Template, name string, data any) ([]byte, error) {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return []byte(b.String()), nil
}

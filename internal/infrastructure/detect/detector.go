// Package detect derives platform settings from the running host.
package detect

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/petersen65/CppPlayground/internal/domain/values"
)

var (
	goosToOS = map[string]string{
		"linux":   "Linux",
		"windows": "Windows",
		"darwin":  "Macos",
		"freebsd": "FreeBSD",
	}
	goarchToArch = map[string]string{
		"amd64": "x86_64",
		"386":   "x86",
		"arm64": "armv8",
		"arm":   "armv7",
	}
	versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)
)

const versionTimeout = 5 * time.Second

// Detector inspects the host for os, arch and the C++ compiler.
type Detector struct {
	goos     string
	goarch   string
	getenv   func(string) string
	lookPath func(string) (string, error)
	output   func(ctx context.Context, name string, args ...string) ([]byte, error)
	logger   *slog.Logger
}

// NewDetector creates a detector for the running host.
func NewDetector(logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		goos:     runtime.GOOS,
		goarch:   runtime.GOARCH,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		output: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			//nolint:gosec // G204: compiler path comes from CXX or PATH lookup
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
		logger: logger,
	}
}

// Detect returns the host settings. build_type defaults to Release.
// A missing compiler is not an error; the compiler settings are left out.
func (d *Detector) Detect(ctx context.Context) (values.Settings, error) {
	settings := values.Settings{values.SettingBuildType: "Release"}

	osName, ok := goosToOS[d.goos]
	if !ok {
		return nil, fmt.Errorf("unsupported operating system %q", d.goos)
	}
	settings[values.SettingOS] = osName

	arch, ok := goarchToArch[d.goarch]
	if !ok {
		return nil, fmt.Errorf("unsupported architecture %q", d.goarch)
	}
	settings[values.SettingArch] = arch

	compiler, version, err := d.detectCompiler(ctx)
	if err != nil {
		d.logger.Warn("no C++ compiler detected", "error", err)
		return settings, nil
	}
	settings[values.SettingCompiler] = compiler
	settings[values.SettingCompilerVersion] = version
	if libcxx := defaultLibcxx(compiler); libcxx != "" {
		settings[values.SettingCompilerLibcxx] = libcxx
	}

	d.logger.Debug("detected compiler", "compiler", compiler, "version", version)
	return settings, nil
}

func (d *Detector) detectCompiler(ctx context.Context) (string, string, error) {
	candidates := []string{"g++", "clang++"}
	if d.goos == "darwin" {
		candidates = []string{"clang++", "g++"}
	}
	if cxx := d.getenv("CXX"); cxx != "" {
		candidates = []string{cxx}
	}

	var lastErr error
	for _, name := range candidates {
		path, err := d.lookPath(name)
		if err != nil {
			lastErr = err
			continue
		}

		versionCtx, cancel := context.WithTimeout(ctx, versionTimeout)
		out, err := d.output(versionCtx, path, "--version")
		cancel()
		if err != nil {
			lastErr = fmt.Errorf("%s --version: %w", path, err)
			continue
		}

		compiler, version, err := ParseCompilerVersion(filepath.Base(path), string(out))
		if err != nil {
			lastErr = err
			continue
		}
		return compiler, version, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no candidates")
	}
	return "", "", lastErr
}

// ParseCompilerVersion identifies the compiler from its --version output.
// Versions are reduced to the major number.
func ParseCompilerVersion(binary, output string) (string, string, error) {
	firstLine, _, _ := strings.Cut(output, "\n")

	var compiler string
	switch {
	case strings.Contains(firstLine, "Apple clang"):
		compiler = "apple-clang"
	case strings.Contains(firstLine, "clang"):
		compiler = "clang"
	case strings.Contains(firstLine, "g++"), strings.Contains(firstLine, "GCC"), strings.Contains(binary, "g++"):
		compiler = "gcc"
	default:
		return "", "", fmt.Errorf("unrecognized compiler output: %q", firstLine)
	}

	m := versionPattern.FindStringSubmatch(firstLine)
	if m == nil {
		return "", "", fmt.Errorf("no version in compiler output: %q", firstLine)
	}
	return compiler, m[1], nil
}

func defaultLibcxx(compiler string) string {
	switch compiler {
	case "gcc", "clang":
		return "libstdc++11"
	case "apple-clang":
		return "libc++"
	default:
		return ""
	}
}

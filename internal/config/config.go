package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigFileName is the per-project configuration file.
const ConfigFileName = ".incdeps.kdl"

// DefaultEnvVar is the environment variable consulted for extra search
// directories, split like a compiler INCLUDE variable.
const DefaultEnvVar = "INCLUDE"

type Config struct {
	Version int
	Project Project
	Scan    Scan
	Paths   Paths
	Watch   Watch
	Output  Output
}

type Project struct {
	Root string
	Name string
}

type Scan struct {
	Patterns []string // Root-file globs, e.g. "*.cpp" "*.h"
	Exclude  []string // Globs removed from the root set
}

type Paths struct {
	IncludeDirs []string // Search directories, in registration order
	UseEnv      bool     // Consult the EnvVar variable for extra directories
	EnvVar      string
}

type Watch struct {
	DebounceMs int // Debounce time for file change events
}

type Output struct {
	Indent   string // Per-level indent marker
	Relative bool   // Display paths relative to the project root
	Suggest  bool   // Suggest near-miss header names for unresolved includes
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) *Config {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return &Config{
		Version: 1,
		Project: Project{Root: abs},
		Scan: Scan{
			Patterns: []string{"*.cpp", "*.cc", "*.c", "*.h", "*.hpp"},
			Exclude:  []string{},
		},
		Paths: Paths{
			IncludeDirs: []string{},
			UseEnv:      true,
			EnvVar:      DefaultEnvVar,
		},
		Watch: Watch{
			DebounceMs: 300, // 300ms debounce for file changes
		},
		Output: Output{
			Indent: "| ",
		},
	}
}

// Load reads configuration for the project rooted at rootDir: the project's
// .incdeps.kdl when present, built-in defaults otherwise.
func Load(rootDir string) (*Config, error) {
	if rootDir == "" {
		rootDir = "."
	}
	cfg, err := LoadKDL(rootDir)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return cfg, nil
	}
	return Default(rootDir), nil
}

// EnvIncludeDirs splits an INCLUDE-style environment value into directory
// entries, in order, dropping empties. The caller decides which variable to
// read; the scanning core never touches the environment itself.
func EnvIncludeDirs(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, string(os.PathListSeparator))
	dirs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		dirs = append(dirs, p)
	}
	return dirs
}

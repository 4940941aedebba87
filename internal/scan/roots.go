package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/incdeps/internal/errors"
)

// DefaultPatterns are the root-file globs used when the user configures none.
var DefaultPatterns = []string{"*.cpp", "*.cc", "*.c", "*.h", "*.hpp"}

// Roots enumerates the files directly inside dir (non-recursive) whose base
// name matches at least one include pattern and no exclude pattern. Results
// are absolute paths in sorted order so output is stable across runs.
func Roots(dir string, patterns, excludes []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewScanError("enumerate", dir, err)
	}
	var roots []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !matchAny(patterns, name) || matchAny(excludes, name) {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		roots = append(roots, abs)
	}
	sort.Strings(roots)
	return roots, nil
}

// matchAny reports whether name matches any of the doublestar patterns.
// Malformed patterns never match.
func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// ValidatePatterns checks every glob up front so a bad pattern surfaces as a
// configuration error instead of being silently skipped during enumeration.
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return nil
}

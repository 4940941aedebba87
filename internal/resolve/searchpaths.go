package resolve

import (
	"os"
	"path/filepath"
)

// SearchPaths is an ordered, deduplicated set of include search directories.
// Registration order is significant: resolution probes directories in the
// order they were added, matching compiler -I precedence.
type SearchPaths struct {
	dirs []string
	seen map[string]bool
}

// NewSearchPaths creates an empty search path set.
func NewSearchPaths() *SearchPaths {
	return &SearchPaths{seen: make(map[string]bool)}
}

// Add registers a directory as a search path. It returns false without
// modifying the set when dir is empty, does not exist, or is not a
// directory, so bogus entries never silently become search roots.
// Paths are made absolute before storage; duplicates are ignored.
func (sp *SearchPaths) Add(dir string) bool {
	if dir == "" {
		return false
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return false
	}
	if sp.seen[abs] {
		return false
	}
	sp.seen[abs] = true
	sp.dirs = append(sp.dirs, abs)
	return true
}

// Dirs returns the registered directories in registration order.
// The returned slice is the internal one; callers must not mutate it.
func (sp *SearchPaths) Dirs() []string {
	return sp.dirs
}

// Len returns the number of registered directories.
func (sp *SearchPaths) Len() int {
	return len(sp.dirs)
}

// Package resolve turns raw #include strings into resolved file paths.
//
// Architecture Pattern:
// incdeps uses absolute paths internally as node identities. The resolver is
// the single place where a raw directive string becomes such an identity:
// absolute includes resolve to themselves, relative includes probe the search
// directories in registration order, and a miss falls back to the raw string
// so unresolved includes still have a stable, printable identity.
package resolve

import (
	"os"
	"path/filepath"
)

// Resolver resolves raw include strings against a set of search directories.
type Resolver struct {
	paths *SearchPaths
}

// NewResolver creates a resolver over the given search path set.
func NewResolver(paths *SearchPaths) *Resolver {
	return &Resolver{paths: paths}
}

// Resolve maps a raw include string to a file path and reports whether the
// path names an existing file.
//
// Absolute raw paths resolve to themselves whether or not the file exists,
// so callers can still use the result as a node identity. Relative raw paths
// are joined with each search directory in registration order; the first
// existing candidate wins. When nothing matches, the original raw string is
// returned unchanged with found == false.
func (r *Resolver) Resolve(raw string) (string, bool) {
	if raw == "" {
		return raw, false
	}
	p := filepath.FromSlash(raw)
	if filepath.IsAbs(p) {
		return p, isFile(p)
	}
	for _, dir := range r.paths.Dirs() {
		candidate := filepath.Join(dir, p)
		if isFile(candidate) {
			return candidate, true
		}
	}
	return raw, false
}

// isFile reports whether path names an existing regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

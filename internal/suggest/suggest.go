// Package suggest proposes likely header names for unresolved includes.
package suggest

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/hbollon/go-edlib"
)

// similarityThreshold is the minimum Jaro-Winkler score for a candidate to
// count as a plausible typo of the requested name.
const similarityThreshold = 0.8

// Index holds the basenames of every file found directly inside the search
// directories, the same namespace an include directive draws from.
type Index struct {
	names []string
}

// NewIndex collects candidate header names from dirs. Directories that
// cannot be read contribute nothing; the index is best-effort.
func NewIndex(dirs []string) *Index {
	seen := make(map[string]bool)
	var names []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return &Index{names: names}
}

// Closest returns the candidate most similar to the basename of raw, or ""
// when nothing clears the similarity threshold. An exact hit returns ""
// too: the name resolves fine, there is nothing to suggest.
func (ix *Index) Closest(raw string) string {
	want := filepath.Base(filepath.FromSlash(raw))
	if want == "" || want == "." {
		return ""
	}
	best := ""
	bestScore := float32(similarityThreshold)
	for _, name := range ix.names {
		if name == want {
			return ""
		}
		score, err := edlib.StringsSimilarity(want, name, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			best = name
			bestScore = score
		}
	}
	return best
}

// Len returns the number of indexed candidate names.
func (ix *Index) Len() int {
	return len(ix.names)
}

// Package watch rebuilds the include forest when watched files change.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/incdeps/internal/debug"
)

// Watcher monitors the project root and the search directories and invokes a
// callback with the batch of changed paths after a debounce interval. Bursts
// of events (editor save, git checkout) collapse into one rebuild.
type Watcher struct {
	watcher  *fsnotify.Watcher
	rootDir  string
	patterns []string
	debounce time.Duration
	onChange func(paths []string)
}

// New creates a watcher over rootDir and searchDirs. Events under rootDir
// only count when the file's base name matches one of patterns; events in a
// search directory always count, since a header can have any name.
func New(rootDir string, searchDirs, patterns []string, debounce time.Duration, onChange func(paths []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Event paths arrive as watched-dir + base; clean the root so the
	// directory comparison in relevant() is exact.
	rootDir = filepath.Clean(rootDir)
	w := &Watcher{
		watcher:  fsw,
		rootDir:  rootDir,
		patterns: patterns,
		debounce: debounce,
		onChange: onChange,
	}
	if err := fsw.Add(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}
	for _, dir := range searchDirs {
		if dir == rootDir {
			continue
		}
		// A search directory that cannot be watched is skipped, not fatal:
		// the scan itself already tolerates its absence.
		if err := fsw.Add(dir); err != nil {
			debug.LogWatch("cannot watch %s: %v\n", dir, err)
		}
	}
	return w, nil
}

// Run processes events until ctx is cancelled. Changed paths accumulate and
// the callback fires once per quiet period of the debounce length.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			debug.LogWatch("event %s\n", event)
			pending[event.Name] = true
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			debug.LogWatch("watch error: %v\n", err)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			pending = make(map[string]bool)
			w.onChange(paths)
		}
	}
}

// splitPath splits an event path into its cleaned directory and base name.
func splitPath(path string) (dir, base string) {
	return filepath.Dir(path), filepath.Base(path)
}

// relevant filters events down to the files that can affect the forest.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	dir, base := splitPath(event.Name)
	if dir != w.rootDir {
		return true
	}
	for _, pattern := range w.patterns {
		matched, err := doublestar.Match(pattern, base)
		if err == nil && matched {
			return true
		}
	}
	return false
}

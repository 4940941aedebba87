// Package scan extracts #include directives from source text and enumerates
// root files for graph construction.
package scan

import (
	"os"
	"regexp"
	"strings"

	"github.com/standardbeagle/incdeps/internal/debug"
)

// Directive is one matched #include line: the delimited path and the 1-based
// line number it appeared on.
type Directive struct {
	Path string
	Line int
}

// includePattern matches a #include directive with a quoted or angle-bracket
// delimited path. It is deliberately line-local and has no comment or
// preprocessor-conditional awareness: a commented-out include still matches.
// Both delimiter styles capture into the same group; the resolver treats them
// identically.
var includePattern = regexp.MustCompile(`#\s*include\s*["<]([^"<>]+)[">]`)

// Directives scans content line by line and returns every include directive
// in order of appearance. Lines are matched independently; a line that does
// not match the pattern contributes nothing.
func Directives(content string) []Directive {
	var out []Directive
	lineno := 0
	for len(content) > 0 {
		var line string
		if i := strings.IndexByte(content, '\n'); i >= 0 {
			line, content = content[:i], content[i+1:]
		} else {
			line, content = content, ""
		}
		lineno++
		m := includePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, Directive{Path: m[1], Line: lineno})
	}
	return out
}

// FileDirectives reads path and extracts its include directives. A file that
// cannot be read (vanished, permission denied, not a regular file) yields an
// empty list rather than an error; per-file failures never abort a scan.
func FileDirectives(path string) []Directive {
	content, err := os.ReadFile(path)
	if err != nil {
		debug.LogScan("unreadable %s: %v\n", path, err)
		return nil
	}
	return Directives(string(content))
}

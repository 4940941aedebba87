// Package display renders the include graph as an indented forest.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/standardbeagle/incdeps/internal/graph"
	"github.com/standardbeagle/incdeps/pkg/pathutil"
)

// PrinterOptions controls forest rendering
type PrinterOptions struct {
	Indent   string              // Per-level marker, repeated per depth
	Relative bool                // Display paths relative to Root
	Root     string              // Base directory for relative display
	Suggest  func(string) string // Optional "did you mean" lookup for unresolved includes
}

// TreePrinter renders graph nodes as an indented tree per root.
//
// One visited set is shared across the entire forest: a node expanded under
// an earlier root is collapsed to "(see above)" when it reappears, but only
// if it has outgoing edges. A revisited leaf is cheap to reprint and gives
// the reader the filename inline, so leaves are never collapsed.
type TreePrinter struct {
	w       io.Writer
	options PrinterOptions
	visited map[string]bool
}

// NewTreePrinter creates a printer writing to w.
func NewTreePrinter(w io.Writer, options PrinterOptions) *TreePrinter {
	if options.Indent == "" {
		options.Indent = "| "
	}
	return &TreePrinter{
		w:       w,
		options: options,
		visited: make(map[string]bool),
	}
}

// PrintForest prints one tree per root, in order. The visited set persists
// across roots, so shared headers expand under the first root that reaches
// them and collapse afterwards.
func (tp *TreePrinter) PrintForest(roots []*graph.Node) {
	for _, root := range roots {
		tp.printRoot(root)
	}
}

// printRoot prints a root line at indent 0 and descends into its edges.
func (tp *TreePrinter) printRoot(root *graph.Node) {
	line := tp.displayPath(root.Path)
	if !root.Exists {
		line += tp.unresolvedSuffix(root.Path)
	}
	fmt.Fprintln(tp.w, line)
	tp.visited[root.Path] = true
	tp.printEdges(root, 1)
}

// printEdges prints the outgoing edges of node at the given depth,
// in edge-insertion order.
func (tp *TreePrinter) printEdges(node *graph.Node, depth int) {
	prefix := strings.Repeat(tp.options.Indent, depth)
	for _, edge := range node.Edges {
		child := edge.To
		if tp.visited[child.Path] && len(child.Edges) > 0 {
			// Already expanded elsewhere in this forest; re-expanding a
			// subtree would be redundant and unbounded on cycles.
			fmt.Fprintf(tp.w, "%s[%d]: %s (see above)\n", prefix, edge.Line, tp.displayPath(child.Path))
			continue
		}
		tp.visited[child.Path] = true
		line := fmt.Sprintf("%s[%d]: %s", prefix, edge.Line, tp.displayPath(child.Path))
		if !child.Exists {
			line += tp.unresolvedSuffix(child.Path)
		}
		fmt.Fprintln(tp.w, line)
		if child.Exists {
			tp.printEdges(child, depth+1)
		}
	}
}

// displayPath converts a node identity to its display form.
func (tp *TreePrinter) displayPath(path string) string {
	if tp.options.Relative {
		return pathutil.ToRelative(path, tp.options.Root)
	}
	return path
}

// unresolvedSuffix annotates a non-existing node, with an optional
// suggestion when a lookup is configured.
func (tp *TreePrinter) unresolvedSuffix(path string) string {
	if tp.options.Suggest != nil {
		if hint := tp.options.Suggest(path); hint != "" {
			return fmt.Sprintf(" (unresolved, did you mean %s?)", hint)
		}
	}
	return " (unresolved)"
}

// Package graph builds the deduplicated include graph.
//
// Architecture Pattern:
// All nodes live in a single registry keyed by their resolved path string.
// Nodes reference each other only through that registry, so the structure is
// a shared graph (cycles and diamonds included), not an ownership tree. A
// node is registered before its file is scanned; that ordering is what makes
// mutual includes terminate instead of recursing forever.
package graph

import (
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/incdeps/internal/debug"
	"github.com/standardbeagle/incdeps/internal/resolve"
	"github.com/standardbeagle/incdeps/internal/scan"
)

// Edge is one include reference: the target node and the 1-based line number
// of the directive in the including file.
type Edge struct {
	To   *Node
	Line int
}

// Node represents one source or header file, identified by its path string.
// Two lookups with the same path always yield the same *Node.
type Node struct {
	// Path is the canonical identity key: the resolved path, or the raw
	// include string when resolution failed.
	Path string

	// Exists reports whether Path named a real file at scan time.
	// Unresolved includes become nodes with Exists == false.
	Exists bool

	// Hash is the xxhash of the file content, 0 when the file was unreadable.
	Hash uint64

	// Edges holds outgoing includes in order of appearance, at most one per
	// distinct child path (the first occurrence wins).
	Edges []Edge
}

// HasEdgeTo reports whether the node already has an edge to path.
func (n *Node) HasEdgeTo(path string) bool {
	for _, e := range n.Edges {
		if e.To.Path == path {
			return true
		}
	}
	return false
}

// Builder constructs the node graph. It is single-threaded by design; the
// registry has exactly one writer for the duration of a build.
type Builder struct {
	resolver *resolve.Resolver
	nodes    map[string]*Node
	order    []string
}

// NewBuilder creates a builder that resolves includes with resolver.
func NewBuilder(resolver *resolve.Resolver) *Builder {
	return &Builder{
		resolver: resolver,
		nodes:    make(map[string]*Node),
	}
}

// BuildOrGet returns the node for path, creating and scanning it on first
// lookup. The call is idempotent: a second call with the same path returns
// the identical node without re-scanning.
//
// The new node is inserted into the registry before its content is scanned.
// When a cycle leads back to a path that is still being scanned, the registry
// lookup returns the in-progress node with the edges accumulated so far,
// which breaks the recursion.
func (b *Builder) BuildOrGet(path string) *Node {
	if node, ok := b.nodes[path]; ok {
		return node
	}
	node := &Node{Path: path, Exists: isFile(path)}
	b.nodes[path] = node
	b.order = append(b.order, path)

	if !node.Exists {
		// Unresolved leaf; nothing to scan.
		return node
	}
	content, err := os.ReadFile(path)
	if err != nil {
		// The file vanished or is unreadable; treat as childless, never fatal.
		debug.LogGraph("unreadable %s: %v\n", path, err)
		return node
	}
	node.Hash = xxhash.Sum64(content)

	for _, d := range scan.Directives(string(content)) {
		resolved, _ := b.resolver.Resolve(d.Path)
		if node.HasEdgeTo(resolved) {
			// Duplicate include of the same target within one file.
			continue
		}
		child := b.BuildOrGet(resolved)
		node.Edges = append(node.Edges, Edge{To: child, Line: d.Line})
	}
	return node
}

// Lookup returns the node for path without creating one.
func (b *Builder) Lookup(path string) (*Node, bool) {
	node, ok := b.nodes[path]
	return node, ok
}

// Len returns the number of registered nodes.
func (b *Builder) Len() int {
	return len(b.nodes)
}

// DuplicateSets groups scanned nodes by content hash and returns the groups
// that contain more than one distinct path, each group in registration order.
// Unreadable and unresolved nodes (hash 0) are never grouped.
func (b *Builder) DuplicateSets() [][]string {
	byHash := make(map[uint64][]string)
	for _, path := range b.order {
		node := b.nodes[path]
		if node.Hash == 0 {
			continue
		}
		byHash[node.Hash] = append(byHash[node.Hash], path)
	}
	var sets [][]string
	for _, path := range b.order {
		node := b.nodes[path]
		if node.Hash == 0 {
			continue
		}
		group := byHash[node.Hash]
		if len(group) > 1 && group[0] == path {
			sets = append(sets, group)
		}
	}
	return sets
}

// isFile reports whether path names an existing regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

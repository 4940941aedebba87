package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/incdeps/internal/resolve"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestBuilder(t *testing.T, dirs ...string) *Builder {
	t.Helper()
	sp := resolve.NewSearchPaths()
	for _, dir := range dirs {
		require.True(t, sp.Add(dir))
	}
	return NewBuilder(resolve.NewResolver(sp))
}

// TestBuilder_Idempotent tests that BuildOrGet returns the identical node
// for repeated lookups of the same path.
func TestBuilder_Idempotent(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.cpp", "#include \"a.h\"\n")
	writeFile(t, dir, "a.h", "")

	b := newTestBuilder(t, dir)
	first := b.BuildOrGet(main)
	second := b.BuildOrGet(main)
	assert.Same(t, first, second)
	assert.Equal(t, 2, b.Len())
}

// TestBuilder_SharedChildIsOneNode tests registry deduplication across parents.
func TestBuilder_SharedChildIsOneNode(t *testing.T) {
	dir := t.TempDir()
	one := writeFile(t, dir, "one.cpp", "#include \"shared.h\"\n")
	two := writeFile(t, dir, "two.cpp", "#include \"shared.h\"\n")
	writeFile(t, dir, "shared.h", "")

	b := newTestBuilder(t, dir)
	n1 := b.BuildOrGet(one)
	n2 := b.BuildOrGet(two)
	require.Len(t, n1.Edges, 1)
	require.Len(t, n2.Edges, 1)
	assert.Same(t, n1.Edges[0].To, n2.Edges[0].To)
}

// TestBuilder_DuplicateIncludeCollapses tests first-occurrence-wins for
// repeated includes of the same target within one file.
func TestBuilder_DuplicateIncludeCollapses(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.cpp", "#include \"a.h\"\n#include \"b.h\"\n#include \"a.h\"\n")
	writeFile(t, dir, "a.h", "")
	writeFile(t, dir, "b.h", "")

	b := newTestBuilder(t, dir)
	node := b.BuildOrGet(main)
	require.Len(t, node.Edges, 2)
	assert.Equal(t, 1, node.Edges[0].Line)
	assert.Equal(t, filepath.Join(dir, "a.h"), node.Edges[0].To.Path)
	assert.Equal(t, 2, node.Edges[1].Line)
	assert.Equal(t, filepath.Join(dir, "b.h"), node.Edges[1].To.Path)
}

// TestBuilder_EdgeOrderAndLines tests include order and line number capture.
func TestBuilder_EdgeOrderAndLines(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.cpp", "// prologue\n#include \"z.h\"\n\n#include \"a.h\"\n")
	writeFile(t, dir, "z.h", "")
	writeFile(t, dir, "a.h", "")

	b := newTestBuilder(t, dir)
	node := b.BuildOrGet(main)
	require.Len(t, node.Edges, 2)
	assert.Equal(t, filepath.Join(dir, "z.h"), node.Edges[0].To.Path)
	assert.Equal(t, 2, node.Edges[0].Line)
	assert.Equal(t, filepath.Join(dir, "a.h"), node.Edges[1].To.Path)
	assert.Equal(t, 4, node.Edges[1].Line)
}

// TestBuilder_CycleTerminates tests mutual includes: A includes B, B includes A.
func TestBuilder_CycleTerminates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.h", "#include \"b.h\"\n")
	writeFile(t, dir, "b.h", "#include \"a.h\"\n")

	b := newTestBuilder(t, dir)
	nodeA := b.BuildOrGet(a)

	require.Len(t, nodeA.Edges, 1)
	nodeB := nodeA.Edges[0].To
	require.Len(t, nodeB.Edges, 1)
	// B's edge points back at the same A node, not a copy
	assert.Same(t, nodeA, nodeB.Edges[0].To)
	assert.Equal(t, 2, b.Len())
}

// TestBuilder_SelfInclude tests a file that includes itself.
func TestBuilder_SelfInclude(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "self.h", "#include \"self.h\"\n")

	b := newTestBuilder(t, dir)
	node := b.BuildOrGet(a)
	require.Len(t, node.Edges, 1)
	assert.Same(t, node, node.Edges[0].To)
}

// TestBuilder_Diamond tests A → B, A → C, B → D, C → D.
func TestBuilder_Diamond(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.cpp", "#include \"b.h\"\n#include \"c.h\"\n")
	writeFile(t, dir, "b.h", "#include \"d.h\"\n")
	writeFile(t, dir, "c.h", "#include \"d.h\"\n")
	writeFile(t, dir, "d.h", "")

	b := newTestBuilder(t, dir)
	nodeA := b.BuildOrGet(a)
	require.Len(t, nodeA.Edges, 2)
	nodeB, nodeC := nodeA.Edges[0].To, nodeA.Edges[1].To
	require.Len(t, nodeB.Edges, 1)
	require.Len(t, nodeC.Edges, 1)
	assert.Same(t, nodeB.Edges[0].To, nodeC.Edges[0].To)
	assert.Equal(t, 4, b.Len())
}

// TestBuilder_UnresolvedInclude tests that a miss becomes a childless node
// with Exists false, keyed by the raw include string.
func TestBuilder_UnresolvedInclude(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.cpp", "#include \"nowhere.h\"\n")

	b := newTestBuilder(t, dir)
	node := b.BuildOrGet(main)
	require.Len(t, node.Edges, 1)
	child := node.Edges[0].To
	assert.Equal(t, "nowhere.h", child.Path)
	assert.False(t, child.Exists)
	assert.Empty(t, child.Edges)
}

// TestBuilder_MissingRoot tests that a missing root file is a childless
// node rather than an error.
func TestBuilder_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.cpp")
	b := newTestBuilder(t)
	node := b.BuildOrGet(missing)
	assert.False(t, node.Exists)
	assert.Empty(t, node.Edges)
}

// TestBuilder_DuplicateSets tests content-hash grouping of identical files.
func TestBuilder_DuplicateSets(t *testing.T) {
	dirX := t.TempDir()
	dirY := t.TempDir()
	// Same bytes under two distinct resolved paths
	copy1 := writeFile(t, dirX, "common.h", "// identical\n")
	copy2 := writeFile(t, dirY, "legacy.h", "// identical\n")
	unique := writeFile(t, dirX, "only.h", "// unique\n")

	b := newTestBuilder(t, dirX, dirY)
	b.BuildOrGet(copy1)
	b.BuildOrGet(copy2)
	b.BuildOrGet(unique)

	sets := b.DuplicateSets()
	require.Len(t, sets, 1)
	assert.Equal(t, []string{copy1, copy2}, sets[0])
}

// TestBuilder_Lookup tests registry access without creation.
func TestBuilder_Lookup(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.h", "")

	b := newTestBuilder(t, dir)
	_, ok := b.Lookup(a)
	assert.False(t, ok)

	node := b.BuildOrGet(a)
	got, ok := b.Lookup(a)
	assert.True(t, ok)
	assert.Same(t, node, got)
}

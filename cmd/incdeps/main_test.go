package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var buf bytes.Buffer
	app.Writer = &buf
	err := app.Run(append([]string{"incdeps"}, args...))
	return buf.String(), err
}

// TestTreeCommand_EndToEnd tests a full scan-and-print over a small project.
func TestTreeCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "main.cpp", "#include \"a.h\"\n#include <missing.h>\n")
	writeSource(t, dir, "a.h", "#include \"b.h\"\n")
	writeSource(t, dir, "b.h", "")

	out, err := runApp(t, "--root", dir, "--no-env", "--relative", "tree")
	require.NoError(t, err)

	want := "a.h\n" +
		"| [1]: b.h\n" +
		"b.h\n" +
		"main.cpp\n" +
		"| [1]: a.h (see above)\n" +
		"| [2]: missing.h (unresolved)\n"
	assert.Equal(t, want, out)
}

// TestTreeCommand_ExplicitRootArgs tests positional file arguments as roots.
func TestTreeCommand_ExplicitRootArgs(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "main.cpp", "#include \"a.h\"\n")
	writeSource(t, dir, "a.h", "")

	out, err := runApp(t, "--root", dir, "--no-env", "--relative", "tree", filepath.Join(dir, "main.cpp"))
	require.NoError(t, err)

	want := "main.cpp\n" +
		"| [1]: a.h\n"
	assert.Equal(t, want, out)
}

// TestTreeCommand_IncludeDirFlag tests -I resolution of an out-of-root header.
func TestTreeCommand_IncludeDirFlag(t *testing.T) {
	dir := t.TempDir()
	inc := t.TempDir()
	writeSource(t, dir, "main.cpp", "#include <ext.h>\n")
	writeSource(t, inc, "ext.h", "")

	out, err := runApp(t, "--root", dir, "--no-env", "-I", inc, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(inc, "ext.h"))
	assert.NotContains(t, out, "(unresolved)")
}

// TestListCommand tests the configuration-debugging listing.
func TestListCommand(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "main.cpp", "")

	out, err := runApp(t, "--root", dir, "--no-env", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Root files:")
	assert.Contains(t, out, filepath.Join(dir, "main.cpp"))
	assert.Contains(t, out, "Search paths:")
	assert.Contains(t, out, dir)
}

// TestDupsCommand tests duplicate-content reporting.
func TestDupsCommand(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "one.h", "// same bytes\n")
	writeSource(t, dir, "two.h", "// same bytes\n")
	writeSource(t, dir, "main.cpp", "#include \"one.h\"\n#include \"two.h\"\n")

	out, err := runApp(t, "--root", dir, "--no-env", "--relative", "dups")
	require.NoError(t, err)
	assert.Contains(t, out, "2 identical files:")
	assert.Contains(t, out, "one.h")
	assert.Contains(t, out, "two.h")
}

// TestDupsCommand_NoDuplicates tests the empty report.
func TestDupsCommand_NoDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "main.cpp", "int main() { return 0; }\n")

	out, err := runApp(t, "--root", dir, "--no-env", "dups")
	require.NoError(t, err)
	assert.Contains(t, out, "No duplicate files found.")
}

// TestUnrecognizedFlag tests that a malformed invocation fails.
func TestUnrecognizedFlag(t *testing.T) {
	_, err := runApp(t, "--definitely-not-a-flag")
	assert.Error(t, err)
}

// TestVersionCommand tests version output.
func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "incdeps")
	assert.Contains(t, out, Version)
}

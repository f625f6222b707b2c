package utils

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "// Code generated by dogen. DO NOT EDIT."

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestSplitPattern(t *testing.T) {
	tests := []struct {
		pattern   string
		root      string
		recursive bool
	}{
		{"", ".", false},
		{"...", ".", true},
		{"./...", ".", true},
		{"/...", ".", true},
		{"internal/model", "internal/model", false},
		{"internal/...", "internal", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			root, recursive := SplitPattern(tt.pattern)
			assert.Equal(t, tt.root, root)
			assert.Equal(t, tt.recursive, recursive)
		})
	}
}

func TestWalkFiles(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.go"), "package a\n")
	writeTestFile(t, filepath.Join(root, "sub", "b.go"), "package b\n")
	writeTestFile(t, filepath.Join(root, "vendor", "c.go"), "package c\n")
	writeTestFile(t, filepath.Join(root, ".hidden", "d.go"), "package d\n")
	writeTestFile(t, filepath.Join(root, "notes.txt"), "notes\n")

	files, err := WalkFiles(root, FileWalkOptions{
		FileFilter: func(path string, info os.DirEntry) bool {
			return filepath.Ext(path) == ".go"
		},
		DirectoryFilter: DefaultDirectoryFilter(),
	})
	require.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{
		filepath.Join(root, "a.go"),
		filepath.Join(root, "sub", "b.go"),
	}, files)
}

func TestHasHeader(t *testing.T) {
	dir := t.TempDir()
	generated := filepath.Join(dir, "gen.go")
	handwritten := filepath.Join(dir, "hand.go")
	empty := filepath.Join(dir, "empty.go")
	writeTestFile(t, generated, testHeader+"\n\npackage x\n")
	writeTestFile(t, handwritten, "package x\n")
	writeTestFile(t, empty, "")

	ok, err := HasHeader(generated, testHeader)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasHeader(handwritten, testHeader)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = HasHeader(empty, testHeader)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = HasHeader(filepath.Join(dir, "missing.go"), testHeader)
	assert.Error(t, err)
}

func TestCleanDirectories(t *testing.T) {
	root := t.TempDir()
	top := filepath.Join(root, "person_json.go")
	nested := filepath.Join(root, "sub", "address_json.go")
	handwritten := filepath.Join(root, "custom_json.go")
	writeTestFile(t, top, testHeader+"\npackage x\n")
	writeTestFile(t, nested, testHeader+"\npackage sub\n")
	writeTestFile(t, handwritten, "package x\n")

	filter := GeneratedFileFilter("_json.go", testHeader)

	removed, err := CleanDirectories([]string{root, filepath.Join(root, "missing")}, filter)
	require.NoError(t, err)
	assert.Equal(t, []string{top}, removed)
	assert.FileExists(t, nested, "non-recursive patterns keep subdirectories")
	assert.FileExists(t, handwritten, "files without the header are kept")

	removed, err = CleanDirectories([]string{root + "/..."}, filter)
	require.NoError(t, err)
	assert.Equal(t, []string{nested}, removed)
	assert.NoFileExists(t, nested)
	assert.FileExists(t, handwritten)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.go")

	require.NoError(t, WriteFile(path, []byte("package a\n")))
	require.NoError(t, WriteFile(path, []byte("package b\n")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package b\n", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")

	assert.Error(t, WriteFile(filepath.Join(dir, "missing", "out.go"), nil))
}

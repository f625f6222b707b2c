package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoModParser_ParseModuleName(t *testing.T) {
	dir := t.TempDir()
	goMod := filepath.Join(dir, "go.mod")
	writeTestFile(t, goMod, "module example.com/app\n\ngo 1.25\n")

	parser := NewGoModParser()
	name, err := parser.ParseModuleName(goMod)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", name)

	// cached results survive the file changing
	writeTestFile(t, goMod, "module example.com/other\n")
	name, err = parser.ParseModuleName(goMod)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", name)
}

func TestGoModParser_ParseModuleNameErrors(t *testing.T) {
	dir := t.TempDir()
	parser := NewGoModParser()

	_, err := parser.ParseModuleName(filepath.Join(dir, "main.go"))
	assert.Error(t, err)

	_, err = parser.ParseModuleName(filepath.Join(dir, "go.mod"))
	assert.Error(t, err)

	noModule := filepath.Join(dir, "nomodule", "go.mod")
	writeTestFile(t, noModule, "go 1.25\n")
	_, err = parser.ParseModuleName(noModule)
	assert.Error(t, err)
}

func TestGoModParser_FindGoModFile(t *testing.T) {
	root := t.TempDir()
	goMod := filepath.Join(root, "go.mod")
	writeTestFile(t, goMod, "module example.com/app\n")
	deep := filepath.Join(root, "internal", "model")
	require.NoError(t, os.MkdirAll(deep, 0755))

	found, err := NewGoModParser().FindGoModFile(deep)
	require.NoError(t, err)

	expected, err := filepath.EvalSymlinks(goMod)
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestGoModParser_PackagePath(t *testing.T) {
	root := t.TempDir()
	goMod := filepath.Join(root, "go.mod")
	writeTestFile(t, goMod, "module example.com/app\n")
	parser := NewGoModParser()

	path, err := parser.PackagePath(goMod, root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", path)

	path, err = parser.PackagePath(goMod, filepath.Join(root, "internal", "model"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/app/internal/model", path)

	_, err = parser.PackagePath(goMod, filepath.Dir(root))
	assert.Error(t, err)
}

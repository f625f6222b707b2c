package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dogen/internal/generator"
)

func TestCleaner_CleanGeneratedFiles(t *testing.T) {
	generated := generator.GeneratedHeader + "\n\npackage model\n"
	dir := writeModule(t, map[string]string{
		"model/item_json.go":     generated,
		"model/custom_json.go":   "package model\n",
		"model/sub/cart_json.go": generated,
		"model/item_codec.go":    generated,
	})

	removed, err := NewCleaner("", nil).CleanGeneratedFiles([]string{filepath.Join(dir, "model")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "model", "item_json.go")}, removed)
	assert.FileExists(t, filepath.Join(dir, "model", "custom_json.go"))
	assert.FileExists(t, filepath.Join(dir, "model", "sub", "cart_json.go"))

	removed, err = NewCleaner("_codec.go", nil).CleanGeneratedFiles([]string{dir + "/..."})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "model", "item_codec.go")}, removed)
	assert.FileExists(t, filepath.Join(dir, "model", "sub", "cart_json.go"))
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelDoc = `//dogen::module -Name=shop
package model
`

const modelSource = `package model

//dogen::dataobject -GenerateConverter
type Item struct {
	name string
	qty  int
}

func NewItem() *Item                            { return &Item{} }
func NewItemCopy(other *Item) *Item             { c := *other; return &c }
func NewItemFromJSON(json map[string]any) *Item { return &Item{} }

func (i *Item) SetName(name string)    { i.name = name }
func (i *Item) GetName() string        { return i.name }
func (i *Item) SetQty(qty int)         { i.qty = qty }
func (i *Item) GetQty() int            { return i.qty }
func (i *Item) ToJSON() map[string]any { return map[string]any{"name": i.name} }
`

func init() {
	color.NoColor = true
}

func setupModule(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}
	dir := t.TempDir()
	files := map[string]string{
		"go.mod":        "module example.com/shop\n\ngo 1.22\n",
		"model/doc.go":  modelDoc,
		"model/item.go": modelSource,
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = newApp(&out, &errOut).Run(append([]string{"dogen"}, args...))
	return out.String(), errOut.String(), err
}

func TestApp_Help(t *testing.T) {
	stdout, _, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dogen")
	assert.Contains(t, stdout, "generate")
	assert.Contains(t, stdout, "describe")
	assert.Contains(t, stdout, "clean")
}

func TestApp_GenerateDescribeClean(t *testing.T) {
	dir := setupModule(t)
	converter := filepath.Join(dir, "model", "item_json.go")

	t.Run("dry run writes nothing", func(t *testing.T) {
		stdout, _, err := run(t, "-C", dir, "generate", "--dry-run", "./...")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Would generate files:")
		assert.NoFileExists(t, converter)
	})

	t.Run("generate", func(t *testing.T) {
		stdout, _, err := run(t, "-C", dir, "generate")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Generation complete!")

		content, err := os.ReadFile(converter)
		require.NoError(t, err)
		assert.Contains(t, string(content), "func ItemFromJSON(json dogen.JsonObject, obj *Item) error {")
	})

	t.Run("describe json", func(t *testing.T) {
		stdout, _, err := run(t, "-C", dir, "describe", "--format", "json")
		require.NoError(t, err)

		var views []map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout), &views), stdout)
		require.Len(t, views, 1)
		assert.Equal(t, "example.com/shop/model.Item", views[0]["fqn"])
	})

	t.Run("describe yaml", func(t *testing.T) {
		stdout, _, err := run(t, "-C", dir, "describe")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "- fqn: example.com/shop/model.Item"), stdout)
	})

	t.Run("clean", func(t *testing.T) {
		stdout, _, err := run(t, "-C", dir, "clean")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Removed 1 generated files")
		assert.NoFileExists(t, converter)
		assert.FileExists(t, filepath.Join(dir, "model", "item.go"))
	})
}

func TestApp_GenerateFailure(t *testing.T) {
	dir := setupModule(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model", "cart.go"), []byte(`package model

//dogen::dataobject
type Cart struct{}

func NewCart() *Cart { return &Cart{} }
`), 0o644))

	_, stderr, err := run(t, "-C", dir, "generate")
	assert.ErrorIs(t, err, errGenerationFailed)
	assert.Contains(t, stderr, "Code Generation Failed")
	assert.Contains(t, stderr, "Cart")
}

func TestApp_DescribeUnknownFormat(t *testing.T) {
	_, _, err := run(t, "describe", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestApp_BadConfig(t *testing.T) {
	dir := setupModule(t)
	_, _, err := run(t, "-C", dir, "-c", "missing.yaml", "clean")
	assert.Error(t, err)
}

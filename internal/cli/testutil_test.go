package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeModule lays out a throwaway Go module and returns its root
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if _, ok := files["go.mod"]; !ok {
		files["go.mod"] = "module example.com/shop\n\ngo 1.22\n"
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func requireGo(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}
}

const shopDoc = `// Package model holds the shop data objects.
//
//dogen::module -Name=shop
package model
`

const itemSource = `package model

// Item is a line of an order.
//
//dogen::dataobject -GenerateConverter
type Item struct {
	name string
	qty  int
	tags []string
}

func NewItem() *Item                            { return &Item{} }
func NewItemCopy(other *Item) *Item             { c := *other; return &c }
func NewItemFromJSON(json map[string]any) *Item { return &Item{} }

func (i *Item) SetName(name string)    { i.name = name }
func (i *Item) GetName() string        { return i.name }
func (i *Item) SetQty(qty int)         { i.qty = qty }
func (i *Item) GetQty() int            { return i.qty }
func (i *Item) AddTag(tag string)      { i.tags = append(i.tags, tag) }
func (i *Item) GetTags() []string      { return i.tags }
func (i *Item) ToJSON() map[string]any { return map[string]any{"name": i.name} }
`

const cartSource = `package model

// Cart lacks the copy and JSON constructors.
//
//dogen::dataobject -GenerateConverter
type Cart struct{ owner string }

func NewCart() *Cart { return &Cart{} }

func (c *Cart) SetOwner(owner string) { c.owner = owner }
func (c *Cart) GetOwner() string      { return c.owner }
`

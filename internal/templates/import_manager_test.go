package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportManager_AddImport(t *testing.T) {
	im := NewImportManager("example.com/app/model")

	assert.Equal(t, "", im.AddImport("example.com/app/model"), "own package is never imported")
	assert.Equal(t, "", im.AddImport(""))
	assert.Equal(t, "dogen", im.AddImport("github.com/toyz/dogen/pkg/dogen"))
	assert.Equal(t, "dogen", im.AddImport("github.com/toyz/dogen/pkg/dogen"), "repeated imports reuse the name")
	assert.Equal(t, "dogen2", im.AddImport("example.com/other/dogen"))
	assert.Equal(t, "yaml", im.AddImport("gopkg.in/yaml.v3"))
	assert.Equal(t, "pp", im.AddImport("github.com/k0kubun/pp/v3"))
}

func TestImportManager_Qualify(t *testing.T) {
	im := NewImportManager("example.com/app/model")

	assert.Equal(t, "Person", im.Qualify("example.com/app/model", "Person"))
	assert.Equal(t, "geo.Location", im.Qualify("example.com/app/geo", "Location"))
}

func TestImportManager_GenerateImports(t *testing.T) {
	im := NewImportManager("example.com/app/model")
	assert.Empty(t, im.GenerateImports())

	im.AddImport("github.com/toyz/dogen/pkg/dogen")
	assert.Equal(t, "import \"github.com/toyz/dogen/pkg/dogen\"\n", im.GenerateImports())

	im.AddImport("example.com/other/dogen")
	im.AddImport("github.com/k0kubun/pp/v3")
	expected := "import (\n" +
		"\tdogen2 \"example.com/other/dogen\"\n" +
		"\tpp \"github.com/k0kubun/pp/v3\"\n" +
		"\t\"github.com/toyz/dogen/pkg/dogen\"\n" +
		")\n"
	assert.Equal(t, expected, im.GenerateImports())
}

func TestPackageName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"github.com/toyz/dogen/pkg/dogen", "dogen"},
		{"github.com/hashicorp/go-multierror", "multierror"},
		{"github.com/k0kubun/pp/v3", "pp"},
		{"gopkg.in/yaml.v3", "yaml"},
		{"example.com/my-pkg", "mypkg"},
		{"example.com/123", "pkg"},
		{"fmt", "fmt"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, PackageName(tt.path))
		})
	}
}

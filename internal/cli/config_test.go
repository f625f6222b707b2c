package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dogen/internal/dataobject"
	"github.com/toyz/dogen/internal/errors"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	fc, err := LoadConfig(Config{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, fc.Path())
	assert.Equal(t, dataobject.GoExported.Name, fc.ConventionSet().Name)
	assert.Empty(t, fc.Modules)
}

func TestLoadConfig_ExplicitFileMustExist(t *testing.T) {
	_, err := LoadConfig(Config{Dir: t.TempDir(), ConfigFile: "custom.yaml"})
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	dir := writeModule(t, map[string]string{
		DefaultConfigFile: `conventions: javabeans
jsonObjectTypes:
  - example.com/shop/json.Object
jsonArrayTypes:
  - example.com/shop/json.Array
outputSuffix: _codec.go
buildTags: [integration]
modules:
  - package: example.com/shop/model
    name: shop
    groupPackage: example.com/shop
`,
	})

	fc, err := LoadConfig(Config{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, DefaultConfigFile), fc.Path())
	assert.Equal(t, dataobject.JavaBeans.Name, fc.ConventionSet().Name)
	assert.Equal(t, []string{"example.com/shop/json.Object"}, fc.JSONObjectTypes)
	assert.Equal(t, []string{"example.com/shop/json.Array"}, fc.JSONArrayTypes)
	assert.Equal(t, "_codec.go", fc.OutputSuffix)
	assert.Equal(t, []string{"integration"}, fc.BuildTags)
	require.Len(t, fc.Modules, 1)
	assert.Equal(t, ModuleConfig{Package: "example.com/shop/model", Name: "shop", GroupPackage: "example.com/shop"}, fc.Modules[0])
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "modules: [\n"},
		{"unknown conventions", "conventions: pascal\n"},
		{"module without name", "modules:\n  - package: example.com/shop\n"},
		{"module without package", "modules:\n  - name: shop\n"},
		{"duplicate module package", "modules:\n  - {package: a, name: x}\n  - {package: a, name: y}\n"},
		{"suffix without extension", "outputSuffix: _json\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeModule(t, map[string]string{DefaultConfigFile: tt.content})
			_, err := LoadConfig(Config{Dir: dir})
			require.Error(t, err)
			assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
		})
	}
}

func TestFileConfig_ModuleInfos(t *testing.T) {
	dir := writeModule(t, map[string]string{})
	fc := &FileConfig{Modules: []ModuleConfig{
		{Package: "./model", Name: "shop"},
		{Package: "example.com/other", Name: "other", GroupPackage: "example.com"},
	}}

	modules, err := fc.ModuleInfos(NewModuleResolver(), dir)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "example.com/shop/model", modules[0].Package)
	assert.Equal(t, "shop", modules[0].Name)
	assert.Equal(t, "example.com/other", modules[1].Package)
	assert.Equal(t, "example.com", modules[1].GroupPackage)
}

func TestFileConfig_ModuleInfosOutsideModule(t *testing.T) {
	dir := writeModule(t, map[string]string{})
	fc := &FileConfig{Modules: []ModuleConfig{{Package: "../elsewhere", Name: "x"}}}

	_, err := fc.ModuleInfos(NewModuleResolver(), dir)
	assert.Error(t, err)
}

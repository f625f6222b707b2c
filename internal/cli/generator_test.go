package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dogen/internal/errors"
	"github.com/toyz/dogen/internal/generator"
	"github.com/toyz/dogen/internal/utils"
)

func newTestGenerator() (*Generator, *bytes.Buffer) {
	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	var out bytes.Buffer
	diagnostics.SetOutput(&out, &out)
	reporter := NewDiagnosticReporter(false)
	reporter.SetOutput(&out, &out)
	return NewGenerator(diagnostics, reporter, nil), &out
}

func TestGenerator_Run(t *testing.T) {
	requireGo(t)
	dir := writeModule(t, map[string]string{
		"model/doc.go":  shopDoc,
		"model/item.go": itemSource,
	})

	g, _ := newTestGenerator()
	err := g.Run(context.Background(), Config{Dir: dir, Patterns: []string{"./..."}})
	require.NoError(t, err)

	path := filepath.Join(dir, "model", "item_json.go")
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	src := string(content)
	assert.True(t, strings.HasPrefix(src, generator.GeneratedHeader))
	assert.Contains(t, src, "package model")
	assert.Contains(t, src, "func ItemFromJSON(json dogen.JsonObject, obj *Item) error {")
	assert.Contains(t, src, "obj.SetName(val)")
	assert.Contains(t, src, "obj.AddTag(val)")
	assert.Contains(t, src, `json["qty"] = obj.GetQty()`)

	summary := g.GetSummary()
	assert.Equal(t, 1, summary.PackagesScanned)
	assert.Equal(t, 1, summary.ModelsBuilt)
	assert.Equal(t, 3, summary.PropertiesFound)
	assert.Equal(t, []string{path}, summary.GeneratedFiles)
}

func TestGenerator_RunDryRun(t *testing.T) {
	requireGo(t)
	dir := writeModule(t, map[string]string{
		"model/doc.go":  shopDoc,
		"model/item.go": itemSource,
	})

	g, _ := newTestGenerator()
	require.NoError(t, g.Run(context.Background(), Config{Dir: dir, Patterns: []string{"./..."}, DryRun: true}))

	assert.NoFileExists(t, filepath.Join(dir, "model", "item_json.go"))
	assert.Len(t, g.GetSummary().GeneratedFiles, 1)
	assert.True(t, g.GetSummary().DryRun)
}

func TestGenerator_RunAggregatesFailures(t *testing.T) {
	requireGo(t)
	dir := writeModule(t, map[string]string{
		"model/doc.go":  shopDoc,
		"model/item.go": itemSource,
		"model/cart.go": cartSource,
	})

	g, _ := newTestGenerator()
	err := g.Run(context.Background(), Config{Dir: dir, Patterns: []string{"./..."}})
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, stderrors.As(err, &merr))
	require.Len(t, merr.Errors, 1)

	var structural *errors.StructuralError
	require.True(t, stderrors.As(merr.Errors[0], &structural))
	assert.Equal(t, errors.MissingCopyConstructor, structural.Reason)

	assert.FileExists(t, filepath.Join(dir, "model", "item_json.go"), "healthy data objects are still generated")
	assert.NoFileExists(t, filepath.Join(dir, "model", "cart_json.go"))
	assert.Equal(t, 1, g.GetSummary().Failures)
}

func TestGenerator_ConfigOutputSuffix(t *testing.T) {
	requireGo(t)
	dir := writeModule(t, map[string]string{
		"model/doc.go":    shopDoc,
		"model/item.go":   itemSource,
		DefaultConfigFile: "outputSuffix: _codec.go\n",
	})

	g, _ := newTestGenerator()
	require.NoError(t, g.Run(context.Background(), Config{Dir: dir, Patterns: []string{"./..."}}))
	assert.FileExists(t, filepath.Join(dir, "model", "item_codec.go"))
}

func TestGenerator_ConfiguredModule(t *testing.T) {
	requireGo(t)
	dir := writeModule(t, map[string]string{
		"model/item.go":   itemSource,
		DefaultConfigFile: "modules:\n  - package: ./model\n    name: shop\n",
	})

	g, _ := newTestGenerator()
	build, err := g.Build(context.Background(), Config{Dir: dir, Patterns: []string{"./..."}})
	require.NoError(t, err)

	models := build.Models()
	require.Len(t, models, 1)
	assert.Equal(t, "example.com/shop/model.Item", models[0].FQN())
	assert.Equal(t, "shop", models[0].Module().Name)
}

func TestGenerator_BadConfig(t *testing.T) {
	dir := writeModule(t, map[string]string{DefaultConfigFile: "conventions: nope\n"})

	g, _ := newTestGenerator()
	err := g.Run(context.Background(), Config{Dir: dir, Patterns: []string{"./..."}})
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
}

func TestGenerator_ReportSuccess(t *testing.T) {
	requireGo(t)
	dir := writeModule(t, map[string]string{
		"model/doc.go":  shopDoc,
		"model/item.go": itemSource,
	})

	g, out := newTestGenerator()
	require.NoError(t, g.Run(context.Background(), Config{Dir: dir, Patterns: []string{"./..."}, DryRun: true}))
	g.ReportSuccess()

	assert.Contains(t, out.String(), "Built 1 data object models")
	assert.Contains(t, out.String(), "Would generate files:")
}

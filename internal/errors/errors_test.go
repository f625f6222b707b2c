package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_Error(t *testing.T) {
	err := New(StructuralErrorCode, "no module")
	assert.Equal(t, "no module", err.Error())

	err.WithLocation(SourceLocation{File: "item.go", Line: 4, Column: 2})
	assert.Equal(t, "item.go:4:2: no module", err.Error())
	assert.Equal(t, "no module", err.Text())
	assert.Empty(t, err.Context())
}

func TestSourceLocation_String(t *testing.T) {
	assert.Equal(t, "unknown location", SourceLocation{}.String())
	assert.Equal(t, "a.go", SourceLocation{File: "a.go"}.String())
	assert.Equal(t, "a.go:3", SourceLocation{File: "a.go", Line: 3}.String())
	assert.True(t, SourceLocation{Line: 3}.IsEmpty())
}

func TestStructuralError(t *testing.T) {
	err := NewStructuralError("shop.Cart", MissingJSONConstructor, "no json constructor").
		WithSuggestion("add NewCartFromJSON")

	assert.Equal(t, StructuralErrorCode, err.ErrorCode())
	assert.Equal(t, "shop.Cart", err.Context()["type_name"])
	assert.Equal(t, "missing json constructor", err.Context()["reason"])
	assert.Equal(t, []string{"add NewCartFromJSON"}, err.Suggestions())

	var se *StructuralError
	require.True(t, stderrors.As(fmt.Errorf("wrapped: %w", err), &se))
	assert.Equal(t, MissingJSONConstructor, se.Reason)
}

func TestNamingConventionError(t *testing.T) {
	err := NewNamingConventionError("shop.Cart", "AddItems", "adder must be singular")
	assert.Equal(t, "shop.Cart.AddItems: adder must be singular", err.Error())
	assert.Equal(t, "AddItems", err.Context()["method_name"])
}

func TestTypeResolutionError_WithMember(t *testing.T) {
	err := NewTypeResolutionError("T", "type parameter T cannot be classified").WithMember("shop.Box", "SetValue")
	assert.Equal(t, "shop.Box.SetValue: type parameter T cannot be classified", err.Error())
	assert.Equal(t, "T", err.Context()["type"])
	assert.Equal(t, "SetValue", err.Context()["method_name"])

	bare := NewTypeResolutionError("T", "unsupported").WithMember("shop.Box", "")
	assert.Equal(t, "shop.Box: unsupported", bare.Error())
}

func TestSyntaxErrorWithToken(t *testing.T) {
	err := NewSyntaxErrorWithToken("unexpected flag", "-Bogus", 12)
	assert.Equal(t, "unexpected flag (near token '-Bogus')", err.Error())
	assert.Equal(t, 12, err.Position)
}

func TestWrappers(t *testing.T) {
	cause := stderrors.New("permission denied")

	fsErr := WrapFileSystemError("write", "item_json.go", cause)
	assert.Equal(t, "failed to write file 'item_json.go'", fsErr.Error())
	assert.ErrorIs(t, fsErr, cause)
	assert.Equal(t, FileSystemErrorCode, CodeOf(fsErr))

	tmplErr := WrapTemplateError("converter-file", "execute", cause)
	assert.Equal(t, TemplateErrorCode, CodeOf(tmplErr))
	assert.Equal(t, "execute", tmplErr.Stage)

	cfgErr := ConfigurationError(".dogen.yaml", "unknown conventions")
	assert.Equal(t, "configuration error in '.dogen.yaml': unknown conventions", cfgErr.Error())
	assert.Equal(t, ".dogen.yaml", cfgErr.Context()["config_type"])

	assert.Equal(t, UnknownErrorCode, CodeOf(cause))
	genErr := WrapGenerateError("converter", "x.go", cause).WithStage("format")
	assert.Equal(t, "x.go", genErr.TargetFile)
	assert.Equal(t, "converter", genErr.GenerationType)
	assert.Equal(t, "format", genErr.Stage)
	assert.Equal(t, GenerationErrorCode, CodeOf(fmt.Errorf("outer: %w", genErr)))
}

package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(APIAnnotation, APIAnnotationSchema))

	assert.True(t, r.IsRegistered(APIAnnotation))
	assert.False(t, r.IsRegistered(IgnoreAnnotation))

	schema, err := r.GetSchema(APIAnnotation)
	require.NoError(t, err)
	assert.Equal(t, APIAnnotation, schema.Type)

	_, err = r.GetSchema(IgnoreAnnotation)
	assert.EqualError(t, err, "annotation type ignore is not registered")
}

func TestRegistry_RegisterRejects(t *testing.T) {
	tests := []struct {
		name    string
		typ     AnnotationType
		schema  AnnotationSchema
		wantErr string
	}{
		{
			name:    "type mismatch",
			typ:     IgnoreAnnotation,
			schema:  APIAnnotationSchema,
			wantErr: "schema type api does not match annotation type ignore",
		},
		{
			name: "empty parameter name",
			typ:  APIAnnotation,
			schema: AnnotationSchema{Type: APIAnnotation, Parameters: map[string]ParameterSpec{
				"": {Type: StringType},
			}},
			wantErr: "parameter name cannot be empty",
		},
		{
			name: "bad default",
			typ:  APIAnnotation,
			schema: AnnotationSchema{Type: APIAnnotation, Parameters: map[string]ParameterSpec{
				"Flag": {Type: BoolType, DefaultValue: "yes"},
			}},
			wantErr: "default value for bool parameter Flag must be bool, got string",
		},
		{
			name: "unknown parameter type",
			typ:  APIAnnotation,
			schema: AnnotationSchema{Type: APIAnnotation, Parameters: map[string]ParameterSpec{
				"Flag": {Type: ParameterType(9)},
			}},
			wantErr: "invalid parameter type for Flag: 9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(tt.typ, tt.schema)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterBuiltinSchemas(r))
	err := r.Register(APIAnnotation, APIAnnotationSchema)
	assert.EqualError(t, err, "annotation type api is already registered")
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Same(t, r, DefaultRegistry())
	assert.Equal(t, []AnnotationType{DataObjectAnnotation, ModuleAnnotation, APIAnnotation, IgnoreAnnotation}, r.ListTypes())
}

func TestAnnotationType_RoundTrip(t *testing.T) {
	for _, typ := range []AnnotationType{DataObjectAnnotation, ModuleAnnotation, APIAnnotation, IgnoreAnnotation} {
		parsed, err := ParseAnnotationType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
	_, err := ParseAnnotationType("route")
	assert.Error(t, err)
	assert.Equal(t, "unknown", AnnotationType(42).String())
}

func TestBuiltinSchemaExamplesParse(t *testing.T) {
	parser := NewParticipleParser(DefaultRegistry())
	for _, schema := range []AnnotationSchema{DataObjectAnnotationSchema, ModuleAnnotationSchema, APIAnnotationSchema, IgnoreAnnotationSchema} {
		for _, example := range schema.Examples {
			parsed, err := parser.ParseAnnotation(example, SourceLocation{File: "example.go", Line: 1})
			if assert.NoError(t, err, example) {
				assert.Equal(t, schema.Type, parsed.Type, example)
			}
		}
	}
}

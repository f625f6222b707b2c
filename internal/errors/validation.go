package errors

import "fmt"

// SyntaxError represents an annotation syntax error
type SyntaxError struct {
	*BaseError
	Token    string // the token that caused the error
	Position int    // position in the input where error occurred
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
	}
}

// NewSyntaxErrorWithToken creates a syntax error with token information
func NewSyntaxErrorWithToken(message, token string, position int) *SyntaxError {
	if token != "" {
		message = fmt.Sprintf("%s (near token '%s')", message, token)
	}

	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
		Token:     token,
		Position:  position,
	}
}

// WithLocation adds location information to the error
func (e *SyntaxError) WithLocation(loc SourceLocation) *SyntaxError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithSuggestion adds a helpful suggestion
func (e *SyntaxError) WithSuggestion(suggestion string) *SyntaxError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// SchemaError represents an annotation that does not match its schema
type SchemaError struct {
	*BaseError
	SchemaName    string // name of the schema
	ParameterName string // parameter that caused the error (if applicable)
}

// NewSchemaError creates a new schema error
func NewSchemaError(schemaName, message string) *SchemaError {
	return &SchemaError{
		BaseError:  New(SchemaErrorCode, fmt.Sprintf("%s annotation: %s", schemaName, message)),
		SchemaName: schemaName,
	}
}

// WithParameterName sets the parameter that caused the error
func (e *SchemaError) WithParameterName(paramName string) *SchemaError {
	e.ParameterName = paramName
	e.BaseError.WithContext("parameter_name", paramName)
	return e
}

// WithLocation adds location information to the error
func (e *SchemaError) WithLocation(loc SourceLocation) *SchemaError {
	e.BaseError.WithLocation(loc)
	return e
}

// GenerationError represents an error during code generation
type GenerationError struct {
	*BaseError
	GenerationType string // type of generation (template, converter, etc.)
	TargetFile     string // target file being generated
	Stage          string // stage of generation where error occurred
}

// NewGenerationError creates a new generation error
func NewGenerationError(message string) *GenerationError {
	return &GenerationError{
		BaseError: New(GenerationErrorCode, message),
	}
}

// WithStage sets the generation stage
func (e *GenerationError) WithStage(stage string) *GenerationError {
	e.Stage = stage
	return e
}

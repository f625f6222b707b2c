package models

import (
	stderrors "errors"
	"fmt"

	"github.com/toyz/dogen/internal/errors"
)

// ErrorType represents different types of generator errors
type ErrorType int

const (
	ErrorTypeAnnotationSyntax ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNamingConvention
	ErrorTypeTypeResolution
	ErrorTypeGeneration
	ErrorTypeFileSystem
	ErrorTypeConfiguration
)

// GeneratorError represents an error that occurred while building models or generating code
type GeneratorError struct {
	Type        ErrorType              // type of error
	File        string                 // file where error occurred
	Line        int                    // line number where error occurred
	Message     string                 // error message
	Cause       error                  // underlying error cause
	Context     map[string]interface{} // additional context such as type_name and method_name
	Suggestions []string               // actionable fixes
}

// Error implements the error interface
func (e *GeneratorError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error cause
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

// NewGeneratorError converts err into a GeneratorError. Typed dogen errors
// keep their location, context and suggestions; other errors are reported
// with fallbackType.
func NewGeneratorError(err error, fallbackType ErrorType) *GeneratorError {
	var existing *GeneratorError
	if stderrors.As(err, &existing) {
		return existing
	}

	var de errors.DogenError
	if !stderrors.As(err, &de) {
		return &GeneratorError{Type: fallbackType, Message: err.Error(), Cause: err}
	}

	loc := de.Location()
	return &GeneratorError{
		Type:        errorTypeFor(de.ErrorCode(), fallbackType),
		File:        loc.File,
		Line:        loc.Line,
		Message:     messageOf(de),
		Cause:       err,
		Context:     de.Context(),
		Suggestions: de.Suggestions(),
	}
}

func messageOf(de errors.DogenError) string {
	if b, ok := de.(interface{ Text() string }); ok {
		return b.Text()
	}
	return de.Error()
}

func errorTypeFor(code errors.ErrorCode, fallback ErrorType) ErrorType {
	switch code {
	case errors.SyntaxErrorCode, errors.SchemaErrorCode:
		return ErrorTypeAnnotationSyntax
	case errors.StructuralErrorCode:
		return ErrorTypeValidation
	case errors.NamingConventionErrorCode:
		return ErrorTypeNamingConvention
	case errors.TypeResolutionErrorCode:
		return ErrorTypeTypeResolution
	case errors.GenerationErrorCode, errors.TemplateErrorCode:
		return ErrorTypeGeneration
	case errors.FileSystemErrorCode:
		return ErrorTypeFileSystem
	case errors.ConfigurationErrorCode:
		return ErrorTypeConfiguration
	default:
		return fallback
	}
}

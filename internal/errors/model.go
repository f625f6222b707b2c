package errors

import "fmt"

// StructuralReason identifies which structural rule a data object violated
type StructuralReason int

const (
	WrongKind StructuralReason = iota
	MissingModule
	MissingDefaultConstructor
	MissingCopyConstructor
	MissingJSONConstructor
	MultipleClassAncestors
)

// String returns the string representation of the structural reason
func (r StructuralReason) String() string {
	switch r {
	case WrongKind:
		return "wrong declaration kind"
	case MissingModule:
		return "missing module"
	case MissingDefaultConstructor:
		return "missing default constructor"
	case MissingCopyConstructor:
		return "missing copy constructor"
	case MissingJSONConstructor:
		return "missing json constructor"
	case MultipleClassAncestors:
		return "multiple class ancestors"
	default:
		return "unknown"
	}
}

// StructuralError reports a data object whose shape breaks a structural rule
type StructuralError struct {
	*BaseError
	TypeName string
	Reason   StructuralReason
}

// NewStructuralError creates a structural error for the named type
func NewStructuralError(typeName string, reason StructuralReason, message string) *StructuralError {
	return &StructuralError{
		BaseError: New(StructuralErrorCode, message).
			WithContext("type_name", typeName).
			WithContext("reason", reason.String()),
		TypeName: typeName,
		Reason:   reason,
	}
}

// WithLocation adds location information to the error
func (e *StructuralError) WithLocation(loc SourceLocation) *StructuralError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithSuggestion adds a helpful suggestion
func (e *StructuralError) WithSuggestion(suggestion string) *StructuralError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// NamingConventionError reports a method whose name breaks the property naming rules
type NamingConventionError struct {
	*BaseError
	TypeName string
	Method   string
}

// NewNamingConventionError creates a naming error for the given method
func NewNamingConventionError(typeName, method, message string) *NamingConventionError {
	return &NamingConventionError{
		BaseError: New(NamingConventionErrorCode, fmt.Sprintf("%s.%s: %s", typeName, method, message)).
			WithContext("type_name", typeName).
			WithContext("method_name", method),
		TypeName: typeName,
		Method:   method,
	}
}

// WithLocation adds location information to the error
func (e *NamingConventionError) WithLocation(loc SourceLocation) *NamingConventionError {
	e.BaseError.WithLocation(loc)
	return e
}

// TypeResolutionError reports a type that could not be classified
type TypeResolutionError struct {
	*BaseError
	Type string
}

// NewTypeResolutionError creates a type resolution error for the named type
func NewTypeResolutionError(typeName, message string) *TypeResolutionError {
	return &TypeResolutionError{
		BaseError: New(TypeResolutionErrorCode, message).
			WithContext("type", typeName),
		Type: typeName,
	}
}

// WithLocation adds location information to the error
func (e *TypeResolutionError) WithLocation(loc SourceLocation) *TypeResolutionError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithMember records the declaration and member being resolved when the error occurred
func (e *TypeResolutionError) WithMember(typeName, member string) *TypeResolutionError {
	e.BaseError.WithContext("type_name", typeName)
	if member != "" {
		e.BaseError.WithContext("method_name", member)
		e.Message = fmt.Sprintf("%s.%s: %s", typeName, member, e.Message)
	} else {
		e.Message = fmt.Sprintf("%s: %s", typeName, e.Message)
	}
	return e
}

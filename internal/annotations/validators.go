package annotations

import (
	"fmt"
	"go/token"

	"golang.org/x/mod/module"
)

// ValidateImportPath checks that a parameter value is a well formed Go import path
func ValidateImportPath(v interface{}) error {
	path, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", v)
	}
	if err := module.CheckImportPath(path); err != nil {
		return fmt.Errorf("invalid import path: %w", err)
	}
	return nil
}

// ValidateIdentifier checks that a parameter value is a valid Go identifier
func ValidateIdentifier(v interface{}) error {
	name, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected a string, got %T", v)
	}
	if !token.IsIdentifier(name) {
		return fmt.Errorf("'%s' is not a valid identifier", name)
	}
	return nil
}

// boolFlag returns the spec shared by the boolean data object switches
func boolFlag(description string) ParameterSpec {
	return ParameterSpec{
		Type:         BoolType,
		DefaultValue: false,
		Description:  description,
	}
}

package annotations

// Built-in annotation schemas

// DataObjectAnnotationSchema defines the schema for //dogen::dataobject annotations
var DataObjectAnnotationSchema = AnnotationSchema{
	Type:        DataObjectAnnotation,
	Description: "Marks a struct or interface as a data object",
	Parameters: map[string]ParameterSpec{
		"GenerateConverter": boolFlag("Generate JSON converter functions for this data object"),
		"InheritConverter":  boolFlag("Include inherited properties in the generated converter"),
		"Abstract":          boolFlag("Struct is only embedded and never instantiated, constructors are not required"),
	},
	Examples: []string{
		"//dogen::dataobject",
		"//dogen::dataobject -GenerateConverter",
		"//dogen::dataobject -GenerateConverter -InheritConverter",
		"//dogen::dataobject -GenerateConverter=false",
		"//dogen::dataobject -Abstract",
	},
}

// ModuleAnnotationSchema defines the schema for //dogen::module package annotations
var ModuleAnnotationSchema = AnnotationSchema{
	Type:        ModuleAnnotation,
	Description: "Declares a generation module on a package doc comment",
	Parameters: map[string]ParameterSpec{
		"Name": {
			Type:        StringType,
			Required:    true,
			Description: "Module name",
			Validator:   ValidateIdentifier,
		},
		"GroupPackage": {
			Type:        StringType,
			Description: "Import path generated code is grouped under, defaults to the annotated package",
			Validator:   ValidateImportPath,
		},
	},
	Examples: []string{
		"//dogen::module -Name=billing",
		"//dogen::module -Name=billing -GroupPackage=example.com/billing",
	},
}

// APIAnnotationSchema defines the schema for //dogen::api annotations
var APIAnnotationSchema = AnnotationSchema{
	Type:        APIAnnotation,
	Description: "Marks an interface as an API type usable as a property",
	Parameters:  map[string]ParameterSpec{},
	Examples:    []string{"//dogen::api"},
}

// IgnoreAnnotationSchema defines the schema for //dogen::ignore annotations
var IgnoreAnnotationSchema = AnnotationSchema{
	Type:        IgnoreAnnotation,
	Description: "Excludes a method from property inference",
	Parameters:  map[string]ParameterSpec{},
	Examples:    []string{"//dogen::ignore"},
}

// RegisterBuiltinSchemas registers all built-in annotation schemas
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	schemas := []AnnotationSchema{
		DataObjectAnnotationSchema,
		ModuleAnnotationSchema,
		APIAnnotationSchema,
		IgnoreAnnotationSchema,
	}

	for _, schema := range schemas {
		if err := registry.Register(schema.Type, schema); err != nil {
			return err
		}
	}

	return nil
}

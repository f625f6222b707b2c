package annotations

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/dogen/internal/errors"
)

// annotationAST is the grammar root: //dogen::<type> [-Key[=Value]]*
type annotationAST struct {
	Type   string      `parser:"Comment 'dogen' Separator @Ident"`
	Params []*paramAST `parser:"@@*"`
}

type paramAST struct {
	Key   string  `parser:"Dash @Ident"`
	Value *string `parser:"( Equals @(String | Bare) )?"`
}

// annotationLexer switches into the Value state after '=' so that import
// paths and other punctuated values lex as a single token
var annotationLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `//`},
		{Name: "Separator", Pattern: `::`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Dash", Pattern: `-`},
		{Name: "Equals", Pattern: `=`, Action: lexer.Push("Value")},
		{Name: "Whitespace", Pattern: `[ \t]+`},
	},
	"Value": {
		{Name: "String", Pattern: `"(\\"|[^"])*"`, Action: lexer.Pop()},
		{Name: "Bare", Pattern: `[^\s"]+`, Action: lexer.Pop()},
	},
})

// ParticipleParser parses dogen annotation comments
type ParticipleParser struct {
	parser   *participle.Parser[annotationAST]
	registry AnnotationRegistry
}

// NewParticipleParser creates a new parser validating against the given registry
func NewParticipleParser(registry AnnotationRegistry) *ParticipleParser {
	return &ParticipleParser{
		parser: participle.MustBuild[annotationAST](
			participle.Lexer(annotationLexer),
			participle.Elide("Whitespace"),
			participle.Unquote("String"),
		),
		registry: registry,
	}
}

// IsAnnotation reports whether a comment line is a dogen annotation
func IsAnnotation(comment string) bool {
	return strings.HasPrefix(strings.TrimSpace(comment), Prefix)
}

// ParseAnnotation parses a single annotation comment and validates it against its schema
func (p *ParticipleParser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	raw := strings.TrimSpace(comment)
	ast, err := p.parser.ParseString(location.File, raw)
	if err != nil {
		return nil, p.syntaxError(err, location)
	}

	annotationType, err := ParseAnnotationType(ast.Type)
	if err != nil {
		return nil, errors.NewSyntaxErrorWithToken(err.Error(), ast.Type, 0).
			WithLocation(toErrorLocation(location)).
			WithSuggestion("Use one of: dataobject, module, api, ignore")
	}

	schema, err := p.registry.GetSchema(annotationType)
	if err != nil {
		return nil, errors.NewSchemaError(annotationType.String(), err.Error()).
			WithLocation(toErrorLocation(location))
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]interface{}),
		Location:   location,
		Raw:        raw,
	}

	for _, item := range ast.Params {
		value, err := p.convertParameter(schema, item)
		if err != nil {
			return nil, err.WithLocation(toErrorLocation(location))
		}
		parsed.Parameters[item.Key] = value
	}

	if err := validateRequired(schema, parsed); err != nil {
		return nil, err.WithLocation(toErrorLocation(location))
	}

	return parsed, nil
}

// convertParameter checks a parameter against its spec. A bare -Flag means true
// for boolean parameters.
func (p *ParticipleParser) convertParameter(schema AnnotationSchema, item *paramAST) (interface{}, *errors.SchemaError) {
	spec, exists := schema.Parameters[item.Key]
	if !exists {
		return nil, errors.NewSchemaError(schema.Type.String(),
			fmt.Sprintf("unknown parameter '%s', expected one of: %s", item.Key, strings.Join(parameterNames(schema), ", "))).
			WithParameterName(item.Key)
	}

	var value interface{}
	switch {
	case item.Value != nil:
		v, err := spec.Type.convert(*item.Value)
		if err != nil {
			return nil, errors.NewSchemaError(schema.Type.String(),
				fmt.Sprintf("parameter '%s': %v", item.Key, err)).WithParameterName(item.Key)
		}
		value = v
	case spec.Type == BoolType:
		value = true
	default:
		return nil, errors.NewSchemaError(schema.Type.String(),
			fmt.Sprintf("parameter '%s' requires a value (-%s=...)", item.Key, item.Key)).WithParameterName(item.Key)
	}

	if spec.Validator != nil {
		if err := spec.Validator(value); err != nil {
			return nil, errors.NewSchemaError(schema.Type.String(),
				fmt.Sprintf("parameter '%s' validation failed: %v", item.Key, err)).WithParameterName(item.Key)
		}
	}
	return value, nil
}

func validateRequired(schema AnnotationSchema, parsed *ParsedAnnotation) *errors.SchemaError {
	for _, name := range parameterNames(schema) {
		if schema.Parameters[name].Required && !parsed.HasParameter(name) {
			return errors.NewSchemaError(schema.Type.String(),
				fmt.Sprintf("missing required parameter '%s'", name)).WithParameterName(name)
		}
	}
	return nil
}

func (p *ParticipleParser) syntaxError(err error, location SourceLocation) error {
	loc := toErrorLocation(location)
	if perr, ok := err.(participle.Error); ok {
		pos := perr.Position()
		if pos.Column > 0 && loc.Column > 0 {
			loc.Column += pos.Column - 1
		}
		return errors.NewSyntaxErrorWithToken(perr.Message(), "", pos.Offset).
			WithLocation(loc).
			WithSuggestion("Annotations take the form //dogen::<type> [-Flag] [-Key=Value]")
	}
	return errors.WrapParseError("annotation", err).WithLocation(loc)
}

func parameterNames(schema AnnotationSchema) []string {
	names := make([]string, 0, len(schema.Parameters))
	for name := range schema.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func toErrorLocation(l SourceLocation) errors.SourceLocation {
	return errors.SourceLocation{File: l.File, Line: l.Line, Column: l.Column}
}

package templates

import (
	"strconv"
	"strings"
	"unicode"
)

// ConverterData is the input of the converter-file template
type ConverterData struct {
	FQN         string // qualified name of the data object
	PackageName string // package clause of the generated file
	TypeName    string // simple name of the data object
	ObjectType  string // parameter type of obj, a pointer for structs
	Runtime     string // qualifier of the runtime package
	Imports     string // rendered import block
	Decoders    []PropertyCode
	Encoders    []PropertyCode
}

// PropertyCode is the rendered statement block handling one property
type PropertyCode struct {
	Name string
	Code string
}

// Quote renders s as a Go string literal
func Quote(s string) string {
	return strconv.Quote(s)
}

// ToSnakeCase converts a Go identifier to snake_case. Runs of upper-case
// letters are kept together: "HTTPServer" becomes "http_server".
func ToSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamelCase converts a string to camelCase
func ToCamelCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Indent prefixes every non-empty line of code with depth tabs
func Indent(code string, depth int) string {
	prefix := strings.Repeat("\t", depth)
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

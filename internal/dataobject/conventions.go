package dataobject

import (
	"unicode"

	"github.com/toyz/dogen/internal/mirror"
)

// Conventions names the accessor prefixes recognized during property inference.
// Adder and Setter must be exactly three characters long.
type Conventions struct {
	Name       string
	Adder      string
	Setter     string
	Getter     string
	BoolGetter string
	ToJSON     string
	// BoxPrimitives makes adder readers of primitive elements return a list of
	// pointers. Strings are not primitives and stay unboxed.
	BoxPrimitives bool
}

// JavaBeans is the lower-case get/set/add/is convention
var JavaBeans = Conventions{
	Name:          "javabeans",
	Adder:         "add",
	Setter:        "set",
	Getter:        "get",
	BoolGetter:    "is",
	ToJSON:        "toJson",
	BoxPrimitives: true,
}

// GoExported is the exported Get/Set/Add/Is convention used for Go sources
var GoExported = Conventions{
	Name:       "go",
	Adder:      "Add",
	Setter:     "Set",
	Getter:     "Get",
	BoolGetter: "Is",
	ToJSON:     "ToJSON",
}

// ConventionsByName returns the named convention set
func ConventionsByName(name string) (Conventions, bool) {
	switch name {
	case JavaBeans.Name:
		return JavaBeans, true
	case GoExported.Name, "":
		return GoExported, true
	}
	return Conventions{}, false
}

// readerType returns the type a reader must return for a property written
// through a mutator whose single parameter has type param.
func (c Conventions) readerType(param *mirror.TypeRef, adder bool) *mirror.TypeRef {
	if !adder {
		return param
	}
	elem := param
	if c.BoxPrimitives && isPrimitive(param) {
		elem = mirror.Pointer(param)
	}
	return mirror.Slice(elem)
}

// isPrimitive reports whether ref is a basic type other than string
func isPrimitive(ref *mirror.TypeRef) bool {
	return ref.Kind == mirror.RefBasic && ref.Name != "string"
}

func isBoolean(ref *mirror.TypeRef) bool {
	if ref == nil {
		return false
	}
	if ref.Kind == mirror.RefPointer {
		ref = ref.Elem
	}
	return ref.IsBasic("bool")
}

// normalizePropertyName lower-cases the leading run of upper-case letters.
// When the run is longer than one letter and followed by a lower-case letter,
// the last upper-case letter starts the next word and is kept.
func normalizePropertyName(name string) string {
	runes := []rune(name)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n == 0 {
		return name
	}
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

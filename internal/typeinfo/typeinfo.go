// Package typeinfo classifies raw member types into the categories the
// data object model understands.
package typeinfo

import (
	"sort"

	"github.com/toyz/dogen/internal/mirror"
)

// Kind is the classification category of a type
type Kind int

const (
	Primitive Kind = iota
	BoxedPrimitive
	String
	Enum
	API
	JSONObject
	JSONArray
	List
	DataObject
	Other
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case Primitive:
		return "PRIMITIVE"
	case BoxedPrimitive:
		return "BOXED_PRIMITIVE"
	case String:
		return "STRING"
	case Enum:
		return "ENUM"
	case API:
		return "API"
	case JSONObject:
		return "JSON_OBJECT"
	case JSONArray:
		return "JSON_ARRAY"
	case List:
		return "LIST"
	case DataObject:
		return "DATA_OBJECT"
	default:
		return "OTHER"
	}
}

// MarshalText renders the kind by name in yaml and json output
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// TypeInfo is the classified view of a type
type TypeInfo struct {
	Kind       Kind                `yaml:"kind" json:"kind"`
	Name       string              `yaml:"name" json:"name"`                           // qualified raw name
	SimpleName string              `yaml:"simpleName" json:"simpleName"`               // unqualified name
	Package    string              `yaml:"package,omitempty" json:"package,omitempty"` // import path of named types
	Basic      string              `yaml:"basic,omitempty" json:"basic,omitempty"`     // basic type behind primitives, boxed primitives and enums
	Pointer    bool                `yaml:"pointer,omitempty" json:"pointer,omitempty"`
	Elem       *TypeInfo           `yaml:"elem,omitempty" json:"elem,omitempty"` // element of lists
	Ref        *mirror.TypeRef     `yaml:"-" json:"-"`
	Decl       *mirror.Declaration `yaml:"-" json:"-"`
}

// String returns the qualified name
func (t *TypeInfo) String() string {
	return t.Name
}

// Detached returns a copy without the mirror handles, fit for printing
func (t *TypeInfo) Detached() *TypeInfo {
	if t == nil {
		return nil
	}
	c := *t
	c.Ref = nil
	c.Decl = nil
	c.Elem = t.Elem.Detached()
	return &c
}

// IsNamed reports whether the type refers to a named declaration in some package
func (t *TypeInfo) IsNamed() bool {
	return t.Package != ""
}

// CollectImports adds every named type this type mentions to into, keyed by qualified name
func (t *TypeInfo) CollectImports(into map[string]*TypeInfo) {
	if t == nil {
		return
	}
	if t.IsNamed() {
		if _, ok := into[t.Name]; !ok {
			into[t.Name] = t
		}
	}
	t.Elem.CollectImports(into)
}

// SortedByName returns the values of set ordered by qualified name
func SortedByName(set map[string]*TypeInfo) []*TypeInfo {
	out := make([]*TypeInfo, 0, len(set))
	for _, ti := range set {
		out = append(out, ti)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

package mirror

import (
	"strings"
)

// RefKind identifies the shape of a type reference
type RefKind int

const (
	RefBasic RefKind = iota
	RefPointer
	RefSlice
	RefMap
	RefNamed
	RefTypeParam
	RefInterface
	RefOther
)

// TypeRef is a raw type handle as seen in a member signature.
// Named references carry the resolved Declaration when the declaring
// package was loaded.
type TypeRef struct {
	Kind    RefKind
	Name    string // basic name, simple name of a named type, type parameter name, or other repr
	Package string // import path of a named type
	Decl    *Declaration
	Elem    *TypeRef // pointer, slice and map element
	Key     *TypeRef // map key
	Args    []*TypeRef
}

// Basic returns a reference to a predeclared basic type such as int or string
func Basic(name string) *TypeRef {
	return &TypeRef{Kind: RefBasic, Name: name}
}

// Pointer returns a reference to *elem
func Pointer(elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: RefPointer, Elem: elem}
}

// Slice returns a reference to []elem
func Slice(elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: RefSlice, Elem: elem}
}

// Map returns a reference to map[key]elem
func Map(key, elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: RefMap, Key: key, Elem: elem}
}

// Named returns a reference to a named type that has not been resolved to a declaration
func Named(pkg, name string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: RefNamed, Package: pkg, Name: name, Args: args}
}

// Ref returns a reference to the given declaration
func Ref(decl *Declaration) *TypeRef {
	return &TypeRef{Kind: RefNamed, Package: decl.Package, Name: decl.Name, Decl: decl}
}

// TypeParam returns a reference to a generic type parameter
func TypeParam(name string) *TypeRef {
	return &TypeRef{Kind: RefTypeParam, Name: name}
}

// Any returns a reference to the empty interface
func Any() *TypeRef {
	return &TypeRef{Kind: RefInterface, Name: "any"}
}

// Other returns a reference to a type the model has no structure for (func, chan, struct literal)
func Other(repr string) *TypeRef {
	return &TypeRef{Kind: RefOther, Name: repr}
}

// QualifiedName returns the package qualified name of a named type, or String() otherwise
func (t *TypeRef) QualifiedName() string {
	if t.Kind == RefNamed && t.Package != "" {
		return t.Package + "." + t.Name
	}
	return t.String()
}

// IsBasic reports whether t is the named basic type
func (t *TypeRef) IsBasic(name string) bool {
	return t != nil && t.Kind == RefBasic && t.Name == name
}

// String renders the reference in Go syntax, qualifying named types with their package name
func (t *TypeRef) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case RefPointer:
		return "*" + t.Elem.String()
	case RefSlice:
		return "[]" + t.Elem.String()
	case RefMap:
		return "map[" + t.Key.String() + "]" + t.Elem.String()
	case RefNamed:
		var b strings.Builder
		if t.Package != "" {
			b.WriteString(packageName(t.Package))
			b.WriteString(".")
		}
		b.WriteString(t.Name)
		if len(t.Args) > 0 {
			b.WriteString("[")
			for i, arg := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(arg.String())
			}
			b.WriteString("]")
		}
		return b.String()
	default:
		return t.Name
	}
}

// Equal reports whether two references denote the same type
func (t *TypeRef) Equal(other *TypeRef) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case RefPointer, RefSlice:
		return t.Elem.Equal(other.Elem)
	case RefMap:
		return t.Key.Equal(other.Key) && t.Elem.Equal(other.Elem)
	case RefNamed:
		if t.Package != other.Package || t.Name != other.Name || len(t.Args) != len(other.Args) {
			return false
		}
		for i := range t.Args {
			if !t.Args[i].Equal(other.Args[i]) {
				return false
			}
		}
		return true
	case RefInterface:
		return true
	default:
		return t.Name == other.Name
	}
}

// HasTypeParams reports whether the reference mentions a generic type parameter anywhere
func (t *TypeRef) HasTypeParams() bool {
	if t == nil {
		return false
	}
	if t.Kind == RefTypeParam {
		return true
	}
	if t.Elem.HasTypeParams() || t.Key.HasTypeParams() {
		return true
	}
	for _, arg := range t.Args {
		if arg.HasTypeParams() {
			return true
		}
	}
	return false
}

func packageName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Package mirror is the reflection-like member model the data object
// processor works on. A Declaration holds its own members only; inherited
// members are computed by an explicit ancestor linearization that is cached
// on first use.
package mirror

import (
	"strings"
	"sync"

	"github.com/toyz/dogen/internal/errors"
)

// ElementKind is the kind of a declaration
type ElementKind int

const (
	KindClass ElementKind = iota
	KindInterface
	KindEnum
	KindOther
)

// String returns the string representation of the element kind
func (k ElementKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	default:
		return "other"
	}
}

// Element is a declaration or member that may carry documentation
type Element interface {
	DocComment() string
	Location() errors.SourceLocation
}

// DataObjectAnnotation carries the parameters of a data object annotation
type DataObjectAnnotation struct {
	GenerateConverter bool
	InheritConverter  bool
}

// ModuleInfo identifies the generation boundary a declaration belongs to
type ModuleInfo struct {
	Name         string
	GroupPackage string
	Package      string // package carrying the module annotation
}

// Declaration is a named type as produced by the declaration scanner
type Declaration struct {
	Name       string
	Package    string
	Kind       ElementKind
	Abstract   bool
	TypeParams []string
	DataObject *DataObjectAnnotation // nil when the type is not a data object
	API        bool
	Module     *ModuleInfo
	Superclass *TypeRef
	Interfaces []*TypeRef
	Members    []*Member
	Underlying *TypeRef // underlying basic type of enums
	Doc        string
	Pos        errors.SourceLocation

	ancestorsOnce sync.Once
	ancestors     []*Declaration
	membersOnce   sync.Once
	allMembers    []*Member
}

// QualifiedName returns the import path qualified name of the declaration
func (d *Declaration) QualifiedName() string {
	if d.Package == "" {
		return d.Name
	}
	return d.Package + "." + d.Name
}

// String returns the qualified name
func (d *Declaration) String() string {
	return d.QualifiedName()
}

// DocComment returns the raw doc comment of the declaration
func (d *Declaration) DocComment() string { return d.Doc }

// Location returns where the declaration was found
func (d *Declaration) Location() errors.SourceLocation { return d.Pos }

// IsDataObject reports whether the declaration carries a data object annotation
func (d *Declaration) IsDataObject() bool {
	return d != nil && d.DataObject != nil
}

// Type returns a type reference to the declaration
func (d *Declaration) Type() *TypeRef {
	return Ref(d)
}

// AddMember appends an own member and sets its owner
func (d *Declaration) AddMember(m *Member) *Member {
	m.Owner = d
	d.Members = append(d.Members, m)
	return m
}

// Constructors returns the declaration's own constructors
func (d *Declaration) Constructors() []*Member {
	var out []*Member
	for _, m := range d.Members {
		if m.Kind == MemberConstructor {
			out = append(out, m)
		}
	}
	return out
}

// SuperclassDecl returns the resolved class ancestor, if any
func (d *Declaration) SuperclassDecl() *Declaration {
	if d.Superclass == nil {
		return nil
	}
	return d.Superclass.Decl
}

// Ancestors returns every transitive supertype: the class chain first,
// then interfaces breadth first. Unresolved references are skipped.
func (d *Declaration) Ancestors() []*Declaration {
	d.ancestorsOnce.Do(func() {
		seen := map[*Declaration]bool{d: true}
		queue := []*Declaration{d}
		for c := d.SuperclassDecl(); c != nil && !seen[c]; c = c.SuperclassDecl() {
			seen[c] = true
			d.ancestors = append(d.ancestors, c)
			queue = append(queue, c)
		}
		for i := 0; i < len(queue); i++ {
			for _, ref := range queue[i].Interfaces {
				if ref.Decl == nil || seen[ref.Decl] {
					continue
				}
				seen[ref.Decl] = true
				d.ancestors = append(d.ancestors, ref.Decl)
				queue = append(queue, ref.Decl)
			}
		}
	})
	return d.ancestors
}

// IsSubtypeOf reports whether other is d or one of its ancestors
func (d *Declaration) IsSubtypeOf(other *Declaration) bool {
	if d == other {
		return true
	}
	for _, a := range d.Ancestors() {
		if a == other {
			return true
		}
	}
	return false
}

// AllMembers returns own and inherited members. A member inherited from an
// ancestor is hidden when a more specific declaration already contributed a
// member with the same signature. Constructors are never inherited.
func (d *Declaration) AllMembers() []*Member {
	d.membersOnce.Do(func() {
		seen := make(map[string]bool)
		add := func(m *Member) {
			key := m.signatureKey()
			if m.Kind == MemberMethod {
				if seen[key] {
					return
				}
				seen[key] = true
			}
			d.allMembers = append(d.allMembers, m)
		}
		for _, m := range d.Members {
			add(m)
		}
		for _, a := range d.Ancestors() {
			for _, m := range a.Members {
				if m.Kind == MemberConstructor {
					continue
				}
				add(m)
			}
		}
	})
	return d.allMembers
}

// Methods returns every method in AllMembers with the given name
func (d *Declaration) Methods(name string) []*Member {
	var out []*Member
	for _, m := range d.AllMembers() {
		if m.Kind == MemberMethod && m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// MemberKind distinguishes constructors from methods
type MemberKind int

const (
	MemberMethod MemberKind = iota
	MemberConstructor
)

// Param is a single member parameter
type Param struct {
	Name string
	Type *TypeRef
}

// Member is a method or constructor of a declaration
type Member struct {
	Name     string
	Kind     MemberKind
	Owner    *Declaration
	Params   []Param
	Result   *TypeRef // nil when the member returns nothing
	Public   bool
	Abstract bool
	Static   bool
	Ignored  bool
	Doc      string
	Pos      errors.SourceLocation
}

// String renders the member as Owner.Name(paramTypes)
func (m *Member) String() string {
	var b strings.Builder
	if m.Owner != nil {
		b.WriteString(m.Owner.Name)
		b.WriteString(".")
	}
	b.WriteString(m.Name)
	b.WriteString("(")
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type.String())
	}
	b.WriteString(")")
	return b.String()
}

// DocComment returns the raw doc comment of the member
func (m *Member) DocComment() string { return m.Doc }

// Location returns where the member was found
func (m *Member) Location() errors.SourceLocation { return m.Pos }

// SameSignature reports whether two members have the same name and parameter types
func (m *Member) SameSignature(other *Member) bool {
	if m.Name != other.Name || len(m.Params) != len(other.Params) {
		return false
	}
	for i := range m.Params {
		if !m.Params[i].Type.Equal(other.Params[i].Type) {
			return false
		}
	}
	return true
}

func (m *Member) signatureKey() string {
	var b strings.Builder
	b.WriteString(m.Name)
	for _, p := range m.Params {
		b.WriteString("|")
		b.WriteString(p.Type.QualifiedName())
	}
	return b.String()
}

// Overrides reports whether m overrides other: both are instance methods with
// the same signature and other is declared by a strict supertype of m's owner.
func Overrides(m, other *Member) bool {
	if m == other || m.Kind != MemberMethod || other.Kind != MemberMethod {
		return false
	}
	if m.Static || other.Static || m.Owner == nil || other.Owner == nil {
		return false
	}
	if m.Owner == other.Owner || !m.SameSignature(other) {
		return false
	}
	return m.Owner.IsSubtypeOf(other.Owner)
}

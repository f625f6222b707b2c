package models

import (
	"unicode"

	"github.com/toyz/dogen/internal/doc"
	"github.com/toyz/dogen/internal/typeinfo"
)

// PropertyParams carries everything needed to construct a PropertyInfo
type PropertyParams struct {
	Name              string
	DeclaredHere      bool
	Doc               *doc.Doc
	Type              *typeinfo.TypeInfo
	SetterMethod      string
	GetterMethod      string
	Array             bool
	Adder             bool
	JSONRepresentable bool
}

// PropertyInfo describes one logical property of a data object. It is immutable.
type PropertyInfo struct {
	p PropertyParams
}

// NewPropertyInfo freezes params into a PropertyInfo
func NewPropertyInfo(params PropertyParams) *PropertyInfo {
	return &PropertyInfo{p: params}
}

// Name returns the normalized property name
func (pi *PropertyInfo) Name() string { return pi.p.Name }

// DeclaredHere reports whether the entity itself introduces the property
func (pi *PropertyInfo) DeclaredHere() bool { return pi.p.DeclaredHere }

// Doc returns the property documentation, or nil
func (pi *PropertyInfo) Doc() *doc.Doc { return pi.p.Doc }

// Type returns the element type. For multi-valued properties it is the list element.
func (pi *PropertyInfo) Type() *typeinfo.TypeInfo { return pi.p.Type }

// SetterMethod returns the name of the setter or adder
func (pi *PropertyInfo) SetterMethod() string { return pi.p.SetterMethod }

// GetterMethod returns the name of the reader, or "" for write-only properties
func (pi *PropertyInfo) GetterMethod() string { return pi.p.GetterMethod }

// IsArray reports whether the property is multi-valued
func (pi *PropertyInfo) IsArray() bool { return pi.p.Array }

// IsAdder reports whether values are added one element at a time
func (pi *PropertyInfo) IsAdder() bool { return pi.p.Adder }

// IsSetter reports whether the property is written in bulk through a setter
func (pi *PropertyInfo) IsSetter() bool { return !pi.p.Adder }

// IsJSONRepresentable reports whether a JSON converter can handle the property
func (pi *PropertyInfo) IsJSONRepresentable() bool { return pi.p.JSONRepresentable }

// IsReadable reports whether a reader method was found
func (pi *PropertyInfo) IsReadable() bool { return pi.p.GetterMethod != "" }

// Field returns the exported form of the name used as a JSON-facing identifier in templates
func (pi *PropertyInfo) Field() string {
	if pi.p.Name == "" {
		return ""
	}
	r := []rune(pi.p.Name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// View returns a serializable snapshot of the property
func (pi *PropertyInfo) View() PropertyView {
	return PropertyView{
		Name:              pi.p.Name,
		DeclaredHere:      pi.p.DeclaredHere,
		Doc:               pi.p.Doc,
		Type:              pi.p.Type.Detached(),
		SetterMethod:      pi.p.SetterMethod,
		GetterMethod:      pi.p.GetterMethod,
		Array:             pi.p.Array,
		Adder:             pi.p.Adder,
		JSONRepresentable: pi.p.JSONRepresentable,
	}
}

// PropertyView is the serializable form of a PropertyInfo
type PropertyView struct {
	Name              string             `yaml:"name" json:"name"`
	DeclaredHere      bool               `yaml:"declaredHere" json:"declaredHere"`
	Doc               *doc.Doc           `yaml:"doc,omitempty" json:"doc,omitempty"`
	Type              *typeinfo.TypeInfo `yaml:"type" json:"type"`
	SetterMethod      string             `yaml:"setter" json:"setter"`
	GetterMethod      string             `yaml:"getter,omitempty" json:"getter,omitempty"`
	Array             bool               `yaml:"array" json:"array"`
	Adder             bool               `yaml:"adder" json:"adder"`
	JSONRepresentable bool               `yaml:"jsonRepresentable" json:"jsonRepresentable"`
}

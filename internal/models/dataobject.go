package models

import (
	"github.com/toyz/dogen/internal/doc"
	"github.com/toyz/dogen/internal/typeinfo"
)

// ModuleInfo identifies the generation boundary a data object belongs to
type ModuleInfo struct {
	Name         string `yaml:"name" json:"name"`
	GroupPackage string `yaml:"groupPackage,omitempty" json:"groupPackage,omitempty"`
	Package      string `yaml:"package" json:"package"`
}

// Constructors records the names of the constructors found on a concrete data object
type Constructors struct {
	Default string `yaml:"default,omitempty" json:"default,omitempty"`
	Copy    string `yaml:"copy,omitempty" json:"copy,omitempty"`
	JSON    string `yaml:"json,omitempty" json:"json,omitempty"`
}

// DataObjectModel is the frozen description of one data object
type DataObjectModel struct {
	fqn               string
	simpleName        string
	pkg               string
	doc               *doc.Doc
	class             bool
	concrete          bool
	generateConverter bool
	inheritConverter  bool
	module            ModuleInfo
	constructors      Constructors
	properties        []*PropertyInfo
	propertyIndex     map[string]*PropertyInfo
	superType         *typeinfo.TypeInfo
	abstractSuper     []*typeinfo.TypeInfo
	importedTypes     []*typeinfo.TypeInfo
	toJSONMethod      string
}

// FQN returns the package qualified name of the entity
func (m *DataObjectModel) FQN() string { return m.fqn }

// SimpleName returns the unqualified name of the entity
func (m *DataObjectModel) SimpleName() string { return m.simpleName }

// Package returns the import path of the entity
func (m *DataObjectModel) Package() string { return m.pkg }

// Doc returns the entity documentation, or nil
func (m *DataObjectModel) Doc() *doc.Doc { return m.doc }

// IsClass reports whether the entity is a class rather than an interface
func (m *DataObjectModel) IsClass() bool { return m.class }

// IsConcrete reports whether the entity can be instantiated
func (m *DataObjectModel) IsConcrete() bool { return m.concrete }

// IsAbstract is the negation of IsConcrete
func (m *DataObjectModel) IsAbstract() bool { return !m.concrete }

// GenerateConverter reports whether a JSON converter is requested
func (m *DataObjectModel) GenerateConverter() bool { return m.generateConverter }

// InheritConverter reports whether the converter also handles inherited properties
func (m *DataObjectModel) InheritConverter() bool { return m.inheritConverter }

// Module returns the generation boundary of the entity
func (m *DataObjectModel) Module() ModuleInfo { return m.module }

// Constructors returns the constructor names found on a concrete entity
func (m *DataObjectModel) Constructors() Constructors { return m.constructors }

// ToJSONMethod returns the name of the entity's own JSON serialization method, if it has one
func (m *DataObjectModel) ToJSONMethod() string { return m.toJSONMethod }

// Properties returns the properties ordered by name
func (m *DataObjectModel) Properties() []*PropertyInfo {
	out := make([]*PropertyInfo, len(m.properties))
	copy(out, m.properties)
	return out
}

// Property looks up a property by name
func (m *DataObjectModel) Property(name string) (*PropertyInfo, bool) {
	p, ok := m.propertyIndex[name]
	return p, ok
}

// SuperType returns the data object class ancestor, or nil
func (m *DataObjectModel) SuperType() *typeinfo.TypeInfo { return m.superType }

// AbstractSuperTypes returns the data object interface ancestors
func (m *DataObjectModel) AbstractSuperTypes() []*typeinfo.TypeInfo {
	out := make([]*typeinfo.TypeInfo, len(m.abstractSuper))
	copy(out, m.abstractSuper)
	return out
}

// SuperTypes returns the class ancestor followed by the interface ancestors
func (m *DataObjectModel) SuperTypes() []*typeinfo.TypeInfo {
	var out []*typeinfo.TypeInfo
	if m.superType != nil {
		out = append(out, m.superType)
	}
	return append(out, m.abstractSuper...)
}

// ImportedTypes returns the named types from other packages the entity refers to, ordered by name
func (m *DataObjectModel) ImportedTypes() []*typeinfo.TypeInfo {
	out := make([]*typeinfo.TypeInfo, len(m.importedTypes))
	copy(out, m.importedTypes)
	return out
}

// View returns a serializable snapshot of the model
func (m *DataObjectModel) View() ModelView {
	v := ModelView{
		FQN:               m.fqn,
		SimpleName:        m.simpleName,
		Package:           m.pkg,
		Doc:               m.doc,
		Class:             m.class,
		Concrete:          m.concrete,
		GenerateConverter: m.generateConverter,
		InheritConverter:  m.inheritConverter,
		Module:            m.module,
		Constructors:      m.constructors,
	}
	for _, p := range m.properties {
		v.Properties = append(v.Properties, p.View())
	}
	if m.superType != nil {
		v.SuperType = m.superType.Name
	}
	for _, t := range m.abstractSuper {
		v.AbstractSuperTypes = append(v.AbstractSuperTypes, t.Name)
	}
	for _, t := range m.importedTypes {
		v.ImportedTypes = append(v.ImportedTypes, t.Name)
	}
	return v
}

// ModelView is the serializable form of a DataObjectModel
type ModelView struct {
	FQN                string         `yaml:"fqn" json:"fqn"`
	SimpleName         string         `yaml:"simpleName" json:"simpleName"`
	Package            string         `yaml:"package" json:"package"`
	Doc                *doc.Doc       `yaml:"doc,omitempty" json:"doc,omitempty"`
	Class              bool           `yaml:"class" json:"class"`
	Concrete           bool           `yaml:"concrete" json:"concrete"`
	GenerateConverter  bool           `yaml:"generateConverter" json:"generateConverter"`
	InheritConverter   bool           `yaml:"inheritConverter" json:"inheritConverter"`
	Module             ModuleInfo     `yaml:"module" json:"module"`
	Constructors       Constructors   `yaml:"constructors,omitempty" json:"constructors,omitempty"`
	Properties         []PropertyView `yaml:"properties" json:"properties"`
	SuperType          string         `yaml:"superType,omitempty" json:"superType,omitempty"`
	AbstractSuperTypes []string       `yaml:"abstractSuperTypes,omitempty" json:"abstractSuperTypes,omitempty"`
	ImportedTypes      []string       `yaml:"importedTypes,omitempty" json:"importedTypes,omitempty"`
}

package models

import (
	"sort"

	"github.com/toyz/dogen/internal/doc"
	"github.com/toyz/dogen/internal/typeinfo"
)

// ModelBuilder accumulates the parts of a data object model before it is frozen
type ModelBuilder struct {
	model      DataObjectModel
	properties map[string]*PropertyInfo
}

// NewModelBuilder creates a builder for the named entity
func NewModelBuilder(pkg, simpleName string) *ModelBuilder {
	fqn := simpleName
	if pkg != "" {
		fqn = pkg + "." + simpleName
	}
	return &ModelBuilder{
		model: DataObjectModel{
			fqn:        fqn,
			simpleName: simpleName,
			pkg:        pkg,
		},
		properties: make(map[string]*PropertyInfo),
	}
}

// WithDoc sets the entity documentation
func (b *ModelBuilder) WithDoc(d *doc.Doc) *ModelBuilder {
	b.model.doc = d
	return b
}

// WithKind records whether the entity is a class and whether it is concrete
func (b *ModelBuilder) WithKind(class, concrete bool) *ModelBuilder {
	b.model.class = class
	b.model.concrete = concrete
	return b
}

// WithConverter sets the converter generation flags
func (b *ModelBuilder) WithConverter(generate, inherit bool) *ModelBuilder {
	b.model.generateConverter = generate
	b.model.inheritConverter = inherit
	return b
}

// WithModule sets the generation boundary
func (b *ModelBuilder) WithModule(module ModuleInfo) *ModelBuilder {
	b.model.module = module
	return b
}

// WithConstructors records the constructors found on a concrete entity
func (b *ModelBuilder) WithConstructors(c Constructors) *ModelBuilder {
	b.model.constructors = c
	return b
}

// WithToJSONMethod records the entity's own serialization method
func (b *ModelBuilder) WithToJSONMethod(name string) *ModelBuilder {
	b.model.toJSONMethod = name
	return b
}

// WithSuperType sets the class ancestor
func (b *ModelBuilder) WithSuperType(t *typeinfo.TypeInfo) *ModelBuilder {
	b.model.superType = t
	return b
}

// AddAbstractSuperType appends an interface ancestor
func (b *ModelBuilder) AddAbstractSuperType(t *typeinfo.TypeInfo) *ModelBuilder {
	b.model.abstractSuper = append(b.model.abstractSuper, t)
	return b
}

// PutProperty registers a property under its name. A previous entry with
// the same name is replaced and returned.
func (b *ModelBuilder) PutProperty(p *PropertyInfo) (replaced *PropertyInfo) {
	replaced = b.properties[p.Name()]
	b.properties[p.Name()] = p
	return replaced
}

// PropertyCount returns the number of registered properties
func (b *ModelBuilder) PropertyCount() int {
	return len(b.properties)
}

// Build sorts the properties by name, attaches the imported types and freezes the model.
// Each call returns an independent snapshot.
func (b *ModelBuilder) Build(importedTypes []*typeinfo.TypeInfo) *DataObjectModel {
	m := b.model
	m.properties = make([]*PropertyInfo, 0, len(b.properties))
	m.propertyIndex = make(map[string]*PropertyInfo, len(b.properties))
	for name, p := range b.properties {
		m.properties = append(m.properties, p)
		m.propertyIndex[name] = p
	}
	sort.Slice(m.properties, func(i, j int) bool {
		return m.properties[i].Name() < m.properties[j].Name()
	})
	m.abstractSuper = append([]*typeinfo.TypeInfo(nil), b.model.abstractSuper...)
	m.importedTypes = append([]*typeinfo.TypeInfo(nil), importedTypes...)
	return &m
}

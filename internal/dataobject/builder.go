package dataobject

import (
	"github.com/toyz/dogen/internal/mirror"
	"github.com/toyz/dogen/internal/models"
	"github.com/toyz/dogen/internal/typeinfo"
)

// assemble computes the imported types and freezes the model. Imported types
// are every named type mentioned by a property or supertype, minus the ones
// living in the entity's own package.
func (p *Processor) assemble(decl *mirror.Declaration, b *models.ModelBuilder) (*models.DataObjectModel, error) {
	draft := b.Build(nil)

	set := make(map[string]*typeinfo.TypeInfo)
	for _, prop := range draft.Properties() {
		prop.Type().CollectImports(set)
	}
	for _, st := range draft.SuperTypes() {
		st.CollectImports(set)
	}
	for name, ti := range set {
		if ti.Package == decl.Package {
			delete(set, name)
		}
	}

	return b.Build(typeinfo.SortedByName(set)), nil
}

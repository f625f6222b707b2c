package dataobject

import (
	"fmt"
	"strings"

	"github.com/toyz/dogen/internal/errors"
	"github.com/toyz/dogen/internal/mirror"
	"github.com/toyz/dogen/internal/models"
	"github.com/toyz/dogen/internal/typeinfo"
)

func validateKind(decl *mirror.Declaration) error {
	if decl.Kind == mirror.KindClass || decl.Kind == mirror.KindInterface {
		return nil
	}
	return errors.NewStructuralError(decl.QualifiedName(), errors.WrongKind,
		fmt.Sprintf("data object %s must be an interface or a class, found %s", decl.QualifiedName(), decl.Kind)).
		WithLocation(decl.Pos).
		WithSuggestion("annotate a struct or an interface type")
}

func validateTypeParams(decl *mirror.Declaration) error {
	if len(decl.TypeParams) == 0 {
		return nil
	}
	e := errors.NewTypeResolutionError(decl.QualifiedName(),
		fmt.Sprintf("data object %s must be a plain type with no type parameters [%s]",
			decl.QualifiedName(), strings.Join(decl.TypeParams, ", "))).
		WithLocation(decl.Pos)
	e.WithContext("type_name", decl.Name)
	return e
}

func validateModule(decl *mirror.Declaration) (models.ModuleInfo, error) {
	if decl.Module == nil || decl.Module.Name == "" {
		return models.ModuleInfo{}, errors.NewStructuralError(decl.QualifiedName(), errors.MissingModule,
			fmt.Sprintf("data object %s must have an ancestor package annotated with //dogen::module", decl.QualifiedName())).
			WithLocation(decl.Pos).
			WithSuggestion("add '//dogen::module -Name=<name>' to the package doc comment, or declare the module in .dogen.yaml")
	}
	return models.ModuleInfo{
		Name:         decl.Module.Name,
		GroupPackage: decl.Module.GroupPackage,
		Package:      decl.Module.Package,
	}, nil
}

// validateConstructors requires the default, copy and JSON constructors on a
// concrete class and reports the first missing form.
func (p *Processor) validateConstructors(decl *mirror.Declaration) (models.Constructors, error) {
	var found models.Constructors
	for _, ctor := range decl.Constructors() {
		if !ctor.Public {
			continue
		}
		switch len(ctor.Params) {
		case 0:
			if found.Default == "" {
				found.Default = ctor.Name
			}
		case 1:
			ti, err := p.classifier.Classify(ctor.Params[0].Type)
			if err != nil {
				continue
			}
			switch {
			case ti.Name == decl.QualifiedName():
				if found.Copy == "" {
					found.Copy = ctor.Name
				}
			case ti.Kind == typeinfo.JSONObject:
				if found.JSON == "" {
					found.JSON = ctor.Name
				}
			}
		}
	}

	name := decl.QualifiedName()
	switch {
	case found.Default == "":
		return found, errors.NewStructuralError(name, errors.MissingDefaultConstructor,
			fmt.Sprintf("data object %s class does not have a default constructor", name)).
			WithLocation(decl.Pos).
			WithSuggestion(p.constructorHint(decl, ""))
	case found.Copy == "":
		return found, errors.NewStructuralError(name, errors.MissingCopyConstructor,
			fmt.Sprintf("data object %s class does not have a constructor %s(%s)", name, decl.Name, decl.Name)).
			WithLocation(decl.Pos).
			WithSuggestion(p.constructorHint(decl, "other *"+decl.Name))
	case found.JSON == "":
		return found, errors.NewStructuralError(name, errors.MissingJSONConstructor,
			fmt.Sprintf("data object %s class does not have a constructor %s(JsonObject)", name, decl.Name)).
			WithLocation(decl.Pos).
			WithSuggestion(p.constructorHint(decl, "json dogen.JsonObject"))
	}
	return found, nil
}

func (p *Processor) constructorHint(decl *mirror.Declaration, params string) string {
	if p.conventions.Name == GoExported.Name {
		suffix := ""
		switch {
		case strings.HasPrefix(params, "other"):
			suffix = "Copy"
		case strings.HasPrefix(params, "json"):
			suffix = "FromJSON"
		}
		return fmt.Sprintf("add 'func New%s%s(%s) *%s'", decl.Name, suffix, params, decl.Name)
	}
	return fmt.Sprintf("add a public constructor %s(%s)", decl.Name, params)
}

// collectSuperTypes records data object interface ancestors as abstract
// supertypes and a data object class ancestor as the supertype.
func (p *Processor) collectSuperTypes(decl *mirror.Declaration, b *models.ModelBuilder) error {
	for _, ref := range decl.Interfaces {
		if ref.Decl == nil || !ref.Decl.IsDataObject() {
			continue
		}
		ti, err := p.classifier.Classify(ref)
		if err != nil {
			return resolutionError(decl, decl.Name, "", decl.Pos, err)
		}
		b.AddAbstractSuperType(ti)
	}
	if sup := decl.SuperclassDecl(); sup != nil && sup.IsDataObject() {
		ti, err := p.classifier.Classify(decl.Superclass)
		if err != nil {
			return resolutionError(decl, decl.Name, "", decl.Pos, err)
		}
		b.WithSuperType(ti)
	}
	return nil
}

package dataobject

import (
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/toyz/dogen/internal/doc"
	"github.com/toyz/dogen/internal/errors"
	"github.com/toyz/dogen/internal/mirror"
	"github.com/toyz/dogen/internal/models"
	"github.com/toyz/dogen/internal/typeinfo"
)

// inferProperties scans every own and inherited method of decl and registers
// a property for each representable mutator. Names collide last-wins.
func (p *Processor) inferProperties(decl *mirror.Declaration, b *models.ModelBuilder, log *slog.Logger) error {
	for _, m := range decl.AllMembers() {
		if m.Kind != mirror.MemberMethod || m.Ignored {
			continue
		}
		prop, err := p.inferProperty(decl, m, log)
		if err != nil {
			return err
		}
		if prop == nil {
			continue
		}
		if replaced := b.PutProperty(prop); replaced != nil {
			log.Debug("property replaced",
				"property", prop.Name(),
				"previous", replaced.SetterMethod(),
				"method", prop.SetterMethod())
		}
	}
	return nil
}

// inferProperty returns nil without error when m is not a property mutator
// or its type cannot be represented in JSON.
func (p *Processor) inferProperty(decl *mirror.Declaration, m *mirror.Member, log *slog.Logger) (*models.PropertyInfo, error) {
	c := p.conventions
	if len(m.Name) <= 3 {
		return nil, nil
	}
	prefix, suffix := m.Name[:3], m.Name[3:]

	var adder bool
	switch prefix {
	case c.Adder:
		adder = true
	case c.Setter:
	default:
		return nil, nil
	}
	if len(m.Params) != 1 {
		return nil, nil
	}

	name := normalizePropertyName(suffix)
	paramType := m.Params[0].Type
	propType, err := p.classifier.Classify(paramType)
	if err != nil {
		return nil, resolutionError(decl, m.Owner.Name, m.Name, m.Pos, err)
	}

	var array bool
	if adder {
		if strings.HasSuffix(name, "s") {
			e := errors.NewNamingConventionError(m.Owner.Name, m.Name, "adder name must not terminate with 's'").
				WithLocation(m.Pos)
			e.WithContext("data_object", decl.QualifiedName())
			e.WithSuggestion("rename " + m.Name + " to use the singular form, the property name gets an 's' appended")
			return nil, e
		}
		name += "s"
		array = true
	} else if propType.Kind == typeinfo.List {
		propType = propType.Elem
		array = true
	}

	if !p.representable(propType) {
		log.Debug("property skipped",
			"method", m.String(),
			"kind", propType.Kind.String(),
			"reason", "type cannot be represented in json")
		return nil, nil
	}

	var reader string
	if isBoolean(paramType) && !array {
		reader = c.BoolGetter + suffix
	} else {
		reader = c.Getter + suffix
		if adder {
			reader += "s"
		}
	}
	if !hasReader(decl, reader, c.readerType(paramType, adder)) {
		reader = ""
	}

	return models.NewPropertyInfo(models.PropertyParams{
		Name:              name,
		DeclaredHere:      p.declaredHere(decl, m),
		Doc:               p.propertyDoc(decl, m),
		Type:              propType,
		SetterMethod:      m.Name,
		GetterMethod:      reader,
		Array:             array,
		Adder:             adder,
		JSONRepresentable: true,
	}), nil
}

func (p *Processor) representable(t *typeinfo.TypeInfo) bool {
	switch t.Kind {
	case typeinfo.Primitive, typeinfo.BoxedPrimitive, typeinfo.String, typeinfo.API,
		typeinfo.JSONObject, typeinfo.JSONArray, typeinfo.Enum:
		return true
	case typeinfo.DataObject:
		if t.Decl == nil || !t.Decl.IsDataObject() {
			return true
		}
		return p.findToJSON(t.Decl) != nil
	default:
		return false
	}
}

// findToJSON returns the zero-argument method of decl named after the
// convention's ToJSON that returns a JSON object.
func (p *Processor) findToJSON(decl *mirror.Declaration) *mirror.Member {
	for _, m := range decl.Methods(p.conventions.ToJSON) {
		if len(m.Params) != 0 || m.Result == nil {
			continue
		}
		ti, err := p.classifier.Classify(m.Result)
		if err == nil && ti.Kind == typeinfo.JSONObject {
			return m
		}
	}
	return nil
}

func hasReader(decl *mirror.Declaration, name string, want *mirror.TypeRef) bool {
	for _, m := range decl.Methods(name) {
		if m.Result.Equal(want) {
			return true
		}
	}
	return false
}

// declaredHere reports whether the entity introduces the property. A mutator
// on the entity that overrides an implemented method of a data object
// ancestor is inherited. A mutator inherited from an ancestor is declared here
// only when that ancestor is not a data object.
func (p *Processor) declaredHere(decl *mirror.Declaration, m *mirror.Member) bool {
	if m.Owner != decl {
		return !m.Owner.IsDataObject()
	}
	for _, o := range overridden(decl, m, true) {
		if !o.Abstract {
			return false
		}
	}
	return true
}

// propertyDoc returns the mutator documentation, falling back to the first
// documented method it overrides in any ancestor.
func (p *Processor) propertyDoc(decl *mirror.Declaration, m *mirror.Member) *doc.Doc {
	if d := p.docs.Resolve(m); d != nil {
		return d
	}
	for _, o := range overridden(decl, m, false) {
		if d := p.docs.Resolve(o); d != nil {
			return d
		}
	}
	return nil
}

// overridden lists the ancestor methods m overrides, in ancestor order.
func overridden(decl *mirror.Declaration, m *mirror.Member, dataObjectsOnly bool) []*mirror.Member {
	var out []*mirror.Member
	for _, a := range decl.Ancestors() {
		if dataObjectsOnly && !a.IsDataObject() {
			continue
		}
		for _, o := range a.AllMembers() {
			if mirror.Overrides(m, o) {
				out = append(out, o)
			}
		}
	}
	return out
}

// resolutionError reports a classification failure against the member being
// inspected. Classifier errors are shared through its memo so a new error is built.
func resolutionError(decl *mirror.Declaration, owner, member string, pos errors.SourceLocation, err error) error {
	typeName, msg := "", err.Error()
	var tre *errors.TypeResolutionError
	if stderrors.As(err, &tre) {
		typeName, msg = tre.Type, tre.Text()
	}
	e := errors.NewTypeResolutionError(typeName, msg).
		WithMember(owner, member).
		WithLocation(pos)
	e.WithContext("data_object", decl.QualifiedName())
	e.Cause = err
	return e
}

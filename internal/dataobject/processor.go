// Package dataobject builds the normalized model of an annotated data object:
// its properties, supertypes, documentation and imported types.
package dataobject

import (
	"io"
	"log/slog"

	"github.com/toyz/dogen/internal/doc"
	"github.com/toyz/dogen/internal/errors"
	"github.com/toyz/dogen/internal/mirror"
	"github.com/toyz/dogen/internal/models"
	"github.com/toyz/dogen/internal/typeinfo"
)

// Option configures a Processor
type Option func(*Processor)

// WithConventions selects the accessor naming convention
func WithConventions(c Conventions) Option {
	return func(p *Processor) {
		p.conventions = c
	}
}

// WithClassifier sets the type classifier
func WithClassifier(c typeinfo.Classifier) Option {
	return func(p *Processor) {
		p.classifier = c
	}
}

// WithDocResolver sets the documentation resolver
func WithDocResolver(r doc.Resolver) Option {
	return func(p *Processor) {
		p.docs = r
	}
}

// WithLogger sets the structured logger used for debug output
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = l
	}
}

// Processor turns data object declarations into models. A Processor holds no
// per-entity state and may be reused for any number of declarations.
type Processor struct {
	conventions Conventions
	classifier  typeinfo.Classifier
	docs        doc.Resolver
	logger      *slog.Logger
}

// NewProcessor creates a processor. Without options it uses the JavaBeans
// convention, a fresh classifier and doc comments.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		conventions: JavaBeans,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.classifier == nil {
		p.classifier = typeinfo.NewFactory()
	}
	if p.docs == nil {
		p.docs = doc.NewCommentResolver("dogen::")
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p
}

// Conventions returns the naming convention in use
func (p *Processor) Conventions() Conventions {
	return p.conventions
}

// Process validates decl and infers its model. On error no model is returned.
func (p *Processor) Process(decl *mirror.Declaration) (*models.DataObjectModel, error) {
	if decl == nil {
		return nil, errors.New(errors.UnknownErrorCode, "no declaration to process")
	}
	log := p.logger.With("type", decl.QualifiedName())
	log.Debug("processing data object")

	if err := validateKind(decl); err != nil {
		return nil, err
	}
	if err := validateTypeParams(decl); err != nil {
		return nil, err
	}
	module, err := validateModule(decl)
	if err != nil {
		return nil, err
	}

	b := models.NewModelBuilder(decl.Package, decl.Name).
		WithDoc(p.docs.Resolve(decl)).
		WithModule(module)

	class := decl.Kind == mirror.KindClass
	concrete := class && !decl.Abstract
	b.WithKind(class, concrete)
	if decl.DataObject != nil {
		b.WithConverter(decl.DataObject.GenerateConverter, decl.DataObject.InheritConverter)
	}

	if err := p.collectSuperTypes(decl, b); err != nil {
		return nil, err
	}

	if err := p.inferProperties(decl, b, log); err != nil {
		return nil, err
	}

	if concrete {
		ctors, err := p.validateConstructors(decl)
		if err != nil {
			return nil, err
		}
		b.WithConstructors(ctors)
	}

	if toJSON := p.findToJSON(decl); toJSON != nil {
		b.WithToJSONMethod(toJSON.Name)
	}

	model, err := p.assemble(decl, b)
	if err != nil {
		return nil, err
	}
	log.Debug("data object processed", "properties", len(model.Properties()))
	return model, nil
}

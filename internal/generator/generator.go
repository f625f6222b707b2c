package generator

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/toyz/dogen/internal/errors"
	"github.com/toyz/dogen/internal/models"
	"github.com/toyz/dogen/internal/templates"
	"github.com/toyz/dogen/internal/utils"
)

const (
	// RuntimePackage is imported by every generated converter
	RuntimePackage = "github.com/toyz/dogen/pkg/dogen"

	// DefaultOutputSuffix is appended to the snake_case type name to form the converter file name
	DefaultOutputSuffix = "_json.go"

	// GeneratedHeader is the first line of every generated file
	GeneratedHeader = "// Code generated by dogen. DO NOT EDIT."
)

// Target locates the package a converter is written into
type Target struct {
	Dir         string
	PackageName string
}

// GeneratedFile is a rendered converter
type GeneratedFile struct {
	TypeName string
	FilePath string
	Content  []byte
}

// Generator implements the CodeGenerator interface
type Generator struct {
	registry          *models.Registry
	templates         *templates.TemplateRegistry
	suffix            string
	boxedAdderReaders bool
	workers           int
	logger            *slog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithOutputSuffix sets the converter file name suffix
func WithOutputSuffix(suffix string) Option {
	return func(g *Generator) {
		if suffix != "" {
			g.suffix = suffix
		}
	}
}

// WithBoxedAdderReaders declares that readers of adder properties return
// slices of pointers for basic element types
func WithBoxedAdderReaders(boxed bool) Option {
	return func(g *Generator) { g.boxedAdderReaders = boxed }
}

// WithWorkers bounds the number of converters rendered or written at once
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator creates a generator resolving nested data objects through registry
func NewGenerator(registry *models.Registry, opts ...Option) *Generator {
	g := &Generator{
		registry:  registry,
		templates: templates.NewTemplateRegistry(),
		suffix:    DefaultOutputSuffix,
		workers:   4,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FileName returns the converter file name for a data object type
func (g *Generator) FileName(typeName string) string {
	return templates.ToSnakeCase(typeName) + g.suffix
}

// Generate renders the converter of model. Models that do not request a
// converter yield a nil file.
func (g *Generator) Generate(model *models.DataObjectModel, target Target) (*GeneratedFile, error) {
	if model == nil {
		return nil, errors.NewGenerationError("model cannot be nil").WithStage("generate")
	}
	if !model.GenerateConverter() {
		return nil, nil
	}

	filePath := filepath.Join(target.Dir, g.FileName(model.SimpleName()))
	data := newConverter(g, model).data(target.PackageName)

	source, err := g.templates.Execute("converter-file", data)
	if err != nil {
		return nil, errors.WrapTemplateError("converter-file", "execute", err)
	}

	content, err := utils.FormatGoCode(filePath, []byte(source))
	if err != nil {
		return nil, errors.WrapGenerateError("converter", filePath, err).WithStage("format")
	}

	g.logger.Debug("converter rendered",
		"type", model.FQN(),
		"file", filePath,
		"decoders", len(data.Decoders),
		"encoders", len(data.Encoders))

	return &GeneratedFile{
		TypeName: model.FQN(),
		FilePath: filePath,
		Content:  content,
	}, nil
}

// GenerateAll renders the converters of every model in targets. Failures are
// aggregated; the files that did render are returned ordered by path.
func (g *Generator) GenerateAll(ctx context.Context, targets map[*models.DataObjectModel]Target) ([]*GeneratedFile, error) {
	todo := make([]*models.DataObjectModel, 0, len(targets))
	for m := range targets {
		todo = append(todo, m)
	}
	sort.Slice(todo, func(i, j int) bool { return todo[i].FQN() < todo[j].FQN() })

	files := make([]*GeneratedFile, len(todo))
	errs := make([]error, len(todo))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.workers)
	for i, m := range todo {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files[i], errs[i] = g.Generate(m, targets[m])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var result *multierror.Error
	var out []*GeneratedFile
	for i := range todo {
		if errs[i] != nil {
			result = multierror.Append(result, errs[i])
			continue
		}
		if files[i] != nil {
			out = append(out, files[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FilePath < out[j].FilePath })
	return out, result.ErrorOrNil()
}

// Write stores the rendered files. The first failure cancels the remaining writes.
func (g *Generator) Write(ctx context.Context, files []*GeneratedFile) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.workers)
	for _, f := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := utils.WriteFile(f.FilePath, f.Content); err != nil {
				return errors.WrapFileSystemError("write", f.FilePath, err)
			}
			g.logger.Debug("converter written", "file", f.FilePath)
			return nil
		})
	}
	return group.Wait()
}

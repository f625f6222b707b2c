package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/toyz/dogen/internal/dataobject"
	"github.com/toyz/dogen/internal/generator"
	"github.com/toyz/dogen/internal/models"
	"github.com/toyz/dogen/internal/parser"
	"github.com/toyz/dogen/internal/typeinfo"
	"github.com/toyz/dogen/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	moduleResolver *ModuleResolver
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	logger         *slog.Logger
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator. Nil arguments select quiet defaults.
func NewGenerator(diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter, logger *slog.Logger) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewQuietDiagnostics()
	}
	if reporter == nil {
		reporter = NewDiagnosticReporter(false)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		moduleResolver: NewModuleResolver(),
		reporter:       reporter,
		diagnostics:    diagnostics,
		logger:         logger,
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// BuildResult holds the models built from one scan
type BuildResult struct {
	Registry *models.Registry
	Scan     *parser.ScanResult
	Config   *FileConfig
}

// Models returns the built models ordered by qualified name
func (b *BuildResult) Models() []*models.DataObjectModel {
	return b.Registry.All()
}

// Build scans the configured patterns and turns every data object found into
// a model. Declarations are processed ancestors first so that a model can
// consult the registry for the ones it depends on. A failing declaration is
// skipped; all failures are returned together with the models that were built.
func (g *Generator) Build(ctx context.Context, cfg Config) (*BuildResult, error) {
	fc, err := LoadConfig(cfg)
	if err != nil {
		return nil, models.NewGeneratorError(err, models.ErrorTypeConfiguration)
	}
	if fc.Path() != "" {
		g.diagnostics.Verbose("Using config %s", fc.Path())
	}

	modules, err := fc.ModuleInfos(g.moduleResolver, cfg.Dir)
	if err != nil {
		return nil, models.NewGeneratorError(err, models.ErrorTypeConfiguration)
	}

	g.diagnostics.PhaseHeader("Scanning")
	scanner := parser.NewScanner(
		parser.WithDir(cfg.Dir),
		parser.WithModules(modules...),
		parser.WithBuildTags(fc.BuildTags...),
		parser.WithLogger(g.logger),
	)
	result, scanErr := scanner.Scan(ctx, cfg.Patterns...)
	if result == nil {
		if scanErr == nil {
			scanErr = fmt.Errorf("no packages loaded")
		}
		return nil, models.NewGeneratorError(scanErr, models.ErrorTypeAnnotationSyntax)
	}

	var errs *multierror.Error
	if scanErr != nil {
		errs = multierror.Append(errs, scanErr)
	}
	g.summary.PackagesScanned = len(result.Packages)
	g.diagnostics.PhaseItem(fmt.Sprintf("Found %d data objects in %d packages", len(result.Declarations), len(result.Packages)))

	classifier := typeinfo.NewFactory(
		typeinfo.WithJSONObjectTypes(fc.JSONObjectTypes...),
		typeinfo.WithJSONArrayTypes(fc.JSONArrayTypes...),
	)
	processor := dataobject.NewProcessor(
		dataobject.WithConventions(fc.ConventionSet()),
		dataobject.WithClassifier(classifier),
		dataobject.WithLogger(g.logger),
	)

	g.diagnostics.PhaseHeader("Building models")
	registry := models.NewRegistry()
	for _, decl := range result.Declarations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		model, err := processor.Process(decl)
		if err != nil {
			g.summary.Failures++
			g.diagnostics.Verbose("Skipping %s: %v", decl.QualifiedName(), err)
			errs = multierror.Append(errs, err)
			continue
		}
		if err := registry.Add(model); err != nil {
			g.summary.Failures++
			errs = multierror.Append(errs, err)
			continue
		}
		g.summary.ModelsBuilt++
		g.summary.PropertiesFound += len(model.Properties())
		g.diagnostics.Verbose("Built %s with %d properties", model.FQN(), len(model.Properties()))
	}
	g.diagnostics.PhaseItem(fmt.Sprintf("Built %d models", registry.Len()))

	return &BuildResult{Registry: registry, Scan: result, Config: fc}, errs.ErrorOrNil()
}

// Run executes the complete generation process: build the models, render a
// converter for every model that asks for one and write them next to their
// source unless cfg.DryRun is set. Converters of the models that were built
// are written even when other declarations failed.
func (g *Generator) Run(ctx context.Context, cfg Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{DryRun: cfg.DryRun}

	g.diagnostics.Header("Generating converters")
	g.diagnostics.Debug("Patterns: %v", cfg.Patterns)
	if name, err := g.moduleResolver.ResolveModuleName(cfg.Dir); err == nil {
		g.diagnostics.Debug("Module: %s", name)
	}

	build, buildErr := g.Build(ctx, cfg)
	if build == nil {
		return buildErr
	}

	var errs *multierror.Error
	if buildErr != nil {
		errs = multierror.Append(errs, buildErr)
	}

	targets := g.targets(build)
	gen := generator.NewGenerator(build.Registry,
		generator.WithOutputSuffix(build.Config.OutputSuffix),
		generator.WithBoxedAdderReaders(build.Config.ConventionSet().BoxPrimitives),
		generator.WithLogger(g.logger),
	)

	g.diagnostics.PhaseHeader("Generating")
	files, err := gen.GenerateAll(ctx, targets)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	if !cfg.DryRun {
		for _, f := range files {
			g.diagnostics.PhaseProgress(fmt.Sprintf("Writing %s", f.FilePath))
		}
		if err := gen.Write(ctx, files); err != nil {
			return multierror.Append(errs, err)
		}
	}
	for _, f := range files {
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, f.FilePath)
	}

	g.diagnostics.Verbose("Finished in %s", time.Since(startTime).Round(time.Millisecond))
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}
	g.diagnostics.GenerationComplete()
	return nil
}

// targets maps each model requesting a converter to the package it is
// written into. Models of packages outside the scanned roots are skipped.
func (g *Generator) targets(build *BuildResult) map[*models.DataObjectModel]generator.Target {
	targets := make(map[*models.DataObjectModel]generator.Target)
	for _, m := range build.Registry.All() {
		if !m.GenerateConverter() {
			continue
		}
		pkg, ok := build.Scan.Package(m.Package())
		if !ok {
			g.diagnostics.Warn("Skipping converter of %s: package %s was not scanned", m.FQN(), m.Package())
			continue
		}
		targets[m] = generator.Target{Dir: pkg.Dir, PackageName: pkg.Name}
	}
	return targets
}

// ReportSuccess prints the summary of the last run
func (g *Generator) ReportSuccess() {
	if g.diagnostics.Level() < utils.DiagnosticInfo {
		return
	}
	g.reporter.ReportSuccess(g.summary)
}

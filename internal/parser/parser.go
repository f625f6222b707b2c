package parser

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/tools/go/packages"

	"github.com/toyz/dogen/internal/annotations"
	"github.com/toyz/dogen/internal/errors"
	"github.com/toyz/dogen/internal/mirror"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Scanner implements DeclarationScanner on top of go/packages
type Scanner struct {
	annotations *annotations.ParticipleParser
	modules     []*mirror.ModuleInfo
	dir         string
	tags        []string
	logger      *slog.Logger
}

// Option configures a Scanner
type Option func(*Scanner)

// WithDir sets the directory patterns are resolved against
func WithDir(dir string) Option {
	return func(s *Scanner) { s.dir = dir }
}

// WithModules declares modules for packages that carry no module annotation.
// Each module covers its Package and every package below it.
func WithModules(modules ...*mirror.ModuleInfo) Option {
	return func(s *Scanner) { s.modules = append(s.modules, modules...) }
}

// WithBuildTags sets the build tags used when loading packages
func WithBuildTags(tags ...string) Option {
	return func(s *Scanner) { s.tags = tags }
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) { s.logger = logger }
}

// NewScanner creates a scanner validating annotations against the builtin schemas
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		annotations: annotations.NewParticipleParser(annotations.DefaultRegistry()),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan loads the packages matching patterns and converts every annotated type
// into a declaration. Annotation and structural problems are aggregated into
// the returned error while the remaining declarations are still returned.
// A package that fails to load yields a nil result.
func (s *Scanner) Scan(ctx context.Context, patterns ...string) (*ScanResult, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     s.dir,
		Fset:    fset,
	}
	if len(s.tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(s.tags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.WrapParseError("packages "+strings.Join(patterns, " "), err)
	}

	var loadErrs *multierror.Error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			loadErrs = multierror.Append(loadErrs, errors.WrapParseError("package "+pkg.PkgPath, e))
		}
	}
	if err := loadErrs.ErrorOrNil(); err != nil {
		return nil, err
	}

	sc := newScan(s, fset, pkgs)
	return sc.run()
}

// typeAnnotations holds what the doc comment of a type spec declares
type typeAnnotations struct {
	doc        string
	dataObject *annotations.ParsedAnnotation
	api        bool
}

// methodInfo holds what the doc comment of a method declares
type methodInfo struct {
	doc     string
	ignored bool
}

// scan is the state of a single Scan call
type scan struct {
	*Scanner
	fset      *token.FileSet
	roots     map[string]*packages.Package
	typeDocs  map[*types.TypeName]*typeAnnotations
	methods   map[*types.Func]*methodInfo
	decls     map[*types.TypeName]*mirror.Declaration
	named     map[*mirror.Declaration]*types.Named
	failed    map[*mirror.Declaration]bool
	annotated []*mirror.ModuleInfo
	errs      *multierror.Error
}

func newScan(s *Scanner, fset *token.FileSet, pkgs []*packages.Package) *scan {
	sc := &scan{
		Scanner:  s,
		fset:     fset,
		roots:    make(map[string]*packages.Package, len(pkgs)),
		typeDocs: make(map[*types.TypeName]*typeAnnotations),
		methods:  make(map[*types.Func]*methodInfo),
		decls:    make(map[*types.TypeName]*mirror.Declaration),
		named:    make(map[*mirror.Declaration]*types.Named),
		failed:   make(map[*mirror.Declaration]bool),
	}
	for _, pkg := range pkgs {
		sc.roots[pkg.PkgPath] = pkg
	}
	return sc
}

func (sc *scan) run() (*ScanResult, error) {
	paths := make([]string, 0, len(sc.roots))
	for path := range sc.roots {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		sc.index(sc.roots[path])
	}

	result := &ScanResult{}
	for _, path := range paths {
		pkg := sc.roots[path]
		result.Packages = append(result.Packages, &Package{
			Path:   pkg.PkgPath,
			Name:   pkg.Name,
			Dir:    packageDir(pkg),
			Module: sc.resolveModule(pkg.PkgPath),
		})
	}

	var found []*mirror.Declaration
	for _, obj := range sc.annotatedTypes() {
		d := sc.declaration(obj)
		if d.IsDataObject() {
			found = append(found, d)
		}
	}
	sc.linkImplementedInterfaces(found)

	for _, d := range sortAncestorsFirst(found) {
		if sc.failed[d] {
			continue
		}
		sc.logger.Debug("declaration found", "type", d.QualifiedName(), "kind", d.Kind.String())
		result.Declarations = append(result.Declarations, d)
	}
	return result, sc.errs.ErrorOrNil()
}

// index records the annotations and doc comments of every type, method and
// package clause in pkg.
func (sc *scan) index(pkg *packages.Package) {
	sc.logger.Debug("package loaded", "package", pkg.PkgPath, "files", len(pkg.Syntax))
	for _, file := range pkg.Syntax {
		sc.indexPackageDoc(pkg, file)
		for _, decl := range file.Decls {
			switch node := decl.(type) {
			case *ast.GenDecl:
				if node.Tok != token.TYPE {
					continue
				}
				for _, spec := range node.Specs {
					ts := spec.(*ast.TypeSpec)
					cg := ts.Doc
					if cg == nil && len(node.Specs) == 1 {
						cg = node.Doc
					}
					sc.indexType(pkg, ts, cg)
				}
			case *ast.FuncDecl:
				if node.Recv == nil {
					continue
				}
				if fn, ok := pkg.TypesInfo.Defs[node.Name].(*types.Func); ok {
					sc.indexMethod(fn, node.Doc, "method "+node.Name.Name)
				}
			}
		}
	}
}

func (sc *scan) indexPackageDoc(pkg *packages.Package, file *ast.File) {
	for _, parsed := range sc.parseAnnotations(file.Doc) {
		if parsed.Type != annotations.ModuleAnnotation {
			sc.misplaced(parsed, "package "+pkg.PkgPath)
			continue
		}
		if existing := sc.moduleDeclaredIn(pkg.PkgPath); existing != nil {
			sc.errs = multierror.Append(sc.errs, errors.NewSchemaError("module",
				fmt.Sprintf("package %s declares module %s more than once", pkg.PkgPath, existing.Name)).
				WithLocation(toLocation(parsed.Location)))
			continue
		}
		sc.annotated = append(sc.annotated, &mirror.ModuleInfo{
			Name:         parsed.GetString(NameParam),
			GroupPackage: parsed.GetString(GroupPackageParam, pkg.PkgPath),
			Package:      pkg.PkgPath,
		})
	}
}

func (sc *scan) indexType(pkg *packages.Package, ts *ast.TypeSpec, cg *ast.CommentGroup) {
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return
	}

	if it, ok := ts.Type.(*ast.InterfaceType); ok {
		for _, field := range it.Methods.List {
			for _, name := range field.Names {
				if fn, ok := pkg.TypesInfo.Defs[name].(*types.Func); ok {
					sc.indexMethod(fn, field.Doc, "method "+name.Name)
				}
			}
		}
	}

	ann := &typeAnnotations{doc: commentText(cg)}
	for _, parsed := range sc.parseAnnotations(cg) {
		switch parsed.Type {
		case annotations.DataObjectAnnotation:
			ann.dataObject = parsed
		case annotations.APIAnnotation:
			ann.api = true
		default:
			sc.misplaced(parsed, "type "+obj.Name())
		}
	}
	if ann.dataObject != nil || ann.api || ann.doc != "" {
		sc.typeDocs[obj] = ann
	}
}

func (sc *scan) indexMethod(fn *types.Func, cg *ast.CommentGroup, target string) {
	info := &methodInfo{doc: commentText(cg)}
	for _, parsed := range sc.parseAnnotations(cg) {
		if parsed.Type != annotations.IgnoreAnnotation {
			sc.misplaced(parsed, target)
			continue
		}
		info.ignored = true
	}
	sc.methods[fn] = info
}

// parseAnnotations parses the annotation lines of a comment group; syntax
// errors are recorded and the offending line is dropped.
func (sc *scan) parseAnnotations(cg *ast.CommentGroup) []*annotations.ParsedAnnotation {
	if cg == nil {
		return nil
	}
	var out []*annotations.ParsedAnnotation
	for _, c := range cg.List {
		if !annotations.IsAnnotation(c.Text) {
			continue
		}
		pos := sc.fset.Position(c.Slash)
		parsed, err := sc.annotations.ParseAnnotation(c.Text, annotations.SourceLocation{
			File:   pos.Filename,
			Line:   pos.Line,
			Column: pos.Column,
		})
		if err != nil {
			sc.errs = multierror.Append(sc.errs, err)
			continue
		}
		out = append(out, parsed)
	}
	return out
}

func (sc *scan) misplaced(parsed *annotations.ParsedAnnotation, target string) {
	sc.errs = multierror.Append(sc.errs, errors.NewSchemaError(parsed.Type.String(),
		fmt.Sprintf("annotation is not allowed on %s", target)).
		WithLocation(toLocation(parsed.Location)))
}

// annotatedTypes returns the types carrying a dataobject or api annotation
// ordered by package and name
func (sc *scan) annotatedTypes() []*types.TypeName {
	var out []*types.TypeName
	for obj, ann := range sc.typeDocs {
		if ann.dataObject != nil || ann.api {
			out = append(out, obj)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if pi, pj := out[i].Pkg().Path(), out[j].Pkg().Path(); pi != pj {
			return pi < pj
		}
		return out[i].Name() < out[j].Name()
	})
	return out
}

// commentText returns the raw comment lines of a group, annotation lines included
func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	lines := make([]string, 0, len(cg.List))
	for _, c := range cg.List {
		lines = append(lines, c.Text)
	}
	return strings.Join(lines, "\n")
}

func packageDir(pkg *packages.Package) string {
	files := pkg.GoFiles
	if len(files) == 0 {
		files = pkg.CompiledGoFiles
	}
	if len(files) == 0 {
		return ""
	}
	return filepath.Dir(files[0])
}

func (sc *scan) position(pos token.Pos) errors.SourceLocation {
	if !pos.IsValid() {
		return errors.SourceLocation{}
	}
	p := sc.fset.Position(pos)
	return errors.SourceLocation{File: p.Filename, Line: p.Line, Column: p.Column}
}

func toLocation(l annotations.SourceLocation) errors.SourceLocation {
	return errors.SourceLocation{File: l.File, Line: l.Line, Column: l.Column}
}

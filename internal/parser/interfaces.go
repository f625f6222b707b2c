package parser

import (
	"context"

	"github.com/toyz/dogen/internal/mirror"
)

// DeclarationScanner loads Go packages and produces the annotated declarations they contain
type DeclarationScanner interface {
	Scan(ctx context.Context, patterns ...string) (*ScanResult, error)
}

// ScanResult is the outcome of a scan
type ScanResult struct {
	// Declarations holds the annotated data objects, ancestors before descendants
	Declarations []*mirror.Declaration
	// Packages holds the loaded root packages sorted by import path
	Packages []*Package
}

// Package describes a loaded root package
type Package struct {
	Path   string
	Name   string
	Dir    string
	Module *mirror.ModuleInfo
}

// Package returns the loaded root package with the given import path
func (r *ScanResult) Package(path string) (*Package, bool) {
	for _, p := range r.Packages {
		if p.Path == path {
			return p, true
		}
	}
	return nil, false
}

var _ DeclarationScanner = (*Scanner)(nil)

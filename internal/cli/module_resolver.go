package cli

import (
	"fmt"
	"path/filepath"

	"github.com/toyz/dogen/internal/utils"
)

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	gomod *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{gomod: utils.NewGoModParser()}
}

// ResolveModuleName returns the path of the Go module containing dir
func (r *ModuleResolver) ResolveModuleName(dir string) (string, error) {
	goMod, err := r.gomod.FindGoModFile(dirOrCurrent(dir))
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w", err)
	}
	return r.gomod.ParseModuleName(goMod)
}

// ResolvePackagePath builds the import path of the package directory pkgDir,
// taken relative to dir when it is not absolute
func (r *ModuleResolver) ResolvePackagePath(dir, pkgDir string) (string, error) {
	base := dirOrCurrent(dir)
	goMod, err := r.gomod.FindGoModFile(base)
	if err != nil {
		return "", fmt.Errorf("failed to resolve package %s: %w", pkgDir, err)
	}
	if !filepath.IsAbs(pkgDir) {
		pkgDir = filepath.Join(base, pkgDir)
	}
	return r.gomod.PackagePath(goMod, pkgDir)
}

func dirOrCurrent(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

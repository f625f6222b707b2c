package parser

import (
	"strings"

	"github.com/toyz/dogen/internal/mirror"
)

// resolveModule returns the module covering pkgPath: the nearest annotated
// package at or above it, else the nearest configured module.
func (sc *scan) resolveModule(pkgPath string) *mirror.ModuleInfo {
	if m := nearestModule(sc.annotated, pkgPath); m != nil {
		return m
	}
	return nearestModule(sc.modules, pkgPath)
}

func (sc *scan) moduleDeclaredIn(pkgPath string) *mirror.ModuleInfo {
	for _, m := range sc.annotated {
		if m.Package == pkgPath {
			return m
		}
	}
	return nil
}

// nearestModule picks the module with the longest package path that is
// pkgPath itself or one of its path prefixes.
func nearestModule(modules []*mirror.ModuleInfo, pkgPath string) *mirror.ModuleInfo {
	var best *mirror.ModuleInfo
	for _, m := range modules {
		if !covers(m.Package, pkgPath) {
			continue
		}
		if best == nil || len(m.Package) > len(best.Package) {
			best = m
		}
	}
	return best
}

func covers(modulePkg, pkgPath string) bool {
	return modulePkg == pkgPath || strings.HasPrefix(pkgPath, modulePkg+"/")
}

package templates

import (
	"fmt"
	"go/token"
	"path"
	"sort"
	"strconv"
	"strings"
)

// ImportManager hands out package qualifiers for a generated file and renders
// its import block. The file's own package is never imported.
type ImportManager struct {
	self    string
	byPath  map[string]string // path -> name used in the file
	byName  map[string]string // name -> path
	aliased map[string]bool   // paths whose name differs from the last path element
}

// NewImportManager creates an import manager for a file living in package self
func NewImportManager(self string) *ImportManager {
	return &ImportManager{
		self:    self,
		byPath:  make(map[string]string),
		byName:  make(map[string]string),
		aliased: make(map[string]bool),
	}
}

// AddImport registers pkgPath and returns the name the file refers to it by.
// Colliding names get a numeric suffix.
func (im *ImportManager) AddImport(pkgPath string) string {
	if pkgPath == "" || pkgPath == im.self {
		return ""
	}
	if name, ok := im.byPath[pkgPath]; ok {
		return name
	}

	base := PackageName(pkgPath)
	name := base
	for i := 2; ; i++ {
		if _, taken := im.byName[name]; !taken {
			break
		}
		name = base + strconv.Itoa(i)
	}

	im.byPath[pkgPath] = name
	im.byName[name] = pkgPath
	if name != path.Base(pkgPath) {
		im.aliased[pkgPath] = true
	}
	return name
}

// Qualify returns the expression naming ident of package pkgPath from inside the file
func (im *ImportManager) Qualify(pkgPath, ident string) string {
	name := im.AddImport(pkgPath)
	if name == "" {
		return ident
	}
	return name + "." + ident
}

// GenerateImports generates the import section
func (im *ImportManager) GenerateImports() string {
	if len(im.byPath) == 0 {
		return ""
	}

	paths := make([]string, 0, len(im.byPath))
	for p := range im.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	imports := make([]string, 0, len(paths))
	for _, p := range paths {
		if im.aliased[p] {
			imports = append(imports, fmt.Sprintf("%s %q", im.byPath[p], p))
		} else {
			imports = append(imports, strconv.Quote(p))
		}
	}

	if len(imports) == 1 {
		return fmt.Sprintf("import %s\n", imports[0])
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, imp := range imports {
		result.WriteString(fmt.Sprintf("\t%s\n", imp))
	}
	result.WriteString(")\n")
	return result.String()
}

// PackageName guesses the package name of an import path: the last element,
// skipping a trailing major version or gopkg.in version, with characters that cannot appear in
// an identifier dropped.
func PackageName(pkgPath string) string {
	elems := strings.Split(pkgPath, "/")
	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(name) {
		name = elems[len(elems)-2]
	}
	if i := strings.LastIndex(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "go-")

	var b strings.Builder
	for _, r := range name {
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9' && b.Len() > 0) {
			b.WriteRune(r)
		}
	}
	name = b.String()
	if name == "" || !token.IsIdentifier(name) {
		return "pkg"
	}
	return name
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// GoModParser provides utilities for parsing go.mod files
type GoModParser struct {
	modules *Cache[string, string]
}

// NewGoModParser creates a new go.mod parser caching parsed module paths
func NewGoModParser() *GoModParser {
	return &GoModParser{
		modules: NewCache[string, string](),
	}
}

// ParseModuleName extracts the module name from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return "", fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	return p.modules.GetOrCompute(cleanPath, func() (string, error) {
		content, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read go.mod file: %w", err)
		}

		modFile, err := modfile.ParseLax(cleanPath, content, nil)
		if err != nil {
			return "", fmt.Errorf("failed to parse go.mod file: %w", err)
		}
		if modFile.Module == nil {
			return "", fmt.Errorf("no module declaration found in go.mod")
		}
		return modFile.Module.Mod.Path, nil
	})
}

// FindGoModFile searches for go.mod file starting from the given directory and walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if info, err := os.Stat(goModPath); err == nil && !info.IsDir() {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found")
}

// PackagePath returns the import path of the package in dir, which must lie
// inside the module rooted at the directory of goModPath.
func (p *GoModParser) PackagePath(goModPath, dir string) (string, error) {
	moduleName, err := p.ParseModuleName(goModPath)
	if err != nil {
		return "", err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve package directory: %w", err)
	}
	root, err := filepath.Abs(filepath.Dir(goModPath))
	if err != nil {
		return "", fmt.Errorf("failed to resolve module root: %w", err)
	}

	rel, err := filepath.Rel(root, absDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("directory %s is outside module %s", dir, moduleName)
	}
	if rel == "." {
		return moduleName, nil
	}
	return moduleName + "/" + filepath.ToSlash(rel), nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toyz/dogen/internal/dataobject"
	"github.com/toyz/dogen/internal/errors"
	"github.com/toyz/dogen/internal/mirror"
)

// DefaultConfigFile is looked up in the working directory when no config file is given
const DefaultConfigFile = ".dogen.yaml"

// Config holds the configuration for a CLI run
type Config struct {
	// Patterns are the package patterns to scan, for example ./...
	Patterns []string

	// Dir is the directory patterns and relative paths are resolved against
	Dir string

	// ConfigFile is the explicit config file path. When empty the
	// DefaultConfigFile in Dir is used if present.
	ConfigFile string

	// DryRun renders converters without writing them
	DryRun bool

	// Verbose enables detailed logging and error reporting
	Verbose bool
}

// FileConfig is the content of a .dogen.yaml file
type FileConfig struct {
	Conventions     string         `yaml:"conventions"`
	JSONObjectTypes []string       `yaml:"jsonObjectTypes"`
	JSONArrayTypes  []string       `yaml:"jsonArrayTypes"`
	Modules         []ModuleConfig `yaml:"modules"`
	OutputSuffix    string         `yaml:"outputSuffix"`
	BuildTags       []string       `yaml:"buildTags"`

	// path is the file the config was read from, empty for defaults
	path string
}

// ModuleConfig declares a module for packages without a module annotation
type ModuleConfig struct {
	Package      string `yaml:"package"`
	Name         string `yaml:"name"`
	GroupPackage string `yaml:"groupPackage"`
}

// LoadConfig reads the config file for cfg. A missing default file yields the
// default configuration; a missing explicit file is an error.
func LoadConfig(cfg Config) (*FileConfig, error) {
	path := cfg.ConfigFile
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if !filepath.IsAbs(path) && cfg.Dir != "" {
		path = filepath.Join(cfg.Dir, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &FileConfig{}, nil
		}
		return nil, errors.WrapConfigurationError(path, "read", err)
	}

	fc := &FileConfig{path: path}
	if err := yaml.Unmarshal(content, fc); err != nil {
		return nil, errors.WrapConfigurationError(path, "parse", err)
	}
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	return fc, nil
}

// Path returns the file the config was loaded from
func (fc *FileConfig) Path() string {
	return fc.path
}

func (fc *FileConfig) source() string {
	if fc.path == "" {
		return DefaultConfigFile
	}
	return fc.path
}

// Validate checks the conventions name and module declarations
func (fc *FileConfig) Validate() error {
	if _, ok := dataobject.ConventionsByName(fc.Conventions); !ok {
		return errors.ConfigurationError(fc.source(), fmt.Sprintf("unknown conventions %q", fc.Conventions)).
			WithSuggestion("use 'go' or 'javabeans'")
	}
	seen := make(map[string]bool, len(fc.Modules))
	for i, m := range fc.Modules {
		if m.Name == "" || m.Package == "" {
			return errors.ConfigurationError(fc.source(), fmt.Sprintf("module %d needs both a name and a package", i+1))
		}
		if seen[m.Package] {
			return errors.ConfigurationError(fc.source(), fmt.Sprintf("package %s declares more than one module", m.Package))
		}
		seen[m.Package] = true
	}
	if fc.OutputSuffix != "" && !strings.HasSuffix(fc.OutputSuffix, ".go") {
		return errors.ConfigurationError(fc.source(), fmt.Sprintf("output suffix %q must end in .go", fc.OutputSuffix))
	}
	return nil
}

// ConventionSet returns the accessor naming convention
func (fc *FileConfig) ConventionSet() dataobject.Conventions {
	c, _ := dataobject.ConventionsByName(fc.Conventions)
	return c
}

// ModuleInfos resolves the configured modules. Packages written as relative
// directories are turned into import paths of the module rooted at dir.
func (fc *FileConfig) ModuleInfos(resolver *ModuleResolver, dir string) ([]*mirror.ModuleInfo, error) {
	out := make([]*mirror.ModuleInfo, 0, len(fc.Modules))
	for _, m := range fc.Modules {
		pkg := m.Package
		if strings.HasPrefix(pkg, ".") {
			resolved, err := resolver.ResolvePackagePath(dir, pkg)
			if err != nil {
				return nil, errors.WrapConfigurationError(fc.source(), "resolve module package", err)
			}
			pkg = resolved
		}
		out = append(out, &mirror.ModuleInfo{
			Name:         m.Name,
			GroupPackage: m.GroupPackage,
			Package:      pkg,
		})
	}
	return out, nil
}

package cli

import (
	"fmt"

	"github.com/toyz/dogen/internal/generator"
	"github.com/toyz/dogen/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	suffix      string
	diagnostics *utils.DiagnosticSystem
}

// NewCleaner creates a cleaner removing converter files named with suffix.
// An empty suffix selects the default one.
func NewCleaner(suffix string, diagnostics *utils.DiagnosticSystem) *Cleaner {
	if suffix == "" {
		suffix = generator.DefaultOutputSuffix
	}
	if diagnostics == nil {
		diagnostics = utils.NewQuietDiagnostics()
	}
	return &Cleaner{suffix: suffix, diagnostics: diagnostics}
}

// CleanGeneratedFiles removes the generated converters below the given
// directories. Only files starting with the generated header are touched;
// a trailing /... cleans subdirectories as well.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	if len(directories) == 0 {
		directories = []string{"."}
	}

	removed, err := utils.CleanDirectories(directories, utils.GeneratedFileFilter(c.suffix, generator.GeneratedHeader))
	for _, file := range removed {
		c.diagnostics.PhaseProgress(fmt.Sprintf("Removing %s", file))
	}
	return removed, err
}

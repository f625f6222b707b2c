package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/k0kubun/pp/v3"
	"gopkg.in/yaml.v3"

	"github.com/toyz/dogen/internal/models"
)

// Describe output formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatPP   = "pp"
)

// DescribeFormats lists the formats accepted by Describe
var DescribeFormats = []string{FormatYAML, FormatJSON, FormatPP}

// Describe writes the serializable views of ms to w in the given format
func Describe(w io.Writer, ms []*models.DataObjectModel, format string) error {
	views := make([]models.ModelView, 0, len(ms))
	for _, m := range ms {
		views = append(views, m.View())
	}

	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return fmt.Errorf("failed to encode models as yaml: %w", err)
		}
		return enc.Close()

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(views); err != nil {
			return fmt.Errorf("failed to encode models as json: %w", err)
		}
		return nil

	case FormatPP:
		p := pp.New()
		p.SetExportedOnly(true)
		p.SetColoringEnabled(false)
		_, err := p.Fprintln(w, views)
		return err
	}
	return fmt.Errorf("unknown format %q, expected one of %v", format, DescribeFormats)
}

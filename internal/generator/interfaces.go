package generator

import (
	"context"

	"github.com/toyz/dogen/internal/models"
)

// CodeGenerator defines the interface for rendering JSON converters of data object models
type CodeGenerator interface {
	Generate(model *models.DataObjectModel, target Target) (*GeneratedFile, error)
	GenerateAll(ctx context.Context, targets map[*models.DataObjectModel]Target) ([]*GeneratedFile, error)
	Write(ctx context.Context, files []*GeneratedFile) error
}

var _ CodeGenerator = (*Generator)(nil)

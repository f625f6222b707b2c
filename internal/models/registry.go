package models

import (
	"github.com/toyz/dogen/internal/utils"
)

// Registry holds the finalized models of a run, keyed by fully qualified name.
// Models are registered once and never replaced.
type Registry struct {
	models *utils.BaseRegistry[string, *DataObjectModel]
}

// NewRegistry creates an empty model registry
func NewRegistry() *Registry {
	r := utils.NewBaseRegistry[string, *DataObjectModel]("data object", "data object", "model")
	r.SetValidator(utils.ChainValidators(
		utils.NotEmptyKeyValidator[*DataObjectModel]("data object name"),
		utils.NotNilValueValidator[string, DataObjectModel]("model"),
		utils.NoDuplicateValidator[string, *DataObjectModel]("data object"),
	))
	return &Registry{models: r}
}

// Add registers a finalized model
func (r *Registry) Add(m *DataObjectModel) error {
	var key string
	if m != nil {
		key = m.FQN()
	}
	return r.models.Register(key, m)
}

// Lookup returns the model registered for fqn
func (r *Registry) Lookup(fqn string) (*DataObjectModel, bool) {
	return r.models.Get(fqn)
}

// Len returns the number of registered models
func (r *Registry) Len() int {
	return r.models.Size()
}

// All returns every model ordered by fully qualified name
func (r *Registry) All() []*DataObjectModel {
	return r.models.Values(func(a, b *DataObjectModel) bool { return a.FQN() < b.FQN() })
}

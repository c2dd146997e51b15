package valueobject

import (
	"strings"

	"github.com/jhoicas/suscripciones-api/internal/domain"
)

// Feature característica incluida en un plan. ID es 0 hasta que se persiste.
type Feature struct {
	id          int64
	name        string
	description string
}

// NewFeature construye una característica. Devuelve domain.ErrEmptyFeatureName si el nombre está vacío.
func NewFeature(name, description string) (Feature, error) {
	return RestoreFeature(0, name, description)
}

// RestoreFeature rehidrata una característica desde almacenamiento.
func RestoreFeature(id int64, name, description string) (Feature, error) {
	if strings.TrimSpace(name) == "" {
		return Feature{}, domain.ErrEmptyFeatureName
	}
	return Feature{id: id, name: name, description: description}, nil
}

func (f Feature) ID() int64           { return f.id }
func (f Feature) Name() string        { return f.name }
func (f Feature) Description() string { return f.description }

// Equals compara nombre y descripción; si ambas tienen ID, también debe coincidir.
func (f Feature) Equals(other Feature) bool {
	if f.name != other.name || f.description != other.description {
		return false
	}
	if f.id != 0 && other.id != 0 {
		return f.id == other.id
	}
	return true
}

func (f Feature) String() string { return f.name }

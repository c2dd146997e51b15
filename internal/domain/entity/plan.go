package entity

import (
	"strings"

	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
)

// Plan ítem del catálogo de precios. Inmutable después de guardarse: una actualización
// reconstruye un Plan nuevo bajo el mismo ID en lugar de mutar campos.
type Plan struct {
	id           int64
	name         string
	monthlyPrice valueobject.Money
	userLimit    int
	features     []valueobject.Feature
}

// NewPlan construye un plan sin persistir (ID 0).
func NewPlan(name string, monthlyPrice valueobject.Money, userLimit int, features []valueobject.Feature) (*Plan, error) {
	return RestorePlan(0, name, monthlyPrice, userLimit, features)
}

// RestorePlan rehidrata un plan desde almacenamiento (o lo reconstruye bajo un ID existente).
func RestorePlan(id int64, name string, monthlyPrice valueobject.Money, userLimit int, features []valueobject.Feature) (*Plan, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrEmptyName
	}
	if userLimit <= 0 {
		return nil, domain.ErrInvalidUserLimit
	}
	return &Plan{
		id:           id,
		name:         name,
		monthlyPrice: monthlyPrice,
		userLimit:    userLimit,
		features:     append([]valueobject.Feature(nil), features...),
	}, nil
}

func (p *Plan) ID() int64                       { return p.id }
func (p *Plan) Name() string                    { return p.name }
func (p *Plan) MonthlyPrice() valueobject.Money { return p.monthlyPrice }
func (p *Plan) UserLimit() int                  { return p.userLimit }

// Features devuelve una copia de la lista ordenada.
func (p *Plan) Features() []valueobject.Feature {
	return append([]valueobject.Feature(nil), p.features...)
}

// SetID lo usa el repositorio al insertar.
func (p *Plan) SetID(id int64) { p.id = id }

// AddFeature agrega la característica al final de la lista.
func (p *Plan) AddFeature(f valueobject.Feature) {
	p.features = append(p.features, f)
}

// RemoveFeature elimina todas las características iguales por valor. Devuelve cuántas quitó.
func (p *Plan) RemoveFeature(f valueobject.Feature) int {
	kept := p.features[:0]
	removed := 0
	for _, existing := range p.features {
		if existing.Equals(f) {
			removed++
			continue
		}
		kept = append(kept, existing)
	}
	p.features = kept
	return removed
}

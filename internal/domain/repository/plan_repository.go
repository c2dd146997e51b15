package repository

import (
	"context"

	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
)

// PlanRepository define el puerto de persistencia para Plan (DIP).
// FindByID devuelve (nil, nil) si no existe. Save es upsert: ID 0 inserta y asigna ID.
type PlanRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Plan, error)
	FindAll(ctx context.Context) ([]*entity.Plan, error)
	Save(ctx context.Context, plan *entity.Plan) error
	Delete(ctx context.Context, id int64) error
	// MaxActiveSeats devuelve el padrón más grande entre las empresas con suscripción activa al plan (0 si no hay).
	MaxActiveSeats(ctx context.Context, planID int64) (int, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
)

// CompanyRepository define el puerto de persistencia para el agregado Company.
// La implementación vive en infrastructure.
//
// Los Find* cargan el agregado completo (historial de suscripciones con sus planes y padrón de usuarios)
// y devuelven (nil, nil) si no existe. Save persiste la empresa y todo su historial de forma atómica;
// si la versión no coincide con la almacenada devuelve domain.ErrConflict.
type CompanyRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Company, error)
	FindByEmail(ctx context.Context, email valueobject.Email) (*entity.Company, error)
	FindAll(ctx context.Context) ([]*entity.Company, error)
	Save(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id int64) error
}

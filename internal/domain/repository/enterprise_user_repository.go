package repository

import (
	"context"

	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
)

// EnterpriseUserRepository define el puerto de persistencia para EnterpriseUser.
type EnterpriseUserRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.EnterpriseUser, error)
	FindByEmail(ctx context.Context, email valueobject.Email) (*entity.EnterpriseUser, error)
	FindByCompany(ctx context.Context, companyID int64) ([]*entity.EnterpriseUser, error)
	FindAll(ctx context.Context) ([]*entity.EnterpriseUser, error)
	Save(ctx context.Context, user *entity.EnterpriseUser) error
	Delete(ctx context.Context, id int64) error
}

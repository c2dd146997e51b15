package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/suscripciones-api/internal/domain/repository"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
	"github.com/jhoicas/suscripciones-api/internal/infrastructure/record"
)

var _ repository.EnterpriseUserRepository = (*EnterpriseUserRepo)(nil)

// EnterpriseUserRepo implementación del puerto EnterpriseUserRepository sobre PostgreSQL.
type EnterpriseUserRepo struct {
	q Querier
}

// NewEnterpriseUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewEnterpriseUserRepository(q Querier) *EnterpriseUserRepo {
	return &EnterpriseUserRepo{q: q}
}

const userColumns = `id, company_id, name, email, password_hash, last_login_at`

// FindByID obtiene un usuario por ID.
func (r *EnterpriseUserRepo) FindByID(ctx context.Context, id int64) (*entity.EnterpriseUser, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByEmail obtiene un usuario por email normalizado (para login).
func (r *EnterpriseUserRepo) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.EnterpriseUser, error) {
	return r.findOne(ctx, `WHERE email = $1`, email.String())
}

// FindByCompany lista el padrón de una empresa.
func (r *EnterpriseUserRepo) FindByCompany(ctx context.Context, companyID int64) ([]*entity.EnterpriseUser, error) {
	rows, err := queryUsers(ctx, r.q, `WHERE company_id = $1 ORDER BY id`, companyID)
	if err != nil {
		return nil, err
	}
	return toUsers(rows)
}

// FindAll lista todos los usuarios.
func (r *EnterpriseUserRepo) FindAll(ctx context.Context) ([]*entity.EnterpriseUser, error) {
	rows, err := queryUsers(ctx, r.q, `ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return toUsers(rows)
}

// Save inserta (ID 0) o actualiza el usuario.
func (r *EnterpriseUserRepo) Save(ctx context.Context, user *entity.EnterpriseUser) error {
	u := record.FromEnterpriseUser(user)
	if u.ID == 0 {
		err := r.q.QueryRow(ctx, `
			INSERT INTO enterprise_users (company_id, name, email, password_hash, last_login_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			u.CompanyID, u.Name, u.Email, u.PasswordHash, u.LastLoginAt,
		).Scan(&u.ID)
		if err != nil {
			return mapUserError(err)
		}
		user.SetID(u.ID)
		return nil
	}

	tag, err := r.q.Exec(ctx, `
		UPDATE enterprise_users
		SET company_id = $2, name = $3, email = $4, password_hash = $5, last_login_at = $6, updated_at = now()
		WHERE id = $1`,
		u.ID, u.CompanyID, u.Name, u.Email, u.PasswordHash, u.LastLoginAt,
	)
	if err != nil {
		return mapUserError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina el usuario; no falla si no existe.
func (r *EnterpriseUserRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM enterprise_users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete enterprise user: %w", err)
	}
	return nil
}

func (r *EnterpriseUserRepo) findOne(ctx context.Context, where string, arg any) (*entity.EnterpriseUser, error) {
	rows, err := queryUsers(ctx, r.q, where, arg)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return record.ToEnterpriseUser(rows[0])
}

// queryUsers ejecuta SELECT sobre enterprise_users con el filtro dado. Lo usa también CompanyRepo para el padrón.
func queryUsers(ctx context.Context, q Querier, where string, args ...any) ([]record.EnterpriseUserRecord, error) {
	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM enterprise_users `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("get enterprise users: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (record.EnterpriseUserRecord, error) {
		var u record.EnterpriseUserRecord
		err := row.Scan(&u.ID, &u.CompanyID, &u.Name, &u.Email, &u.PasswordHash, &u.LastLoginAt)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan enterprise users: %w", err)
	}
	return list, nil
}

func toUsers(rows []record.EnterpriseUserRecord) ([]*entity.EnterpriseUser, error) {
	list := make([]*entity.EnterpriseUser, 0, len(rows))
	for _, row := range rows {
		u, err := record.ToEnterpriseUser(row)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, nil
}

func mapUserError(err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrEmailAlreadyInUse
	case isForeignKeyViolation(err):
		return domain.ErrCompanyNotFound
	default:
		return fmt.Errorf("save enterprise user: %w", err)
	}
}

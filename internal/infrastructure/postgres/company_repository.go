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

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
// Carga y guarda el agregado completo: fila de companies, historial de subscriptions y padrón.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, email, version`

func scanCompany(row pgx.Row) (record.CompanyRecord, error) {
	var c record.CompanyRecord
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Version)
	return c, err
}

// FindByID obtiene una empresa por ID.
func (r *CompanyRepo) FindByID(ctx context.Context, id int64) (*entity.Company, error) {
	row, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return r.load(ctx, row)
}

// FindByEmail obtiene una empresa por email normalizado.
func (r *CompanyRepo) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.Company, error) {
	row, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE email = $1`, email.String()))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by email: %w", err)
	}
	return r.load(ctx, row)
}

// FindAll lista todas las empresas ordenadas por ID.
func (r *CompanyRepo) FindAll(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (record.CompanyRecord, error) {
		return scanCompany(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan companies: %w", err)
	}
	list := make([]*entity.Company, 0, len(records))
	for _, rec := range records {
		c, err := r.load(ctx, rec)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, nil
}

// Save inserta o actualiza la empresa y su historial en una sola transacción.
// El UPDATE exige la versión leída; si otro guardado la adelantó devuelve domain.ErrConflict.
// Las suscripciones existentes se actualizan antes de insertar las nuevas para que la anterior
// ya esté cancelada cuando entra la nueva activa (índice único parcial sobre status = 'active').
func (r *CompanyRepo) Save(ctx context.Context, company *entity.Company) error {
	row := record.FromCompany(company)
	subs := company.Subscriptions()
	ids := make(map[*entity.Subscription]int64)

	err := runInTx(ctx, r.q, func(tx pgx.Tx) error {
		if row.ID == 0 {
			err := tx.QueryRow(ctx, `
				INSERT INTO companies (name, email, version)
				VALUES ($1, $2, 1)
				RETURNING id, version`,
				row.Name, row.Email,
			).Scan(&row.ID, &row.Version)
			if err != nil {
				return mapCompanyError(err)
			}
		} else {
			err := tx.QueryRow(ctx, `
				UPDATE companies SET name = $3, email = $4, version = version + 1, updated_at = now()
				WHERE id = $1 AND version = $2
				RETURNING version`,
				row.ID, row.Version, row.Name, row.Email,
			).Scan(&row.Version)
			if err != nil {
				if isNoRows(err) {
					return r.missingOrStale(ctx, tx, row.ID)
				}
				return mapCompanyError(err)
			}
		}

		for _, sub := range subs {
			if sub.ID() == 0 {
				continue
			}
			s := record.FromSubscription(sub, row.ID)
			_, err := tx.Exec(ctx, `
				UPDATE subscriptions SET plan_id = $2, status = $3, start_date = $4, end_date = $5
				WHERE id = $1`,
				s.ID, s.PlanID, s.Status, s.StartDate, s.EndDate,
			)
			if err != nil {
				return mapSubscriptionError(err)
			}
		}
		for _, sub := range subs {
			if sub.ID() != 0 {
				continue
			}
			s := record.FromSubscription(sub, row.ID)
			var id int64
			err := tx.QueryRow(ctx, `
				INSERT INTO subscriptions (company_id, plan_id, status, start_date, end_date)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				s.CompanyID, s.PlanID, s.Status, s.StartDate, s.EndDate,
			).Scan(&id)
			if err != nil {
				return mapSubscriptionError(err)
			}
			ids[sub] = id
		}
		return nil
	})
	if err != nil {
		return err
	}

	// IDs y versión se asignan solo tras un commit exitoso.
	company.SetID(row.ID)
	company.SetVersion(row.Version)
	for sub, id := range ids {
		sub.SetID(id)
	}
	return nil
}

// Delete elimina la empresa; suscripciones y usuarios caen en cascada.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) missingOrStale(ctx context.Context, tx pgx.Tx, id int64) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check company: %w", err)
	}
	if !exists {
		return domain.ErrCompanyNotFound
	}
	return domain.ErrConflict
}

// load completa el agregado: historial (orden de creación), planes referenciados y padrón.
func (r *CompanyRepo) load(ctx context.Context, row record.CompanyRecord) (*entity.Company, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, plan_id, status, start_date, end_date
		FROM subscriptions
		WHERE company_id = $1
		ORDER BY id`, row.ID)
	if err != nil {
		return nil, fmt.Errorf("get subscriptions: %w", err)
	}
	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (record.SubscriptionRecord, error) {
		var s record.SubscriptionRecord
		err := row.Scan(&s.ID, &s.CompanyID, &s.PlanID, &s.Status, &s.StartDate, &s.EndDate)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan subscriptions: %w", err)
	}

	seen := make(map[int64]bool)
	var planIDs []int64
	for _, s := range subs {
		if !seen[s.PlanID] {
			seen[s.PlanID] = true
			planIDs = append(planIDs, s.PlanID)
		}
	}
	plans, err := loadPlans(ctx, r.q, planIDs)
	if err != nil {
		return nil, err
	}

	users, err := queryUsers(ctx, r.q, `WHERE company_id = $1 ORDER BY id`, row.ID)
	if err != nil {
		return nil, err
	}
	return record.ToCompany(row, subs, plans, users)
}

func mapCompanyError(err error) error {
	if isUniqueViolation(err) {
		return domain.ErrEmailAlreadyInUse
	}
	return fmt.Errorf("save company: %w", err)
}

func mapSubscriptionError(err error) error {
	switch {
	case isForeignKeyViolation(err):
		return domain.ErrPlanNotFound
	case isUniqueViolation(err):
		// uq_subscriptions_one_active: otra escritura dejó una activa.
		return fmt.Errorf("%w: %s", domain.ErrConflict, constraintName(err))
	default:
		return fmt.Errorf("save subscription: %w", err)
	}
}

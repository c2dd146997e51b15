package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/suscripciones-api/internal/domain/repository"
	"github.com/jhoicas/suscripciones-api/internal/infrastructure/record"
)

// Asegura que PlanRepo implementa repository.PlanRepository.
var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación del puerto PlanRepository sobre PostgreSQL.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

const planColumns = `id, name, monthly_price, currency, user_limit`

// FindByID obtiene un plan con sus características; (nil, nil) si no existe.
func (r *PlanRepo) FindByID(ctx context.Context, id int64) (*entity.Plan, error) {
	plans, err := loadPlans(ctx, r.q, []int64{id})
	if err != nil {
		return nil, err
	}
	return plans[id], nil
}

// FindAll lista los planes ordenados por ID.
func (r *PlanRepo) FindAll(ctx context.Context) ([]*entity.Plan, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM plans ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scan plan ids: %w", err)
	}
	byID, err := loadPlans(ctx, r.q, ids)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Plan, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			list = append(list, p)
		}
	}
	return list, nil
}

// Save inserta (ID 0) o actualiza el plan y reemplaza sus características, en una transacción.
func (r *PlanRepo) Save(ctx context.Context, plan *entity.Plan) error {
	row, features := record.FromPlan(plan)
	err := runInTx(ctx, r.q, func(tx pgx.Tx) error {
		if row.ID == 0 {
			err := tx.QueryRow(ctx, `
				INSERT INTO plans (name, monthly_price, currency, user_limit)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				row.Name, row.MonthlyPrice, row.Currency, row.UserLimit,
			).Scan(&row.ID)
			if err != nil {
				return fmt.Errorf("insert plan: %w", err)
			}
		} else {
			tag, err := tx.Exec(ctx, `
				UPDATE plans SET name = $2, monthly_price = $3, currency = $4, user_limit = $5, updated_at = now()
				WHERE id = $1`,
				row.ID, row.Name, row.MonthlyPrice, row.Currency, row.UserLimit,
			)
			if err != nil {
				return fmt.Errorf("update plan: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return domain.ErrPlanNotFound
			}
			if _, err := tx.Exec(ctx, `DELETE FROM plan_features WHERE plan_id = $1`, row.ID); err != nil {
				return fmt.Errorf("delete plan features: %w", err)
			}
		}
		for i, f := range features {
			_, err := tx.Exec(ctx, `
				INSERT INTO plan_features (plan_id, name, description, position)
				VALUES ($1, $2, $3, $4)`,
				row.ID, f.Name, f.Description, i,
			)
			if err != nil {
				return fmt.Errorf("insert plan feature: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	plan.SetID(row.ID)
	return nil
}

// Delete elimina el plan. Si alguna suscripción lo referencia devuelve domain.ErrConflict.
func (r *PlanRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}

// MaxActiveSeats cuenta usuarios por empresa activa en el plan y devuelve el máximo.
func (r *PlanRepo) MaxActiveSeats(ctx context.Context, planID int64) (int, error) {
	var seats int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(t.seats), 0)
		FROM (
			SELECT COUNT(u.id) AS seats
			FROM subscriptions s
			LEFT JOIN enterprise_users u ON u.company_id = s.company_id
			WHERE s.plan_id = $1 AND s.status = 'active'
			GROUP BY s.company_id
		) t`, planID).Scan(&seats)
	if err != nil {
		return 0, fmt.Errorf("max active seats: %w", err)
	}
	return int(seats), nil
}

// loadPlans carga los planes pedidos con sus características, indexados por ID.
func loadPlans(ctx context.Context, q Querier, ids []int64) (map[int64]*entity.Plan, error) {
	out := make(map[int64]*entity.Plan, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := q.Query(ctx, `SELECT `+planColumns+` FROM plans WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get plans: %w", err)
	}
	planRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (record.PlanRecord, error) {
		var p record.PlanRecord
		err := row.Scan(&p.ID, &p.Name, &p.MonthlyPrice, &p.Currency, &p.UserLimit)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan plans: %w", err)
	}

	rows, err = q.Query(ctx, `
		SELECT id, plan_id, name, description
		FROM plan_features
		WHERE plan_id = ANY($1)
		ORDER BY plan_id, position, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("get plan features: %w", err)
	}
	featureRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (record.FeatureRecord, error) {
		var f record.FeatureRecord
		err := row.Scan(&f.ID, &f.PlanID, &f.Name, &f.Description)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan plan features: %w", err)
	}
	features := make(map[int64][]record.FeatureRecord)
	for _, f := range featureRows {
		features[f.PlanID] = append(features[f.PlanID], f)
	}

	for _, p := range planRows {
		plan, err := record.ToPlan(p, features[p.ID])
		if err != nil {
			return nil, err
		}
		out[p.ID] = plan
	}
	return out, nil
}

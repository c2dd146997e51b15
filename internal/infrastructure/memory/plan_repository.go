package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/suscripciones-api/internal/domain/repository"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
	"github.com/jhoicas/suscripciones-api/internal/infrastructure/record"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación en memoria de PlanRepository.
type PlanRepo struct {
	s *Store
}

// NewPlanRepository construye el repositorio sobre el store compartido.
func NewPlanRepository(s *Store) *PlanRepo {
	return &PlanRepo{s: s}
}

func (r *PlanRepo) FindByID(_ context.Context, id int64) (*entity.Plan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, _, err := r.s.loadPlan(id)
	return p, err
}

func (r *PlanRepo) FindAll(_ context.Context) ([]*entity.Plan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]int64, 0, len(r.s.plans))
	for id := range r.s.plans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	list := make([]*entity.Plan, 0, len(ids))
	for _, id := range ids {
		p, _, err := r.s.loadPlan(id)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

// Save inserta (ID 0) o reemplaza el plan y todas sus características.
// Un ID que no existe devuelve domain.ErrPlanNotFound.
func (r *PlanRepo) Save(_ context.Context, plan *entity.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if plan.ID() == 0 {
		plan.SetID(r.s.nextID("plans"))
	} else if _, ok := r.s.plans[plan.ID()]; !ok {
		return domain.ErrPlanNotFound
	}
	row, features := record.FromPlan(plan)
	for i := range features {
		features[i].ID = r.s.nextID("plan_features")
	}
	r.s.plans[row.ID] = row
	r.s.features[row.ID] = features
	return nil
}

// Delete falla con ErrConflict si alguna suscripción referencia el plan (ON DELETE RESTRICT).
func (r *PlanRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.subscriptions {
		if sub.PlanID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.plans, id)
	delete(r.s.features, id)
	return nil
}

func (r *PlanRepo) MaxActiveSeats(_ context.Context, planID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seats := make(map[int64]int)
	for _, sub := range r.s.subscriptions {
		if sub.PlanID == planID && sub.Status == string(valueobject.StatusActive) {
			seats[sub.CompanyID] = 0
		}
	}
	for _, u := range r.s.users {
		if _, ok := seats[u.CompanyID]; ok {
			seats[u.CompanyID]++
		}
	}
	top := 0
	for _, n := range seats {
		if n > top {
			top = n
		}
	}
	return top, nil
}

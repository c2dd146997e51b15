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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación en memoria de CompanyRepository.
type CompanyRepo struct {
	s *Store
}

// NewCompanyRepository construye el repositorio sobre el store compartido.
func NewCompanyRepository(s *Store) *CompanyRepo {
	return &CompanyRepo{s: s}
}

func (r *CompanyRepo) FindByID(_ context.Context, id int64) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return r.s.loadCompany(row)
}

func (r *CompanyRepo) FindByEmail(_ context.Context, email valueobject.Email) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, row := range r.s.companies {
		if row.Email == email.String() {
			return r.s.loadCompany(row)
		}
	}
	return nil, nil
}

func (r *CompanyRepo) FindAll(_ context.Context) ([]*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]record.CompanyRecord, 0, len(r.s.companies))
	for _, row := range r.s.companies {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	list := make([]*entity.Company, 0, len(rows))
	for _, row := range rows {
		c, err := r.s.loadCompany(row)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, nil
}

// Save valida todo antes de escribir, así un error no deja el store a medias.
// Las suscripciones nunca se borran: se insertan las nuevas y se actualizan las existentes.
func (r *CompanyRepo) Save(_ context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := record.FromCompany(company)
	if row.ID != 0 {
		stored, ok := r.s.companies[row.ID]
		if !ok {
			return domain.ErrCompanyNotFound
		}
		if stored.Version != row.Version {
			return domain.ErrConflict
		}
	}
	for _, other := range r.s.companies {
		if other.ID != row.ID && other.Email == row.Email {
			return domain.ErrEmailAlreadyInUse
		}
	}
	subs := company.Subscriptions()
	for _, sub := range subs {
		if _, ok := r.s.plans[sub.Plan().ID()]; !ok {
			return domain.ErrPlanNotFound
		}
	}

	if row.ID == 0 {
		row.ID = r.s.nextID("companies")
		company.SetID(row.ID)
	}
	row.Version++
	r.s.companies[row.ID] = row
	for _, sub := range subs {
		if sub.ID() == 0 {
			sub.SetID(r.s.nextID("subscriptions"))
		}
		r.s.subscriptions[sub.ID()] = copySubscription(record.FromSubscription(sub, row.ID))
	}
	company.SetVersion(row.Version)
	return nil
}

// Delete elimina la empresa en cascada con sus suscripciones y usuarios.
func (r *CompanyRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.companies, id)
	for subID, sub := range r.s.subscriptions {
		if sub.CompanyID == id {
			delete(r.s.subscriptions, subID)
		}
	}
	for userID, u := range r.s.users {
		if u.CompanyID == id {
			delete(r.s.users, userID)
		}
	}
	return nil
}

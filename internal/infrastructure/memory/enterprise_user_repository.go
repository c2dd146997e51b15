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

var _ repository.EnterpriseUserRepository = (*EnterpriseUserRepo)(nil)

// EnterpriseUserRepo implementación en memoria de EnterpriseUserRepository.
type EnterpriseUserRepo struct {
	s *Store
}

// NewEnterpriseUserRepository construye el repositorio sobre el store compartido.
func NewEnterpriseUserRepository(s *Store) *EnterpriseUserRepo {
	return &EnterpriseUserRepo{s: s}
}

func (r *EnterpriseUserRepo) FindByID(_ context.Context, id int64) (*entity.EnterpriseUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return record.ToEnterpriseUser(copyUser(row))
}

func (r *EnterpriseUserRepo) FindByEmail(_ context.Context, email valueobject.Email) (*entity.EnterpriseUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, row := range r.s.users {
		if row.Email == email.String() {
			return record.ToEnterpriseUser(copyUser(row))
		}
	}
	return nil, nil
}

func (r *EnterpriseUserRepo) FindByCompany(_ context.Context, companyID int64) ([]*entity.EnterpriseUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return toUsers(r.s.usersOf(companyID))
}

func (r *EnterpriseUserRepo) FindAll(_ context.Context) ([]*entity.EnterpriseUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]record.EnterpriseUserRecord, 0, len(r.s.users))
	for _, row := range r.s.users {
		rows = append(rows, copyUser(row))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return toUsers(rows)
}

// Save exige que la empresa exista y que el email no lo use otro usuario.
func (r *EnterpriseUserRepo) Save(_ context.Context, user *entity.EnterpriseUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row := record.FromEnterpriseUser(user)
	if _, ok := r.s.companies[row.CompanyID]; !ok {
		return domain.ErrCompanyNotFound
	}
	if row.ID != 0 {
		if _, ok := r.s.users[row.ID]; !ok {
			return domain.ErrUserNotFound
		}
	}
	for _, other := range r.s.users {
		if other.ID != row.ID && other.Email == row.Email {
			return domain.ErrEmailAlreadyInUse
		}
	}
	if row.ID == 0 {
		row.ID = r.s.nextID("enterprise_users")
		user.SetID(row.ID)
	}
	r.s.users[row.ID] = copyUser(row)
	return nil
}

func (r *EnterpriseUserRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
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

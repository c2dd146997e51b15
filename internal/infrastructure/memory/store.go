// Package memory implementa los repositorios sobre mapas en memoria con el mismo contrato
// que la implementación PostgreSQL (upsert por ID, unicidad de emails, cascadas y
// restricciones de claves foráneas). Se usa en tests y con STORAGE_DRIVER=memory.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/suscripciones-api/internal/infrastructure/record"
)

// Store tablas en memoria compartidas por los tres repositorios. Un único mutex serializa
// cada operación, equivalente a una transacción por llamada.
type Store struct {
	mu            sync.RWMutex
	seq           map[string]int64
	plans         map[int64]record.PlanRecord
	features      map[int64][]record.FeatureRecord
	companies     map[int64]record.CompanyRecord
	subscriptions map[int64]record.SubscriptionRecord
	users         map[int64]record.EnterpriseUserRecord
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		seq:           make(map[string]int64),
		plans:         make(map[int64]record.PlanRecord),
		features:      make(map[int64][]record.FeatureRecord),
		companies:     make(map[int64]record.CompanyRecord),
		subscriptions: make(map[int64]record.SubscriptionRecord),
		users:         make(map[int64]record.EnterpriseUserRecord),
	}
}

func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// loadPlan requiere s.mu tomado.
func (s *Store) loadPlan(id int64) (*entity.Plan, bool, error) {
	r, ok := s.plans[id]
	if !ok {
		return nil, false, nil
	}
	p, err := record.ToPlan(r, s.features[id])
	if err != nil {
		return nil, true, err
	}
	return p, true, nil
}

// loadCompany requiere s.mu tomado.
func (s *Store) loadCompany(r record.CompanyRecord) (*entity.Company, error) {
	var subs []record.SubscriptionRecord
	for _, sub := range s.subscriptions {
		if sub.CompanyID == r.ID {
			subs = append(subs, copySubscription(sub))
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })

	plans := make(map[int64]*entity.Plan)
	for _, sub := range subs {
		if _, done := plans[sub.PlanID]; done {
			continue
		}
		p, ok, err := s.loadPlan(sub.PlanID)
		if err != nil {
			return nil, err
		}
		if ok {
			plans[sub.PlanID] = p
		}
	}
	return record.ToCompany(r, subs, plans, s.usersOf(r.ID))
}

// usersOf requiere s.mu tomado.
func (s *Store) usersOf(companyID int64) []record.EnterpriseUserRecord {
	var out []record.EnterpriseUserRecord
	for _, u := range s.users {
		if u.CompanyID == companyID {
			out = append(out, copyUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copySubscription(r record.SubscriptionRecord) record.SubscriptionRecord {
	r.EndDate = copyTime(r.EndDate)
	return r
}

func copyUser(r record.EnterpriseUserRecord) record.EnterpriseUserRecord {
	r.LastLoginAt = copyTime(r.LastLoginAt)
	return r
}

package entity

import (
	"time"

	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
)

// Subscription vincula una empresa a un plan durante un intervalo.
// Solo Company crea o cancela suscripciones; nunca se reactivan ni se eliminan.
type Subscription struct {
	id        int64
	companyID int64
	plan      *Plan
	status    valueobject.SubscriptionStatus
	startDate time.Time
	endDate   *time.Time
}

func newActiveSubscription(companyID int64, plan *Plan, start time.Time) *Subscription {
	return &Subscription{
		companyID: companyID,
		plan:      plan,
		status:    valueobject.StatusActive,
		startDate: start,
	}
}

// RestoreSubscription rehidrata una suscripción y verifica la coherencia estado/fecha de fin.
func RestoreSubscription(id, companyID int64, plan *Plan, status valueobject.SubscriptionStatus, start time.Time, end *time.Time) (*Subscription, error) {
	if plan == nil {
		return nil, domain.ErrInvalidState
	}
	if status.IsClosed() && end == nil {
		return nil, domain.ErrInvalidState
	}
	if status.IsActive() && end != nil {
		return nil, domain.ErrInvalidState
	}
	return &Subscription{
		id:        id,
		companyID: companyID,
		plan:      plan,
		status:    status,
		startDate: start,
		endDate:   end,
	}, nil
}

func (s *Subscription) ID() int64                              { return s.id }
func (s *Subscription) CompanyID() int64                       { return s.companyID }
func (s *Subscription) Plan() *Plan                            { return s.plan }
func (s *Subscription) Status() valueobject.SubscriptionStatus { return s.status }
func (s *Subscription) StartDate() time.Time                   { return s.startDate }

// EndDate nil mientras la suscripción está activa.
func (s *Subscription) EndDate() *time.Time { return s.endDate }

// IsActive delega en el estado.
func (s *Subscription) IsActive() bool { return s.status.IsActive() }

// SetID lo usa el repositorio al insertar.
func (s *Subscription) SetID(id int64) { s.id = id }

// Cancel pasa a cancelled y fija la fecha de fin. Si ya tenía fecha de fin la conserva.
func (s *Subscription) Cancel() {
	s.status = valueobject.StatusCancelled
	if s.endDate == nil {
		now := time.Now()
		s.endDate = &now
	}
}

// Package record declara los registros de almacenamiento (campos planos que reflejan el esquema)
// y las únicas funciones de mapeo entre registros y entidades de dominio.
// Los repositorios (postgres y memory) traducen en su frontera usando este paquete.
package record

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
)

// PlanRecord fila de plans.
type PlanRecord struct {
	ID           int64
	Name         string
	MonthlyPrice decimal.Decimal
	Currency     string
	UserLimit    int
}

// FeatureRecord fila de plan_features.
type FeatureRecord struct {
	ID          int64
	PlanID      int64
	Name        string
	Description string
}

// CompanyRecord fila de companies.
type CompanyRecord struct {
	ID      int64
	Name    string
	Email   string
	Version int
}

// SubscriptionRecord fila de subscriptions.
type SubscriptionRecord struct {
	ID        int64
	CompanyID int64
	PlanID    int64
	Status    string
	StartDate time.Time
	EndDate   *time.Time
}

// EnterpriseUserRecord fila de enterprise_users.
type EnterpriseUserRecord struct {
	ID           int64
	CompanyID    int64
	Name         string
	Email        string
	PasswordHash string
	LastLoginAt  *time.Time
}

// ToPlan rehidrata un plan con sus características en el orden recibido.
func ToPlan(r PlanRecord, features []FeatureRecord) (*entity.Plan, error) {
	price, err := valueobject.NewMoney(r.MonthlyPrice, r.Currency)
	if err != nil {
		return nil, fmt.Errorf("plan %d: %w", r.ID, err)
	}
	list := make([]valueobject.Feature, 0, len(features))
	for _, f := range features {
		feature, err := valueobject.RestoreFeature(f.ID, f.Name, f.Description)
		if err != nil {
			return nil, fmt.Errorf("plan %d feature %d: %w", r.ID, f.ID, err)
		}
		list = append(list, feature)
	}
	return entity.RestorePlan(r.ID, r.Name, price, r.UserLimit, list)
}

// FromPlan aplana un plan. Las características quedan con PlanID = plan.ID().
func FromPlan(p *entity.Plan) (PlanRecord, []FeatureRecord) {
	features := p.Features()
	out := make([]FeatureRecord, 0, len(features))
	for _, f := range features {
		out = append(out, FeatureRecord{
			ID:          f.ID(),
			PlanID:      p.ID(),
			Name:        f.Name(),
			Description: f.Description(),
		})
	}
	return PlanRecord{
		ID:           p.ID(),
		Name:         p.Name(),
		MonthlyPrice: p.MonthlyPrice().Amount(),
		Currency:     p.MonthlyPrice().Currency(),
		UserLimit:    p.UserLimit(),
	}, out
}

// ToSubscription rehidrata una suscripción; plan debe corresponder a r.PlanID.
func ToSubscription(r SubscriptionRecord, plan *entity.Plan) (*entity.Subscription, error) {
	status, err := valueobject.ParseSubscriptionStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("subscription %d: %w", r.ID, err)
	}
	return entity.RestoreSubscription(r.ID, r.CompanyID, plan, status, r.StartDate, r.EndDate)
}

// FromSubscription aplana una suscripción bajo companyID (la empresa puede haberse insertado recién).
func FromSubscription(s *entity.Subscription, companyID int64) SubscriptionRecord {
	return SubscriptionRecord{
		ID:        s.ID(),
		CompanyID: companyID,
		PlanID:    s.Plan().ID(),
		Status:    s.Status().String(),
		StartDate: s.StartDate(),
		EndDate:   s.EndDate(),
	}
}

// ToEnterpriseUser rehidrata un usuario sin re-hashear la contraseña.
func ToEnterpriseUser(r EnterpriseUserRecord) (*entity.EnterpriseUser, error) {
	email, err := valueobject.NewEmail(r.Email)
	if err != nil {
		return nil, fmt.Errorf("enterprise user %d: %w", r.ID, err)
	}
	return entity.RestoreEnterpriseUser(r.ID, r.Name, email, valueobject.PasswordFromHash(r.PasswordHash), r.CompanyID, r.LastLoginAt)
}

// FromEnterpriseUser aplana un usuario.
func FromEnterpriseUser(u *entity.EnterpriseUser) EnterpriseUserRecord {
	return EnterpriseUserRecord{
		ID:           u.ID(),
		CompanyID:    u.CompanyID(),
		Name:         u.Name(),
		Email:        u.Email().String(),
		PasswordHash: u.Password().Hash(),
		LastLoginAt:  u.LastLoginAt(),
	}
}

// ToCompany rehidrata el agregado. plans debe contener todos los PlanID referenciados por subs.
func ToCompany(r CompanyRecord, subs []SubscriptionRecord, plans map[int64]*entity.Plan, users []EnterpriseUserRecord) (*entity.Company, error) {
	email, err := valueobject.NewEmail(r.Email)
	if err != nil {
		return nil, fmt.Errorf("company %d: %w", r.ID, err)
	}
	history := make([]*entity.Subscription, 0, len(subs))
	for _, s := range subs {
		plan, ok := plans[s.PlanID]
		if !ok {
			return nil, fmt.Errorf("company %d: plan %d no cargado", r.ID, s.PlanID)
		}
		sub, err := ToSubscription(s, plan)
		if err != nil {
			return nil, fmt.Errorf("company %d: %w", r.ID, err)
		}
		history = append(history, sub)
	}
	roster := make([]*entity.EnterpriseUser, 0, len(users))
	for _, u := range users {
		user, err := ToEnterpriseUser(u)
		if err != nil {
			return nil, err
		}
		roster = append(roster, user)
	}
	return entity.RestoreCompany(r.ID, r.Name, email, r.Version, history, roster)
}

// FromCompany aplana solo la fila de la empresa; el historial se aplana con FromSubscription.
func FromCompany(c *entity.Company) CompanyRecord {
	return CompanyRecord{
		ID:      c.ID(),
		Name:    c.Name(),
		Email:   c.Email().String(),
		Version: c.Version(),
	}
}

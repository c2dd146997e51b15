package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
)

// Company raíz del agregado: gobierna su historial de suscripciones, su suscripción activa
// y el padrón de usuarios empresariales.
//
// Invariantes:
//   - a lo sumo una suscripción del historial está activa;
//   - len(users) <= plan activo.UserLimit mientras haya suscripción activa;
//   - no se agregan usuarios sin suscripción activa.
type Company struct {
	id                 int64
	name               string
	email              valueobject.Email
	version            int
	activeSubscription *Subscription
	subscriptions      []*Subscription
	users              []*EnterpriseUser
}

// NewCompany construye una empresa sin suscripción ni usuarios.
func NewCompany(name string, email valueobject.Email) (*Company, error) {
	return RestoreCompany(0, name, email, 0, nil, nil)
}

// RestoreCompany rehidrata el agregado completo. La suscripción activa se deduce del historial;
// más de una activa es un estado persistido inválido.
func RestoreCompany(id int64, name string, email valueobject.Email, version int, subscriptions []*Subscription, users []*EnterpriseUser) (*Company, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrEmptyName
	}
	if email.IsZero() {
		return nil, domain.ErrInvalidEmail
	}
	c := &Company{
		id:            id,
		name:          name,
		email:         email,
		version:       version,
		subscriptions: append([]*Subscription(nil), subscriptions...),
		users:         append([]*EnterpriseUser(nil), users...),
	}
	for _, s := range c.subscriptions {
		if !s.IsActive() {
			continue
		}
		if c.activeSubscription != nil {
			return nil, domain.ErrInvalidState
		}
		c.activeSubscription = s
	}
	return c, nil
}

func (c *Company) ID() int64                { return c.id }
func (c *Company) Name() string             { return c.name }
func (c *Company) Email() valueobject.Email { return c.email }

// Version token de concurrencia optimista; 0 = nunca persistida.
func (c *Company) Version() int { return c.version }

// ActiveSubscription nil si no hay suscripción activa.
func (c *Company) ActiveSubscription() *Subscription { return c.activeSubscription }

// Subscriptions historial completo en orden de creación (copia).
func (c *Company) Subscriptions() []*Subscription {
	return append([]*Subscription(nil), c.subscriptions...)
}

// Users padrón actual (copia).
func (c *Company) Users() []*EnterpriseUser {
	return append([]*EnterpriseUser(nil), c.users...)
}

// SeatsUsed cantidad de usuarios en el padrón.
func (c *Company) SeatsUsed() int { return len(c.users) }

// SetID lo usa el repositorio al insertar; propaga el ID a las suscripciones aún sin empresa.
func (c *Company) SetID(id int64) {
	c.id = id
	for _, s := range c.subscriptions {
		if s.companyID == 0 {
			s.companyID = id
		}
	}
}

// SetVersion lo usa el repositorio tras un guardado exitoso.
func (c *Company) SetVersion(v int) { c.version = v }

// Subscribe reemplaza la suscripción activa (si existe) por una nueva sobre plan.
// Cancelar la anterior y activar la nueva ocurren antes de retornar; nunca quedan dos activas.
// Falla con ErrSeatLimitReached si el padrón actual no cabe en el nuevo plan, sin modificar nada.
func (c *Company) Subscribe(plan *Plan) (*Subscription, error) {
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}
	if len(c.users) > plan.UserLimit() {
		return nil, domain.ErrSeatLimitReached
	}
	if c.activeSubscription != nil && c.activeSubscription.IsActive() {
		c.activeSubscription.Cancel()
	}
	sub := newActiveSubscription(c.id, plan, time.Now())
	c.subscriptions = append(c.subscriptions, sub)
	c.activeSubscription = sub
	return sub, nil
}

// CancelActiveSubscription cancela la suscripción activa. Devuelve false si no había ninguna.
func (c *Company) CancelActiveSubscription() bool {
	if c.activeSubscription == nil {
		return false
	}
	c.activeSubscription.Cancel()
	c.activeSubscription = nil
	return true
}

// AddUser agrega un usuario al padrón respetando el límite del plan activo.
func (c *Company) AddUser(user *EnterpriseUser) error {
	if c.activeSubscription == nil {
		return domain.ErrNoActiveSubscription
	}
	if len(c.users) >= c.activeSubscription.Plan().UserLimit() {
		return domain.ErrSeatLimitReached
	}
	c.users = append(c.users, user)
	return nil
}

// RemoveUser quita el usuario por ID; no hace nada si no está.
func (c *Company) RemoveUser(user *EnterpriseUser) {
	if user == nil {
		return
	}
	kept := c.users[:0]
	for _, u := range c.users {
		if u.ID() != user.ID() {
			kept = append(kept, u)
		}
	}
	c.users = kept
}

// CanAddMoreUsers false sin suscripción activa; si no, compara padrón con el límite.
func (c *Company) CanAddMoreUsers() bool {
	if c.activeSubscription == nil {
		return false
	}
	return len(c.users) < c.activeSubscription.Plan().UserLimit()
}

// HasActiveSubscription informa si hay suscripción activa.
func (c *Company) HasActiveSubscription() bool { return c.activeSubscription != nil }

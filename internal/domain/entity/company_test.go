package entity_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func mustPlan(t *testing.T, id int64, name string, limit int) *entity.Plan {
	t.Helper()
	price, err := valueobject.NewMoney(decimal.RequireFromString("29.99"), "USD")
	require.NoError(t, err)
	p, err := entity.RestorePlan(id, name, price, limit, nil)
	require.NoError(t, err)
	return p
}

func mustCompany(t *testing.T) *entity.Company {
	t.Helper()
	email, err := valueobject.NewEmail("a@acme.com")
	require.NoError(t, err)
	c, err := entity.NewCompany("Acme", email)
	require.NoError(t, err)
	c.SetID(1)
	return c
}

func mustUser(t *testing.T, id int64, companyID int64) *entity.EnterpriseUser {
	t.Helper()
	email, err := valueobject.NewEmail(fmt.Sprintf("user%d@acme.com", id))
	require.NoError(t, err)
	u, err := entity.RestoreEnterpriseUser(id, "User", email, valueobject.PasswordFromHash("x"), companyID, nil)
	require.NoError(t, err)
	return u
}

func countActive(c *entity.Company) int {
	n := 0
	for _, s := range c.Subscriptions() {
		if s.IsActive() {
			n++
		}
	}
	return n
}

// ── Subscribe ─────────────────────────────────────────────────────────────────

func TestSubscribe_PrimeraSuscripcionActiva(t *testing.T) {
	c := mustCompany(t)
	assert.False(t, c.HasActiveSubscription())

	sub, err := c.Subscribe(mustPlan(t, 1, "Basic", 5))
	require.NoError(t, err)

	assert.True(t, c.HasActiveSubscription())
	assert.Same(t, sub, c.ActiveSubscription())
	assert.Equal(t, valueobject.StatusActive, sub.Status())
	assert.Nil(t, sub.EndDate(), "una suscripción activa no tiene fecha de fin")
	assert.Equal(t, int64(1), sub.CompanyID())
}

// Escenario: Basic → Pro deja dos entradas, la primera cancelada con fecha de fin.
func TestSubscribe_ReemplazaSuscripcionAnterior(t *testing.T) {
	c := mustCompany(t)
	_, err := c.Subscribe(mustPlan(t, 1, "Basic", 5))
	require.NoError(t, err)
	_, err = c.Subscribe(mustPlan(t, 2, "Pro", 20))
	require.NoError(t, err)

	history := c.Subscriptions()
	require.Len(t, history, 2)
	assert.Equal(t, valueobject.StatusCancelled, history[0].Status())
	assert.NotNil(t, history[0].EndDate())
	assert.Equal(t, valueobject.StatusActive, history[1].Status())
	assert.Equal(t, "Pro", c.ActiveSubscription().Plan().Name())
}

func TestSubscribe_NuncaDosActivas(t *testing.T) {
	c := mustCompany(t)
	for i := int64(1); i <= 6; i++ {
		_, err := c.Subscribe(mustPlan(t, i, "Plan", 10))
		require.NoError(t, err)
		assert.Equal(t, 1, countActive(c), "tras cada subscribe debe haber exactamente una activa")
	}
	assert.Len(t, c.Subscriptions(), 6)
}

func TestSubscribe_RechazaPlanMasChicoQueElPadron(t *testing.T) {
	c := mustCompany(t)
	_, err := c.Subscribe(mustPlan(t, 1, "Pro", 10))
	require.NoError(t, err)
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, c.AddUser(mustUser(t, i, 1)))
	}
	before := c.ActiveSubscription()

	_, err = c.Subscribe(mustPlan(t, 2, "Mini", 2))
	assert.ErrorIs(t, err, domain.ErrSeatLimitReached)
	assert.Same(t, before, c.ActiveSubscription(), "la suscripción vigente no cambia")
	assert.True(t, before.IsActive())
	assert.Len(t, c.Subscriptions(), 1)
}

// ── AddUser / RemoveUser ──────────────────────────────────────────────────────

func TestAddUser_SinSuscripcion(t *testing.T) {
	c := mustCompany(t)
	err := c.AddUser(mustUser(t, 1, 1))
	assert.ErrorIs(t, err, domain.ErrNoActiveSubscription)
	assert.Equal(t, 0, c.SeatsUsed(), "el padrón no cambia ante un fallo")
	assert.False(t, c.CanAddMoreUsers())
}

// Escenario: Basic (límite 5) con 5 usuarios rechaza el sexto.
func TestAddUser_LimiteDeAsientos(t *testing.T) {
	c := mustCompany(t)
	_, err := c.Subscribe(mustPlan(t, 1, "Basic", 5))
	require.NoError(t, err)
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, c.AddUser(mustUser(t, i, 1)))
	}
	assert.False(t, c.CanAddMoreUsers())

	err = c.AddUser(mustUser(t, 6, 1))
	assert.ErrorIs(t, err, domain.ErrSeatLimitReached)
	assert.Equal(t, 5, c.SeatsUsed())
}

func TestRemoveUser_PorIDYNoOp(t *testing.T) {
	c := mustCompany(t)
	_, err := c.Subscribe(mustPlan(t, 1, "Basic", 2))
	require.NoError(t, err)
	u1, u2 := mustUser(t, 1, 1), mustUser(t, 2, 1)
	require.NoError(t, c.AddUser(u1))
	require.NoError(t, c.AddUser(u2))

	c.RemoveUser(mustUser(t, 1, 1)) // otra instancia, mismo ID
	require.Len(t, c.Users(), 1)
	assert.Equal(t, int64(2), c.Users()[0].ID())

	c.RemoveUser(mustUser(t, 99, 1))
	assert.Len(t, c.Users(), 1, "quitar un usuario ausente no hace nada")
	assert.True(t, c.CanAddMoreUsers())
}

// ── Cancel ────────────────────────────────────────────────────────────────────

func TestCancelActiveSubscription_Idempotente(t *testing.T) {
	c := mustCompany(t)
	assert.False(t, c.CancelActiveSubscription(), "sin suscripción no hay nada que cancelar")

	sub, err := c.Subscribe(mustPlan(t, 1, "Basic", 5))
	require.NoError(t, err)
	assert.True(t, c.CancelActiveSubscription())
	assert.False(t, c.HasActiveSubscription())
	require.NotNil(t, sub.EndDate())
	firstEnd := *sub.EndDate()

	sub.Cancel()
	assert.Equal(t, firstEnd, *sub.EndDate(), "cancelar de nuevo conserva la fecha de fin")
	assert.Equal(t, valueobject.StatusCancelled, sub.Status())
	assert.Len(t, c.Subscriptions(), 1, "el historial se conserva")
}

// ── Rehidratación ─────────────────────────────────────────────────────────────

func TestRestoreCompany_DeduceSuscripcionActiva(t *testing.T) {
	plan := mustPlan(t, 1, "Basic", 5)
	sub, err := entity.RestoreSubscription(10, 1, plan, valueobject.StatusActive, time.Now(), nil)
	require.NoError(t, err)
	email, _ := valueobject.NewEmail("a@acme.com")

	c, err := entity.RestoreCompany(1, "Acme", email, 3, []*entity.Subscription{sub}, nil)
	require.NoError(t, err)
	assert.Same(t, sub, c.ActiveSubscription())
	assert.Equal(t, 3, c.Version())
}

func TestRestoreCompany_DosActivasEsInvalido(t *testing.T) {
	plan := mustPlan(t, 1, "Basic", 5)
	s1, err := entity.RestoreSubscription(1, 1, plan, valueobject.StatusActive, time.Now(), nil)
	require.NoError(t, err)
	s2, err := entity.RestoreSubscription(2, 1, plan, valueobject.StatusActive, time.Now(), nil)
	require.NoError(t, err)
	email, _ := valueobject.NewEmail("a@acme.com")

	_, err = entity.RestoreCompany(1, "Acme", email, 1, []*entity.Subscription{s1, s2}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRestoreSubscription_CanceladaSinFechaDeFin(t *testing.T) {
	_, err := entity.RestoreSubscription(1, 1, mustPlan(t, 1, "Basic", 5), valueobject.StatusCancelled, time.Now(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

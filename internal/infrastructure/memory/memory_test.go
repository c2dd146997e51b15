package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
	"github.com/jhoicas/suscripciones-api/internal/infrastructure/memory"
)

func newPlan(t *testing.T, name string, limit int, features ...string) *entity.Plan {
	t.Helper()
	price, err := valueobject.NewMoney(decimal.NewFromInt(10), "USD")
	require.NoError(t, err)
	var list []valueobject.Feature
	for _, f := range features {
		feature, err := valueobject.NewFeature(f, "")
		require.NoError(t, err)
		list = append(list, feature)
	}
	p, err := entity.NewPlan(name, price, limit, list)
	require.NoError(t, err)
	return p
}

func newCompany(t *testing.T, email string) *entity.Company {
	t.Helper()
	e, err := valueobject.NewEmail(email)
	require.NoError(t, err)
	c, err := entity.NewCompany("Acme", e)
	require.NoError(t, err)
	return c
}

func newUser(t *testing.T, email string, companyID int64) *entity.EnterpriseUser {
	t.Helper()
	e, err := valueobject.NewEmail(email)
	require.NoError(t, err)
	u, err := entity.NewEnterpriseUser("Ana", e, valueobject.PasswordFromHash("hash"), companyID)
	require.NoError(t, err)
	return u
}

func TestPlanRepo_SaveAsignaIDYConservaCaracteristicas(t *testing.T) {
	ctx := context.Background()
	plans := memory.NewPlanRepository(memory.NewStore())

	p := newPlan(t, "Pro", 10, "API", "Soporte")
	require.NoError(t, plans.Save(ctx, p))
	assert.Equal(t, int64(1), p.ID())

	found, err := plans.FindByID(ctx, p.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Pro", found.Name())
	require.Len(t, found.Features(), 2)
	assert.Equal(t, "API", found.Features()[0].Name())
	assert.NotZero(t, found.Features()[0].ID())
}

func TestPlanRepo_FindByID_Inexistente(t *testing.T) {
	plans := memory.NewPlanRepository(memory.NewStore())
	found, err := plans.FindByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPlanRepo_DeleteReferenciadoDevuelveConflict(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	plans := memory.NewPlanRepository(store)
	companies := memory.NewCompanyRepository(store)

	p := newPlan(t, "Basic", 5)
	require.NoError(t, plans.Save(ctx, p))
	c := newCompany(t, "a@acme.com")
	_, err := c.Subscribe(p)
	require.NoError(t, err)
	require.NoError(t, companies.Save(ctx, c))

	err = plans.Delete(ctx, p.ID())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCompanyRepo_SaveYRecargaHistorial(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	plans := memory.NewPlanRepository(store)
	companies := memory.NewCompanyRepository(store)

	basic := newPlan(t, "Basic", 5)
	pro := newPlan(t, "Pro", 20)
	require.NoError(t, plans.Save(ctx, basic))
	require.NoError(t, plans.Save(ctx, pro))

	c := newCompany(t, "a@acme.com")
	_, err := c.Subscribe(basic)
	require.NoError(t, err)
	require.NoError(t, companies.Save(ctx, c))
	assert.Equal(t, 1, c.Version())

	_, err = c.Subscribe(pro)
	require.NoError(t, err)
	require.NoError(t, companies.Save(ctx, c))
	assert.Equal(t, 2, c.Version())

	found, err := companies.FindByID(ctx, c.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	subs := found.Subscriptions()
	require.Len(t, subs, 2)
	assert.Equal(t, valueobject.StatusCancelled, subs[0].Status())
	assert.NotNil(t, subs[0].EndDate())
	assert.Equal(t, "Pro", found.ActiveSubscription().Plan().Name())
	assert.Equal(t, c.ID(), found.ActiveSubscription().CompanyID())
}

func TestCompanyRepo_VersionDesactualizadaDevuelveConflict(t *testing.T) {
	ctx := context.Background()
	companies := memory.NewCompanyRepository(memory.NewStore())

	c := newCompany(t, "a@acme.com")
	require.NoError(t, companies.Save(ctx, c))

	first, err := companies.FindByID(ctx, c.ID())
	require.NoError(t, err)
	second, err := companies.FindByID(ctx, c.ID())
	require.NoError(t, err)

	require.NoError(t, companies.Save(ctx, first))
	assert.ErrorIs(t, companies.Save(ctx, second), domain.ErrConflict)
}

func TestCompanyRepo_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	companies := memory.NewCompanyRepository(memory.NewStore())

	require.NoError(t, companies.Save(ctx, newCompany(t, "a@acme.com")))
	err := companies.Save(ctx, newCompany(t, "A@acme.com"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyInUse)
}

func TestCompanyRepo_PlanInexistenteNoEscribeNada(t *testing.T) {
	ctx := context.Background()
	companies := memory.NewCompanyRepository(memory.NewStore())

	c := newCompany(t, "a@acme.com")
	_, err := c.Subscribe(newPlan(t, "Fantasma", 5))
	require.NoError(t, err)

	assert.ErrorIs(t, companies.Save(ctx, c), domain.ErrPlanNotFound)
	all, err := companies.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCompanyRepo_DeleteEnCascada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	plans := memory.NewPlanRepository(store)
	companies := memory.NewCompanyRepository(store)
	users := memory.NewEnterpriseUserRepository(store)

	p := newPlan(t, "Basic", 5)
	require.NoError(t, plans.Save(ctx, p))
	c := newCompany(t, "a@acme.com")
	_, err := c.Subscribe(p)
	require.NoError(t, err)
	require.NoError(t, companies.Save(ctx, c))
	require.NoError(t, users.Save(ctx, newUser(t, "ana@acme.com", c.ID())))

	require.NoError(t, companies.Delete(ctx, c.ID()))

	list, err := users.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, plans.Delete(ctx, p.ID()))
}

func TestCompanyRepo_CargaPadronDeUsuarios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	plans := memory.NewPlanRepository(store)
	companies := memory.NewCompanyRepository(store)
	users := memory.NewEnterpriseUserRepository(store)

	p := newPlan(t, "Basic", 5)
	require.NoError(t, plans.Save(ctx, p))
	c := newCompany(t, "a@acme.com")
	_, err := c.Subscribe(p)
	require.NoError(t, err)
	require.NoError(t, companies.Save(ctx, c))
	require.NoError(t, users.Save(ctx, newUser(t, "ana@acme.com", c.ID())))
	require.NoError(t, users.Save(ctx, newUser(t, "luis@acme.com", c.ID())))

	found, err := companies.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, found.SeatsUsed())
	assert.True(t, found.CanAddMoreUsers())
}

func TestEnterpriseUserRepo_EmpresaInexistente(t *testing.T) {
	users := memory.NewEnterpriseUserRepository(memory.NewStore())
	err := users.Save(context.Background(), newUser(t, "ana@acme.com", 42))
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestEnterpriseUserRepo_FindByEmailYPorEmpresa(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	companies := memory.NewCompanyRepository(store)
	users := memory.NewEnterpriseUserRepository(store)

	c := newCompany(t, "a@acme.com")
	require.NoError(t, companies.Save(ctx, c))
	u := newUser(t, "ana@acme.com", c.ID())
	require.NoError(t, users.Save(ctx, u))

	email, _ := valueobject.NewEmail("ANA@acme.com")
	found, err := users.FindByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID(), found.ID())

	byCompany, err := users.FindByCompany(ctx, c.ID())
	require.NoError(t, err)
	assert.Len(t, byCompany, 1)

	err = users.Save(ctx, newUser(t, "ana@acme.com", c.ID()))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyInUse)
}

func TestRepos_SaveConIDInexistente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	plans := memory.NewPlanRepository(store)
	companies := memory.NewCompanyRepository(store)
	users := memory.NewEnterpriseUserRepository(store)

	p := newPlan(t, "Pro", 10)
	p.SetID(42)
	assert.ErrorIs(t, plans.Save(ctx, p), domain.ErrPlanNotFound)

	c := newCompany(t, "acme@example.com")
	require.NoError(t, companies.Save(ctx, c))
	u := newUser(t, "ana@acme.com", c.ID())
	u.SetID(42)
	assert.ErrorIs(t, users.Save(ctx, u), domain.ErrUserNotFound)
}

func TestPlanRepo_MaxActiveSeatsSoloCuentaSuscripcionesActivas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	plans := memory.NewPlanRepository(store)
	companies := memory.NewCompanyRepository(store)
	users := memory.NewEnterpriseUserRepository(store)

	p := newPlan(t, "Basic", 5)
	require.NoError(t, plans.Save(ctx, p))
	seats, err := plans.MaxActiveSeats(ctx, p.ID())
	require.NoError(t, err)
	assert.Zero(t, seats)

	acme := newCompany(t, "a@acme.com")
	_, err = acme.Subscribe(p)
	require.NoError(t, err)
	require.NoError(t, companies.Save(ctx, acme))
	require.NoError(t, users.Save(ctx, newUser(t, "ana@acme.com", acme.ID())))

	otra := newCompany(t, "b@otra.com")
	_, err = otra.Subscribe(p)
	require.NoError(t, err)
	require.NoError(t, companies.Save(ctx, otra))
	for _, email := range []string{"x@otra.com", "y@otra.com", "z@otra.com"} {
		require.NoError(t, users.Save(ctx, newUser(t, email, otra.ID())))
	}

	seats, err = plans.MaxActiveSeats(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 3, seats)

	stored, err := companies.FindByID(ctx, otra.ID())
	require.NoError(t, err)
	require.True(t, stored.CancelActiveSubscription())
	require.NoError(t, companies.Save(ctx, stored))

	seats, err = plans.MaxActiveSeats(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, seats)
}

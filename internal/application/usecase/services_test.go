package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suscripciones-api/internal/application/dto"
	"github.com/jhoicas/suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/internal/infrastructure/memory"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type services struct {
	plans     *usecase.PlanService
	companies *usecase.CompanyService
	users     *usecase.EnterpriseUserService
}

func newServices() services {
	store := memory.NewStore()
	plans := memory.NewPlanRepository(store)
	companies := memory.NewCompanyRepository(store)
	users := memory.NewEnterpriseUserRepository(store)
	log := zerolog.Nop()
	return services{
		plans:     usecase.NewPlanService(plans, log),
		companies: usecase.NewCompanyService(companies, plans, log),
		users:     usecase.NewEnterpriseUserService(users, companies, log),
	}
}

func createPlan(t *testing.T, s services, name string, limit int) *dto.PlanResponse {
	t.Helper()
	p, err := s.plans.CreatePlan(context.Background(), dto.CreatePlanRequest{
		Name:         name,
		MonthlyPrice: price("29.99"),
		UserLimit:    limit,
	})
	require.NoError(t, err)
	return p
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func createCompany(t *testing.T, s services) *dto.CompanyResponse {
	t.Helper()
	c, err := s.companies.CreateCompany(context.Background(), dto.CreateCompanyRequest{Name: "Acme", Email: "a@acme.com"})
	require.NoError(t, err)
	return c
}

func userRequest(companyID int64, n int) dto.CreateEnterpriseUserRequest {
	return dto.CreateEnterpriseUserRequest{
		Name:      fmt.Sprintf("Usuario %d", n),
		Email:     fmt.Sprintf("user%d@acme.com", n),
		Password:  "secreto123",
		CompanyID: companyID,
	}
}

// ── PlanService ───────────────────────────────────────────────────────────────

func TestCreatePlan_FindPlanByIDDevuelveLimiteYPrecio(t *testing.T) {
	ctx := context.Background()
	s := newServices()

	created := createPlan(t, s, "Basic", 5)
	found, err := s.plans.FindPlanByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.UserLimit)
	assert.True(t, decimal.RequireFromString("29.99").Equal(found.MonthlyPrice))
	assert.Equal(t, "USD", found.Currency)
	assert.Empty(t, found.Features)
}

func TestCreatePlan_PrecioNegativo(t *testing.T) {
	s := newServices()
	_, err := s.plans.CreatePlan(context.Background(), dto.CreatePlanRequest{
		Name:         "Basic",
		MonthlyPrice: price("-1"),
		UserLimit:    5,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreatePlan_SinPrecio(t *testing.T) {
	s := newServices()
	_, err := s.plans.CreatePlan(context.Background(), dto.CreatePlanRequest{Name: "Basic", UserLimit: 5})
	assert.ErrorIs(t, err, domain.ErrMissingAmount)
}

func TestFindPlanByID_NoExiste(t *testing.T) {
	s := newServices()
	_, err := s.plans.FindPlanByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePlan_MezclaCamposYConservaID(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	created := createPlan(t, s, "Basic", 5)

	limit := 10
	updated, err := s.plans.UpdatePlan(ctx, created.ID, dto.UpdatePlanRequest{UserLimit: &limit})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Basic", updated.Name)
	assert.Equal(t, 10, updated.UserLimit)

	all, err := s.plans.FindAllPlans(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdatePlan_LimiteMenorQueElPadronSeRechaza(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Basic", 5)
	company := createCompany(t, s)
	_, err := s.companies.SubscribeToPlan(ctx, company.ID, plan.ID)
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		_, err := s.users.CreateUser(ctx, userRequest(company.ID, i))
		require.NoError(t, err)
	}

	limit := 2
	_, err = s.plans.UpdatePlan(ctx, plan.ID, dto.UpdatePlanRequest{UserLimit: &limit})
	assert.ErrorIs(t, err, domain.ErrSeatLimitReached)

	stored, err := s.plans.FindPlanByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.UserLimit)

	// Igual al padrón sí se permite.
	limit = 5
	_, err = s.plans.UpdatePlan(ctx, plan.ID, dto.UpdatePlanRequest{UserLimit: &limit})
	require.NoError(t, err)
}

func TestUpdatePlan_LimiteMenorSinEmpresasActivas(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Basic", 5)
	company := createCompany(t, s)
	_, err := s.companies.SubscribeToPlan(ctx, company.ID, plan.ID)
	require.NoError(t, err)
	for i := 1; i <= 3; i++ {
		_, err := s.users.CreateUser(ctx, userRequest(company.ID, i))
		require.NoError(t, err)
	}
	_, err = s.companies.CancelSubscription(ctx, company.ID)
	require.NoError(t, err)

	limit := 1
	updated, err := s.plans.UpdatePlan(ctx, plan.ID, dto.UpdatePlanRequest{UserLimit: &limit})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.UserLimit)
}

func TestAddYRemoveFeature(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	created := createPlan(t, s, "Pro", 20)

	withFeature, err := s.plans.AddFeatureToPlan(ctx, created.ID, dto.FeatureDTO{Name: "API", Description: "Acceso a la API"})
	require.NoError(t, err)
	require.Len(t, withFeature.Features, 1)

	// Misma descripción distinta: no coincide y no se quita nada.
	same, err := s.plans.RemoveFeatureFromPlan(ctx, created.ID, dto.FeatureDTO{Name: "API", Description: "otra"})
	require.NoError(t, err)
	assert.Len(t, same.Features, 1)

	without, err := s.plans.RemoveFeatureFromPlan(ctx, created.ID, dto.FeatureDTO{Name: "API", Description: "Acceso a la API"})
	require.NoError(t, err)
	assert.Empty(t, without.Features)
}

func TestDeletePlan_EnUsoDevuelveConflict(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Basic", 5)
	company := createCompany(t, s)
	_, err := s.companies.SubscribeToPlan(ctx, company.ID, plan.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, s.plans.DeletePlan(ctx, plan.ID), domain.ErrConflict)
	assert.ErrorIs(t, s.plans.DeletePlan(ctx, 999), domain.ErrNotFound)
}

// ── CompanyService ────────────────────────────────────────────────────────────

func TestCreateCompany_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	createCompany(t, s)

	_, err := s.companies.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "Otra", Email: "A@ACME.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyInUse)
}

func TestSubscribeToPlan_ReemplazaSuscripcionActiva(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	basic := createPlan(t, s, "Basic", 5)
	pro := createPlan(t, s, "Pro", 20)
	company := createCompany(t, s)

	out, err := s.companies.SubscribeToPlan(ctx, company.ID, basic.ID)
	require.NoError(t, err)
	require.NotNil(t, out.ActiveSubscription)
	assert.Equal(t, "active", out.ActiveSubscription.Status)

	out, err = s.companies.SubscribeToPlan(ctx, company.ID, pro.ID)
	require.NoError(t, err)
	assert.Equal(t, pro.ID, out.ActiveSubscription.PlanID)

	history, err := s.companies.ListSubscriptions(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "cancelled", history[0].Status)
	assert.NotNil(t, history[0].EndsAt)
	assert.Equal(t, "active", history[1].Status)
	assert.Nil(t, history[1].EndsAt)
}

func TestSubscribeToPlan_PlanOEmpresaInexistente(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Basic", 5)
	company := createCompany(t, s)

	_, err := s.companies.SubscribeToPlan(ctx, company.ID, 999)
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	_, err = s.companies.SubscribeToPlan(ctx, 999, plan.ID)
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestSubscribeToPlan_DowngradeConPadronExcedidoSeRechaza(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	pro := createPlan(t, s, "Pro", 5)
	tiny := createPlan(t, s, "Tiny", 1)
	company := createCompany(t, s)
	_, err := s.companies.SubscribeToPlan(ctx, company.ID, pro.ID)
	require.NoError(t, err)
	for i := 1; i <= 2; i++ {
		_, err := s.users.CreateUser(ctx, userRequest(company.ID, i))
		require.NoError(t, err)
	}

	_, err = s.companies.SubscribeToPlan(ctx, company.ID, tiny.ID)
	assert.ErrorIs(t, err, domain.ErrSeatLimitReached)

	found, err := s.companies.FindCompanyByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, pro.ID, found.ActiveSubscription.PlanID)
}

func TestCancelSubscription_IdempotenteYSinActiva(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Basic", 5)
	company := createCompany(t, s)

	out, err := s.companies.CancelSubscription(ctx, company.ID)
	require.NoError(t, err, "cancelar sin suscripción es un no-op")
	assert.Nil(t, out.ActiveSubscription)

	_, err = s.companies.SubscribeToPlan(ctx, company.ID, plan.ID)
	require.NoError(t, err)
	out, err = s.companies.CancelSubscription(ctx, company.ID)
	require.NoError(t, err)
	assert.Nil(t, out.ActiveSubscription)

	history, err := s.companies.ListSubscriptions(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	endedAt := history[0].EndsAt

	_, err = s.companies.CancelSubscription(ctx, company.ID)
	require.NoError(t, err)
	history, err = s.companies.ListSubscriptions(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, endedAt, history[0].EndsAt, "la fecha de fin no cambia al cancelar de nuevo")
}

func TestUpdateCompany_ConservaHistorialYPadron(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Basic", 5)
	company := createCompany(t, s)
	_, err := s.companies.SubscribeToPlan(ctx, company.ID, plan.ID)
	require.NoError(t, err)
	_, err = s.users.CreateUser(ctx, userRequest(company.ID, 1))
	require.NoError(t, err)

	name := "Acme S.A.S."
	email := "contacto@acme.com"
	out, err := s.companies.UpdateCompany(ctx, company.ID, dto.UpdateCompanyRequest{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.Equal(t, email, out.Email)
	assert.NotNil(t, out.ActiveSubscription)
	assert.Equal(t, 1, out.SeatsUsed)

	byEmail, err := s.companies.FindCompanyByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, company.ID, byEmail.ID)
}

func TestDeleteCompany_EliminaUsuarios(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Basic", 5)
	company := createCompany(t, s)
	_, err := s.companies.SubscribeToPlan(ctx, company.ID, plan.ID)
	require.NoError(t, err)
	_, err = s.users.CreateUser(ctx, userRequest(company.ID, 1))
	require.NoError(t, err)

	require.NoError(t, s.companies.DeleteCompany(ctx, company.ID))

	_, err = s.companies.FindCompanyByID(ctx, company.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	all, err := s.users.FindAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// ── EnterpriseUserService ─────────────────────────────────────────────────────

func TestCreateUser_SinSuscripcionActiva(t *testing.T) {
	s := newServices()
	company := createCompany(t, s)

	_, err := s.users.CreateUser(context.Background(), userRequest(company.ID, 1))
	assert.ErrorIs(t, err, domain.ErrNoActiveSubscription)
}

func TestCreateUser_EmpresaInexistente(t *testing.T) {
	s := newServices()
	_, err := s.users.CreateUser(context.Background(), userRequest(999, 1))
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestCreateUser_LimiteDeAsientos(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Basic", 5)
	company := createCompany(t, s)
	_, err := s.companies.SubscribeToPlan(ctx, company.ID, plan.ID)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		_, err := s.users.CreateUser(ctx, userRequest(company.ID, i))
		require.NoError(t, err)
	}
	_, err = s.users.CreateUser(ctx, userRequest(company.ID, 6))
	assert.ErrorIs(t, err, domain.ErrSeatLimitReached)

	roster, err := s.users.FindUsersByCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 5)
}

func TestCreateUser_LimiteSeReportaAntesQueEmailDuplicado(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Solo", 1)
	company := createCompany(t, s)
	_, err := s.companies.SubscribeToPlan(ctx, company.ID, plan.ID)
	require.NoError(t, err)
	_, err = s.users.CreateUser(ctx, userRequest(company.ID, 1))
	require.NoError(t, err)

	_, err = s.users.CreateUser(ctx, userRequest(company.ID, 1))
	assert.ErrorIs(t, err, domain.ErrSeatLimitReached)
}

func TestCreateUser_EmailDuplicadoEntreEmpresas(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Basic", 5)
	acme := createCompany(t, s)
	other, err := s.companies.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "Otra", Email: "b@otra.com"})
	require.NoError(t, err)
	for _, id := range []int64{acme.ID, other.ID} {
		_, err := s.companies.SubscribeToPlan(ctx, id, plan.ID)
		require.NoError(t, err)
	}
	_, err = s.users.CreateUser(ctx, userRequest(acme.ID, 1))
	require.NoError(t, err)

	_, err = s.users.CreateUser(ctx, userRequest(other.ID, 1))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyInUse)
}

func TestDeleteUser_LiberaAsiento(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Solo", 1)
	company := createCompany(t, s)
	_, err := s.companies.SubscribeToPlan(ctx, company.ID, plan.ID)
	require.NoError(t, err)
	first, err := s.users.CreateUser(ctx, userRequest(company.ID, 1))
	require.NoError(t, err)

	require.NoError(t, s.users.DeleteUser(ctx, first.ID))
	_, err = s.users.CreateUser(ctx, userRequest(company.ID, 2))
	assert.NoError(t, err)
	assert.ErrorIs(t, s.users.DeleteUser(ctx, first.ID), domain.ErrNotFound)
}

func TestUpdateUser_CambiaPasswordSoloSiViene(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Basic", 5)
	company := createCompany(t, s)
	_, err := s.companies.SubscribeToPlan(ctx, company.ID, plan.ID)
	require.NoError(t, err)
	user, err := s.users.CreateUser(ctx, userRequest(company.ID, 1))
	require.NoError(t, err)

	name := "Ana María"
	_, err = s.users.UpdateUser(ctx, user.ID, dto.UpdateEnterpriseUserRequest{Name: &name})
	require.NoError(t, err)
	ok, err := s.users.Authenticate(ctx, "user1@acme.com", "secreto123")
	require.NoError(t, err)
	require.NotNil(t, ok)
	assert.Equal(t, name, ok.Name)

	password := "nuevoSecreto1"
	_, err = s.users.UpdateUser(ctx, user.ID, dto.UpdateEnterpriseUserRequest{Password: &password})
	require.NoError(t, err)
	old, err := s.users.Authenticate(ctx, "user1@acme.com", "secreto123")
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestAuthenticate_FallaSinErrorYExitoRegistraIngreso(t *testing.T) {
	ctx := context.Background()
	s := newServices()
	plan := createPlan(t, s, "Basic", 5)
	company := createCompany(t, s)
	_, err := s.companies.SubscribeToPlan(ctx, company.ID, plan.ID)
	require.NoError(t, err)
	created, err := s.users.CreateUser(ctx, userRequest(company.ID, 1))
	require.NoError(t, err)
	require.Nil(t, created.LastLoginAt)

	bad, err := s.users.Authenticate(ctx, "user1@acme.com", "incorrecta")
	require.NoError(t, err)
	assert.Nil(t, bad)

	unknown, err := s.users.Authenticate(ctx, "nadie@acme.com", "secreto123")
	require.NoError(t, err)
	assert.Nil(t, unknown)

	first, err := s.users.Authenticate(ctx, "user1@acme.com", "secreto123")
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotNil(t, first.LastLoginAt)

	second, err := s.users.Authenticate(ctx, "user1@acme.com", "secreto123")
	require.NoError(t, err)
	require.NotNil(t, second.LastLoginAt)
	assert.False(t, second.LastLoginAt.Before(*first.LastLoginAt))

	stored, err := s.users.FindUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, second.LastLoginAt.UnixNano(), stored.LastLoginAt.UnixNano())
}

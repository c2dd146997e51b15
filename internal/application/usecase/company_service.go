package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/suscripciones-api/internal/application/dto"
	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/suscripciones-api/internal/domain/repository"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
)

// CompanyService casos de uso del agregado Company: alta, suscripción y cancelación.
type CompanyService struct {
	companies repository.CompanyRepository
	plans     repository.PlanRepository
	log       zerolog.Logger
}

// NewCompanyService construye el servicio con sus puertos.
func NewCompanyService(companies repository.CompanyRepository, plans repository.PlanRepository, log zerolog.Logger) *CompanyService {
	return &CompanyService{
		companies: companies,
		plans:     plans,
		log:       log.With().Str("service", "company").Logger(),
	}
}

// CreateCompany crea una empresa sin suscripción. El email es único entre empresas.
func (s *CompanyService) CreateCompany(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	email, err := valueobject.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	existing, err := s.companies.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyInUse
	}
	company, err := entity.NewCompany(in.Name, email)
	if err != nil {
		return nil, err
	}
	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}
	s.log.Info().Int64("company_id", company.ID()).Msg("empresa creada")
	return toCompanyResponse(company), nil
}

// FindCompanyByID devuelve domain.ErrCompanyNotFound si no existe.
func (s *CompanyService) FindCompanyByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	company, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func (s *CompanyService) FindCompanyByEmail(ctx context.Context, raw string) (*dto.CompanyResponse, error) {
	email, err := valueobject.NewEmail(raw)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return toCompanyResponse(company), nil
}

func (s *CompanyService) FindAllCompanies(ctx context.Context) ([]dto.CompanyResponse, error) {
	list, err := s.companies.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCompanyResponse(c))
	}
	return out, nil
}

// UpdateCompany reconstruye la empresa con los datos nuevos bajo el mismo ID y versión,
// conservando historial de suscripciones y padrón.
func (s *CompanyService) UpdateCompany(ctx context.Context, id int64, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	name := current.Name()
	if in.Name != nil {
		name = *in.Name
	}
	email := current.Email()
	if in.Email != nil {
		if email, err = valueobject.NewEmail(*in.Email); err != nil {
			return nil, err
		}
		if !email.Equals(current.Email()) {
			other, err := s.companies.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID() != id {
				return nil, domain.ErrEmailAlreadyInUse
			}
		}
	}

	updated, err := entity.RestoreCompany(id, name, email, current.Version(), current.Subscriptions(), current.Users())
	if err != nil {
		return nil, err
	}
	if err := s.companies.Save(ctx, updated); err != nil {
		return nil, err
	}
	return toCompanyResponse(updated), nil
}

// DeleteCompany elimina la empresa junto con su historial y usuarios.
func (s *CompanyService) DeleteCompany(ctx context.Context, id int64) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("company_id", id).Msg("empresa eliminada")
	return nil
}

// SubscribeToPlan cancela la suscripción activa (si hay) y activa una nueva sobre el plan.
// Ambos cambios se persisten juntos con el guardado del agregado.
func (s *CompanyService) SubscribeToPlan(ctx context.Context, companyID, planID int64) (*dto.CompanyResponse, error) {
	company, err := s.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}

	var previous int64
	if active := company.ActiveSubscription(); active != nil {
		previous = active.Plan().ID()
	}
	if _, err := company.Subscribe(plan); err != nil {
		s.log.Warn().Err(err).
			Int64("company_id", companyID).
			Int64("plan_id", planID).
			Int("seats_used", company.SeatsUsed()).
			Msg("suscripción rechazada")
		return nil, err
	}
	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}
	s.log.Info().
		Int64("company_id", companyID).
		Int64("plan_id", planID).
		Int64("previous_plan_id", previous).
		Msg("empresa suscrita")
	return toCompanyResponse(company), nil
}

// CancelSubscription cancela la suscripción activa. Sin suscripción activa es un no-op exitoso.
func (s *CompanyService) CancelSubscription(ctx context.Context, companyID int64) (*dto.CompanyResponse, error) {
	company, err := s.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if !company.CancelActiveSubscription() {
		return toCompanyResponse(company), nil
	}
	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}
	s.log.Info().Int64("company_id", companyID).Msg("suscripción cancelada")
	return toCompanyResponse(company), nil
}

// ListSubscriptions historial completo en orden de creación.
func (s *CompanyService) ListSubscriptions(ctx context.Context, companyID int64) ([]dto.SubscriptionResponse, error) {
	company, err := s.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	subs := company.Subscriptions()
	out := make([]dto.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, *toSubscriptionResponse(sub))
	}
	return out, nil
}

func (s *CompanyService) load(ctx context.Context, id int64) (*entity.Company, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return company, nil
}

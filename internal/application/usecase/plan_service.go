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

// PlanService casos de uso del catálogo de planes.
type PlanService struct {
	plans repository.PlanRepository
	log   zerolog.Logger
}

// NewPlanService construye el servicio con el puerto de persistencia.
func NewPlanService(plans repository.PlanRepository, log zerolog.Logger) *PlanService {
	return &PlanService{plans: plans, log: log.With().Str("service", "plan").Logger()}
}

// CreatePlan valida precio y características, construye el plan y lo persiste.
func (s *PlanService) CreatePlan(ctx context.Context, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if in.MonthlyPrice == nil {
		return nil, domain.ErrMissingAmount
	}
	price, err := valueobject.NewMoney(*in.MonthlyPrice, in.Currency)
	if err != nil {
		return nil, err
	}
	features, err := toFeatures(in.Features)
	if err != nil {
		return nil, err
	}
	plan, err := entity.NewPlan(in.Name, price, in.UserLimit, features)
	if err != nil {
		return nil, err
	}
	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	s.log.Info().Int64("plan_id", plan.ID()).Str("name", plan.Name()).Msg("plan creado")
	return toPlanResponse(plan), nil
}

// FindPlanByID devuelve domain.ErrPlanNotFound si no existe.
func (s *PlanService) FindPlanByID(ctx context.Context, id int64) (*dto.PlanResponse, error) {
	plan, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

func (s *PlanService) FindAllPlans(ctx context.Context) ([]dto.PlanResponse, error) {
	list, err := s.plans.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPlanResponse(p))
	}
	return out, nil
}

// UpdatePlan mezcla los campos recibidos con el plan actual y reemplaza el plan completo bajo el mismo ID.
// Bajar user_limit por debajo del padrón de una empresa suscrita devuelve domain.ErrSeatLimitReached.
func (s *PlanService) UpdatePlan(ctx context.Context, id int64, in dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	name := current.Name()
	if in.Name != nil {
		name = *in.Name
	}
	amount := current.MonthlyPrice().Amount()
	if in.MonthlyPrice != nil {
		amount = *in.MonthlyPrice
	}
	code := current.MonthlyPrice().Currency()
	if in.Currency != nil {
		code = *in.Currency
	}
	limit := current.UserLimit()
	if in.UserLimit != nil {
		limit = *in.UserLimit
	}
	features := current.Features()
	if in.Features != nil {
		if features, err = toFeatures(*in.Features); err != nil {
			return nil, err
		}
	}

	price, err := valueobject.NewMoney(amount, code)
	if err != nil {
		return nil, err
	}
	updated, err := entity.RestorePlan(id, name, price, limit, features)
	if err != nil {
		return nil, err
	}
	if limit < current.UserLimit() {
		seats, err := s.plans.MaxActiveSeats(ctx, id)
		if err != nil {
			return nil, err
		}
		if seats > limit {
			return nil, domain.ErrSeatLimitReached
		}
	}
	if err := s.plans.Save(ctx, updated); err != nil {
		return nil, err
	}
	s.log.Info().Int64("plan_id", id).Msg("plan actualizado")
	return toPlanResponse(updated), nil
}

// DeletePlan falla con domain.ErrConflict si alguna suscripción (activa o histórica) usa el plan.
func (s *PlanService) DeletePlan(ctx context.Context, id int64) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.plans.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("plan_id", id).Msg("plan eliminado")
	return nil
}

// AddFeatureToPlan agrega una característica al final de la lista.
func (s *PlanService) AddFeatureToPlan(ctx context.Context, id int64, in dto.FeatureDTO) (*dto.PlanResponse, error) {
	plan, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	feature, err := valueobject.NewFeature(in.Name, in.Description)
	if err != nil {
		return nil, err
	}
	plan.AddFeature(feature)
	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// RemoveFeatureFromPlan quita las características iguales por nombre y descripción; si no hay ninguna no hace nada.
func (s *PlanService) RemoveFeatureFromPlan(ctx context.Context, id int64, in dto.FeatureDTO) (*dto.PlanResponse, error) {
	plan, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	feature, err := valueobject.NewFeature(in.Name, in.Description)
	if err != nil {
		return nil, err
	}
	if plan.RemoveFeature(feature) == 0 {
		return toPlanResponse(plan), nil
	}
	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

func (s *PlanService) load(ctx context.Context, id int64) (*entity.Plan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}
	return plan, nil
}

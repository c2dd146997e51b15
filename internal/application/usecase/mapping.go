package usecase

import (
	"github.com/jhoicas/suscripciones-api/internal/application/dto"
	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
)

func toFeatures(in []dto.FeatureDTO) ([]valueobject.Feature, error) {
	out := make([]valueobject.Feature, 0, len(in))
	for _, f := range in {
		feature, err := valueobject.NewFeature(f.Name, f.Description)
		if err != nil {
			return nil, err
		}
		out = append(out, feature)
	}
	return out, nil
}

func toPlanResponse(p *entity.Plan) *dto.PlanResponse {
	if p == nil {
		return nil
	}
	features := make([]dto.FeatureDTO, 0, len(p.Features()))
	for _, f := range p.Features() {
		features = append(features, dto.FeatureDTO{Name: f.Name(), Description: f.Description()})
	}
	return &dto.PlanResponse{
		ID:           p.ID(),
		Name:         p.Name(),
		MonthlyPrice: p.MonthlyPrice().Amount(),
		Currency:     p.MonthlyPrice().Currency(),
		UserLimit:    p.UserLimit(),
		Features:     features,
	}
}

func toSubscriptionResponse(s *entity.Subscription) *dto.SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &dto.SubscriptionResponse{
		ID:       s.ID(),
		PlanID:   s.Plan().ID(),
		PlanName: s.Plan().Name(),
		StartsAt: s.StartDate(),
		EndsAt:   s.EndDate(),
		Status:   s.Status().String(),
	}
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                 c.ID(),
		Name:               c.Name(),
		Email:              c.Email().String(),
		ActiveSubscription: toSubscriptionResponse(c.ActiveSubscription()),
		SeatsUsed:          c.SeatsUsed(),
	}
}

func toEnterpriseUserResponse(u *entity.EnterpriseUser) *dto.EnterpriseUserResponse {
	if u == nil {
		return nil
	}
	return &dto.EnterpriseUserResponse{
		ID:          u.ID(),
		Name:        u.Name(),
		Email:       u.Email().String(),
		CompanyID:   u.CompanyID(),
		LastLoginAt: u.LastLoginAt(),
	}
}

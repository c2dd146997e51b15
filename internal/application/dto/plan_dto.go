package dto

import "github.com/shopspring/decimal"

// FeatureDTO característica de un plan.
type FeatureDTO struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

// CreatePlanRequest entrada para crear un plan. Currency vacío = USD.
type CreatePlanRequest struct {
	Name         string           `json:"name" validate:"required,max=255"`
	MonthlyPrice *decimal.Decimal `json:"monthly_price" validate:"required" swaggertype:"string" example:"29.99"`
	Currency     string           `json:"currency" validate:"omitempty,len=3"`
	UserLimit    int              `json:"user_limit" validate:"required,min=1"`
	Features     []FeatureDTO     `json:"features" validate:"dive"`
}

// UpdatePlanRequest campos opcionales; el servicio los mezcla con el plan actual y lo reconstruye.
type UpdatePlanRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=255"`
	MonthlyPrice *decimal.Decimal `json:"monthly_price" swaggertype:"string"`
	Currency     *string          `json:"currency" validate:"omitempty,len=3"`
	UserLimit    *int             `json:"user_limit" validate:"omitempty,min=1"`
	Features     *[]FeatureDTO    `json:"features" validate:"omitempty,dive"`
}

// PlanResponse salida de un plan.
type PlanResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthly_price" swaggertype:"string"`
	Currency     string          `json:"currency"`
	UserLimit    int             `json:"user_limit"`
	Features     []FeatureDTO    `json:"features"`
}

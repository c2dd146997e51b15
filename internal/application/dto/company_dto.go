package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// SubscribeRequest entrada para suscribir una empresa a un plan.
type SubscribeRequest struct {
	PlanID int64 `json:"plan_id" validate:"required,gt=0"`
}

// SubscriptionResponse resumen de una suscripción.
type SubscriptionResponse struct {
	ID       int64      `json:"id"`
	PlanID   int64      `json:"plan_id"`
	PlanName string     `json:"plan_name"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Status   string     `json:"status"`
}

// CompanyResponse salida de una empresa. ActiveSubscription es null si no hay suscripción activa.
type CompanyResponse struct {
	ID                 int64                 `json:"id"`
	Name               string                `json:"name"`
	Email              string                `json:"email"`
	ActiveSubscription *SubscriptionResponse `json:"active_subscription"`
	SeatsUsed          int                   `json:"seats_used"`
}

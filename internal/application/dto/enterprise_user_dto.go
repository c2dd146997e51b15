package dto

import "time"

// CreateEnterpriseUserRequest entrada para crear un usuario (password en texto, se hashea en el dominio).
type CreateEnterpriseUserRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	CompanyID int64  `json:"company_id" validate:"required,gt=0"`
}

// UpdateEnterpriseUserRequest campos opcionales; password solo se re-hashea si viene.
type UpdateEnterpriseUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// EnterpriseUserResponse salida de un usuario (sin password).
type EnterpriseUserResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CompanyID   int64      `json:"company_id"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y usuario autenticado.
type LoginResponse struct {
	Token     string                 `json:"token"`
	TokenType string                 `json:"token_type"`
	ExpiresIn int                    `json:"expires_in"`
	User      EnterpriseUserResponse `json:"user"`
}

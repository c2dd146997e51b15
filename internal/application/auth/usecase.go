package auth

import (
	"context"

	"github.com/jhoicas/suscripciones-api/internal/application/dto"
	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Authenticator verifica credenciales; (nil, nil) significa credenciales inválidas.
// Lo implementa usecase.EnterpriseUserService.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*dto.EnterpriseUserResponse, error)
}

// LoginUseCase autentica usuarios empresariales y emite el JWT.
type LoginUseCase struct {
	users  Authenticator
	jwtCfg JWTConfig
}

// NewLoginUseCase construye el caso de uso de login.
func NewLoginUseCase(users Authenticator, jwtCfg JWTConfig) *LoginUseCase {
	return &LoginUseCase{users: users, jwtCfg: jwtCfg}
}

// Login devuelve domain.ErrInvalidCredentials si el email no existe o la contraseña no coincide.
func (uc *LoginUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      *user,
	}, nil
}

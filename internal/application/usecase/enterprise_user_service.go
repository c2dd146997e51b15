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

// EnterpriseUserService casos de uso de usuarios empresariales: alta con control de asientos y autenticación.
type EnterpriseUserService struct {
	users     repository.EnterpriseUserRepository
	companies repository.CompanyRepository
	log       zerolog.Logger
}

// NewEnterpriseUserService construye el servicio con sus puertos.
func NewEnterpriseUserService(users repository.EnterpriseUserRepository, companies repository.CompanyRepository, log zerolog.Logger) *EnterpriseUserService {
	return &EnterpriseUserService{
		users:     users,
		companies: companies,
		log:       log.With().Str("service", "enterprise_user").Logger(),
	}
}

// CreateUser valida en orden: empresa existe, tiene suscripción activa, hay asiento libre y el email no está en uso
// (unicidad global, no por empresa).
func (s *EnterpriseUserService) CreateUser(ctx context.Context, in dto.CreateEnterpriseUserRequest) (*dto.EnterpriseUserResponse, error) {
	company, err := s.companies.FindByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	if !company.HasActiveSubscription() {
		return nil, domain.ErrNoActiveSubscription
	}
	if !company.CanAddMoreUsers() {
		s.log.Warn().
			Int64("company_id", company.ID()).
			Int("seats_used", company.SeatsUsed()).
			Int("user_limit", company.ActiveSubscription().Plan().UserLimit()).
			Msg("límite de usuarios alcanzado")
		return nil, domain.ErrSeatLimitReached
	}

	email, err := valueobject.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyInUse
	}

	password, err := valueobject.NewPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user, err := entity.NewEnterpriseUser(in.Name, email, password, company.ID())
	if err != nil {
		return nil, err
	}
	if err := company.AddUser(user); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", user.ID()).Int64("company_id", company.ID()).Msg("usuario creado")
	return toEnterpriseUserResponse(user), nil
}

// FindUserByID devuelve domain.ErrUserNotFound si no existe.
func (s *EnterpriseUserService) FindUserByID(ctx context.Context, id int64) (*dto.EnterpriseUserResponse, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEnterpriseUserResponse(user), nil
}

func (s *EnterpriseUserService) FindUserByEmail(ctx context.Context, raw string) (*dto.EnterpriseUserResponse, error) {
	email, err := valueobject.NewEmail(raw)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toEnterpriseUserResponse(user), nil
}

// FindUsersByCompany lista el padrón; falla con domain.ErrCompanyNotFound si la empresa no existe.
func (s *EnterpriseUserService) FindUsersByCompany(ctx context.Context, companyID int64) ([]dto.EnterpriseUserResponse, error) {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	list, err := s.users.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return toEnterpriseUserList(list), nil
}

func (s *EnterpriseUserService) FindAllUsers(ctx context.Context) ([]dto.EnterpriseUserResponse, error) {
	list, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toEnterpriseUserList(list), nil
}

// UpdateUser aplica nombre, email y (opcionalmente) password. El email sigue siendo único.
func (s *EnterpriseUserService) UpdateUser(ctx context.Context, id int64, in dto.UpdateEnterpriseUserRequest) (*dto.EnterpriseUserResponse, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if err := user.SetName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		email, err := valueobject.NewEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if !email.Equals(user.Email()) {
			other, err := s.users.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID() != id {
				return nil, domain.ErrEmailAlreadyInUse
			}
		}
		user.SetEmail(email)
	}
	if in.Password != nil && *in.Password != "" {
		password, err := valueobject.NewPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.SetPassword(password)
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return toEnterpriseUserResponse(user), nil
}

// DeleteUser elimina al usuario y libera el asiento. El padrón de la empresa se arma
// desde enterprise_users, así que no hay que guardar la empresa.
func (s *EnterpriseUserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", id).Int64("company_id", user.CompanyID()).Msg("usuario eliminado")
	return nil
}

// Authenticate devuelve (nil, nil) si el email no existe o la contraseña no coincide; no distingue
// ambos casos. En éxito registra el último ingreso y lo persiste.
func (s *EnterpriseUserService) Authenticate(ctx context.Context, rawEmail, password string) (*dto.EnterpriseUserResponse, error) {
	email, err := valueobject.NewEmail(rawEmail)
	if err != nil {
		s.log.Debug().Msg("login con email mal formado")
		return nil, nil
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.VerifyPassword(password) {
		s.log.Debug().Str("email", email.String()).Msg("credenciales inválidas")
		return nil, nil
	}
	user.UpdateLastLogin()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return toEnterpriseUserResponse(user), nil
}

func (s *EnterpriseUserService) load(ctx context.Context, id int64) (*entity.EnterpriseUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func toEnterpriseUserList(list []*entity.EnterpriseUser) []dto.EnterpriseUserResponse {
	out := make([]dto.EnterpriseUserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toEnterpriseUserResponse(u))
	}
	return out
}

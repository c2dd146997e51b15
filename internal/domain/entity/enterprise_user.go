package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
)

// EnterpriseUser usuario que ocupa un asiento del plan de su empresa.
// Guarda el ID de la empresa como referencia; no es dueño de ella.
type EnterpriseUser struct {
	id          int64
	name        string
	email       valueobject.Email
	password    valueobject.Password
	companyID   int64
	lastLoginAt *time.Time
}

// NewEnterpriseUser construye un usuario sin persistir.
func NewEnterpriseUser(name string, email valueobject.Email, password valueobject.Password, companyID int64) (*EnterpriseUser, error) {
	return RestoreEnterpriseUser(0, name, email, password, companyID, nil)
}

// RestoreEnterpriseUser rehidrata un usuario desde almacenamiento.
func RestoreEnterpriseUser(id int64, name string, email valueobject.Email, password valueobject.Password, companyID int64, lastLoginAt *time.Time) (*EnterpriseUser, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrEmptyName
	}
	if email.IsZero() {
		return nil, domain.ErrInvalidEmail
	}
	if companyID <= 0 {
		return nil, domain.ErrCompanyNotFound
	}
	return &EnterpriseUser{
		id:          id,
		name:        name,
		email:       email,
		password:    password,
		companyID:   companyID,
		lastLoginAt: lastLoginAt,
	}, nil
}

func (u *EnterpriseUser) ID() int64                      { return u.id }
func (u *EnterpriseUser) Name() string                   { return u.name }
func (u *EnterpriseUser) Email() valueobject.Email       { return u.email }
func (u *EnterpriseUser) Password() valueobject.Password { return u.password }
func (u *EnterpriseUser) CompanyID() int64               { return u.companyID }
func (u *EnterpriseUser) LastLoginAt() *time.Time        { return u.lastLoginAt }

// SetID lo usa el repositorio al insertar.
func (u *EnterpriseUser) SetID(id int64) { u.id = id }

// VerifyPassword delega en Password.Verify.
func (u *EnterpriseUser) VerifyPassword(candidate string) bool {
	return u.password.Verify(candidate)
}

// UpdateLastLogin registra el instante actual como último ingreso.
func (u *EnterpriseUser) UpdateLastLogin() {
	now := time.Now()
	u.lastLoginAt = &now
}

func (u *EnterpriseUser) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrEmptyName
	}
	u.name = name
	return nil
}

func (u *EnterpriseUser) SetEmail(email valueobject.Email) { u.email = email }

func (u *EnterpriseUser) SetPassword(p valueobject.Password) { u.password = p }

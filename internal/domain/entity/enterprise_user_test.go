package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suscripciones-api/internal/domain"
	"github.com/jhoicas/suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/suscripciones-api/internal/domain/valueobject"
)

func TestEnterpriseUser_VerifyPasswordYLastLogin(t *testing.T) {
	email, _ := valueobject.NewEmail("john@acme.com")
	pw, err := valueobject.NewPassword("secret1234")
	require.NoError(t, err)
	u, err := entity.NewEnterpriseUser("John", email, pw, 1)
	require.NoError(t, err)

	assert.True(t, u.VerifyPassword("secret1234"))
	assert.False(t, u.VerifyPassword("nope"))
	assert.Nil(t, u.LastLoginAt())

	u.UpdateLastLogin()
	first := u.LastLoginAt()
	require.NotNil(t, first)
	u.UpdateLastLogin()
	assert.False(t, u.LastLoginAt().Before(*first))
}

func TestEnterpriseUser_RequiereEmpresa(t *testing.T) {
	email, _ := valueobject.NewEmail("john@acme.com")
	_, err := entity.NewEnterpriseUser("John", email, valueobject.PasswordFromHash("x"), 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnterpriseUser_Setters(t *testing.T) {
	email, _ := valueobject.NewEmail("john@acme.com")
	u, err := entity.NewEnterpriseUser("John", email, valueobject.PasswordFromHash("x"), 1)
	require.NoError(t, err)

	assert.ErrorIs(t, u.SetName(" "), domain.ErrEmptyName)
	require.NoError(t, u.SetName("Johnny"))
	assert.Equal(t, "Johnny", u.Name())

	other, _ := valueobject.NewEmail("johnny@acme.com")
	u.SetEmail(other)
	assert.Equal(t, "johnny@acme.com", u.Email().String())

	pw, _ := valueobject.NewPassword("nueva-clave")
	u.SetPassword(pw)
	assert.True(t, u.VerifyPassword("nueva-clave"))
}

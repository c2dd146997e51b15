package valueobject

import (
	"fmt"

	"github.com/jhoicas/suscripciones-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Password contraseña almacenada solo como hash bcrypt; el texto plano nunca se conserva.
type Password struct {
	hash string
}

// NewPassword hashea el texto plano con bcrypt.
func NewPassword(plain string) (Password, error) {
	if plain == "" {
		return Password{}, domain.ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return Password{}, fmt.Errorf("hash password: %w", err)
	}
	return Password{hash: string(hash)}, nil
}

// PasswordFromHash rehidrata desde almacenamiento sin volver a hashear.
func PasswordFromHash(hash string) Password {
	return Password{hash: hash}
}

// Verify recalcula y compara el candidato contra el hash.
func (p Password) Verify(candidate string) bool {
	if p.hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(p.hash), []byte(candidate)) == nil
}

// Hash valor persistible.
func (p Password) Hash() string { return p.hash }

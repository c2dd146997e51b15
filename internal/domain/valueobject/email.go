package valueobject

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/suscripciones-api/internal/domain"
)

var emailRule = validator.New()

// Email dirección de correo normalizada (minúsculas, sin espacios). Inmutable.
type Email struct {
	value string
}

// NewEmail valida y normaliza la dirección. Devuelve domain.ErrInvalidEmail si el formato no es válido.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if err := emailRule.Var(normalized, "required,email"); err != nil {
		return Email{}, domain.ErrInvalidEmail
	}
	return Email{value: normalized}, nil
}

// String devuelve la forma normalizada.
func (e Email) String() string { return e.value }

// IsZero indica si el email no fue construido con NewEmail.
func (e Email) IsZero() bool { return e.value == "" }

// Equals compara por valor normalizado.
func (e Email) Equals(other Email) bool { return e.value == other.value }

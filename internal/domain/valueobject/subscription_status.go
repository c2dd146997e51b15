package valueobject

import "github.com/jhoicas/suscripciones-api/internal/domain"

// SubscriptionStatus estado de una suscripción.
type SubscriptionStatus string

// Estados válidos (deben coincidir con el CHECK de la tabla subscriptions).
const (
	StatusActive    SubscriptionStatus = "active"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
	StatusPending   SubscriptionStatus = "pending"
)

// ParseSubscriptionStatus valida el valor crudo. Devuelve domain.ErrInvalidStatus si no es un estado conocido.
func ParseSubscriptionStatus(value string) (SubscriptionStatus, error) {
	switch s := SubscriptionStatus(value); s {
	case StatusActive, StatusCancelled, StatusExpired, StatusPending:
		return s, nil
	default:
		return "", domain.ErrInvalidStatus
	}
}

// IsActive informa si el estado es active.
func (s SubscriptionStatus) IsActive() bool { return s == StatusActive }

// IsClosed informa si el estado exige fecha de fin (cancelled o expired).
func (s SubscriptionStatus) IsClosed() bool { return s == StatusCancelled || s == StatusExpired }

func (s SubscriptionStatus) String() string { return string(s) }

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// La capa HTTP es la única que traduce estos errores a códigos de estado.
var (
	ErrValidation           = errors.New("entrada inválida")
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrNoActiveSubscription = errors.New("la empresa no tiene una suscripción activa")
	ErrSeatLimitReached     = errors.New("se alcanzó el límite de usuarios del plan")
	ErrEmailAlreadyInUse    = errors.New("el email ya está registrado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInvalidCredentials   = errors.New("credenciales inválidas")
	ErrUnauthorized         = errors.New("no autorizado")
)

// Variantes de ErrNotFound por recurso; errors.Is(err, ErrNotFound) sigue siendo verdadero.
var (
	ErrCompanyNotFound = fmt.Errorf("%w: empresa", ErrNotFound)
	ErrPlanNotFound    = fmt.Errorf("%w: plan", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("%w: usuario", ErrNotFound)
)

// Errores de validación de objetos de valor y entidades (todos envuelven ErrValidation).
var (
	ErrInvalidEmail     = fmt.Errorf("%w: email con formato inválido", ErrValidation)
	ErrNegativeAmount   = fmt.Errorf("%w: el monto no puede ser negativo", ErrValidation)
	ErrMissingAmount    = fmt.Errorf("%w: el monto es requerido", ErrValidation)
	ErrAmountScale      = fmt.Errorf("%w: el monto admite a lo sumo dos decimales", ErrValidation)
	ErrAmountTooLarge   = fmt.Errorf("%w: el monto excede el máximo permitido", ErrValidation)
	ErrInvalidCurrency  = fmt.Errorf("%w: código de moneda desconocido", ErrValidation)
	ErrInvalidStatus    = fmt.Errorf("%w: estado de suscripción inválido", ErrValidation)
	ErrEmptyFeatureName = fmt.Errorf("%w: el nombre de la característica no puede estar vacío", ErrValidation)
	ErrEmptyPassword    = fmt.Errorf("%w: la contraseña no puede estar vacía", ErrValidation)
	ErrEmptyName        = fmt.Errorf("%w: el nombre es requerido", ErrValidation)
	ErrInvalidUserLimit = fmt.Errorf("%w: el límite de usuarios debe ser mayor que cero", ErrValidation)
	ErrInvalidState     = fmt.Errorf("%w: estado persistido inconsistente", ErrValidation)
)

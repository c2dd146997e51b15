package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/suscripciones-api/internal/application/dto"
	"github.com/jhoicas/suscripciones-api/internal/domain"
)

// writeError traduce un error de dominio a código HTTP y cuerpo de error.
func writeError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusUnprocessableEntity, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrNoActiveSubscription):
		return fiber.StatusConflict, "NO_ACTIVE_SUBSCRIPTION"
	case errors.Is(err, domain.ErrSeatLimitReached):
		return fiber.StatusConflict, "SEAT_LIMIT_REACHED"
	case errors.Is(err, domain.ErrEmailAlreadyInUse):
		return fiber.StatusConflict, "EMAIL_IN_USE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// ErrorHandler manejador global de Fiber: errores de dominio y *fiber.Error con el mismo cuerpo.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: httpCode(fe.Code), Message: fe.Message})
	}
	return writeError(c, err)
}

func httpCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		return "INTERNAL"
	}
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(dto.Envelope{Success: true, Data: data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope{Success: true, Data: data})
}

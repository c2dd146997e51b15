package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/suscripciones-api/internal/application/auth"
	"github.com/jhoicas/suscripciones-api/internal/application/dto"
	"github.com/jhoicas/suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/suscripciones-api/internal/domain"
)

// EnterpriseUserHandler maneja usuarios empresariales y login.
type EnterpriseUserHandler struct {
	svc   *usecase.EnterpriseUserService
	login *auth.LoginUseCase
}

// NewEnterpriseUserHandler construye el handler.
func NewEnterpriseUserHandler(svc *usecase.EnterpriseUserService, login *auth.LoginUseCase) *EnterpriseUserHandler {
	return &EnterpriseUserHandler{svc: svc, login: login}
}

// Create godoc
// @Summary      Crear usuario empresarial
// @Description  Requiere suscripción activa y un asiento libre en el plan.
// @Tags         enterprise-users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEnterpriseUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.EnterpriseUserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/enterprise-users [post]
func (h *EnterpriseUserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEnterpriseUserRequest
	if valid, err := bind(c, &in); !valid {
		return err
	}
	out, err := h.svc.CreateUser(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         enterprise-users
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.EnterpriseUserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/enterprise-users/{id} [get]
func (h *EnterpriseUserHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svc.FindUserByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// List godoc
// @Summary      Listar usuarios
// @Description  Con ?email= devuelve una lista con el usuario de ese email, o vacía si no hay.
// @Tags         enterprise-users
// @Produce      json
// @Param        email  query  string  false  "Email del usuario"
// @Success      200    {array}  dto.EnterpriseUserResponse
// @Router       /api/enterprise-users [get]
func (h *EnterpriseUserHandler) List(c *fiber.Ctx) error {
	if email := c.Query("email"); email != "" {
		out, err := h.svc.FindUserByEmail(c.UserContext(), email)
		if errors.Is(err, domain.ErrNotFound) {
			return ok(c, []dto.EnterpriseUserResponse{})
		}
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, []dto.EnterpriseUserResponse{*out})
	}
	out, err := h.svc.FindAllUsers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         enterprise-users
// @Accept       json
// @Produce      json
// @Param        id    path  int                              true  "ID del usuario"
// @Param        body  body  dto.UpdateEnterpriseUserRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.EnterpriseUserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/enterprise-users/{id} [put]
func (h *EnterpriseUserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateEnterpriseUserRequest
	if valid, err := bind(c, &in); !valid {
		return err
	}
	out, err := h.svc.UpdateUser(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         enterprise-users
// @Param        id   path  int  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/enterprise-users/{id} [delete]
func (h *EnterpriseUserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         enterprise-users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/enterprise-users/login [post]
func (h *EnterpriseUserHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if valid, err := bind(c, &in); !valid {
		return err
	}
	out, err := h.login.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         enterprise-users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.EnterpriseUserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/enterprise-users/me [get]
func (h *EnterpriseUserHandler) Me(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == 0 {
		return writeError(c, domain.ErrUnauthorized)
	}
	out, err := h.svc.FindUserByID(c.UserContext(), userID)
	if err != nil {
		// el usuario del token ya no existe
		if errors.Is(err, domain.ErrNotFound) {
			return writeError(c, domain.ErrUnauthorized)
		}
		return writeError(c, err)
	}
	return ok(c, out)
}

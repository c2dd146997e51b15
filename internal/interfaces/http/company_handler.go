package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/suscripciones-api/internal/application/dto"
	"github.com/jhoicas/suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/suscripciones-api/internal/domain"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company y sus suscripciones.
type CompanyHandler struct {
	svc   *usecase.CompanyService
	users *usecase.EnterpriseUserService
}

// NewCompanyHandler construye el handler inyectando los servicios.
func NewCompanyHandler(svc *usecase.CompanyService, users *usecase.EnterpriseUserService) *CompanyHandler {
	return &CompanyHandler{svc: svc, users: users}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if valid, err := bind(c, &in); !valid {
		return err
	}
	out, err := h.svc.CreateCompany(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svc.FindCompanyByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// List godoc
// @Summary      Listar empresas
// @Description  Con ?email= devuelve una lista con la empresa de ese email, o vacía si no hay.
// @Tags         companies
// @Produce      json
// @Param        email  query  string  false  "Email de la empresa"
// @Success      200    {array}  dto.CompanyResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	if email := c.Query("email"); email != "" {
		out, err := h.svc.FindCompanyByEmail(c.UserContext(), email)
		if errors.Is(err, domain.ErrNotFound) {
			return ok(c, []dto.CompanyResponse{})
		}
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, []dto.CompanyResponse{*out})
	}
	out, err := h.svc.FindAllCompanies(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Update godoc
// @Summary      Actualizar empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateCompanyRequest
	if valid, err := bind(c, &in); !valid {
		return err
	}
	out, err := h.svc.UpdateCompany(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Eliminar empresa
// @Description  Elimina también sus suscripciones y usuarios.
// @Tags         companies
// @Param        id   path  int  true  "ID de la empresa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteCompany(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Subscribe godoc
// @Summary      Suscribir empresa a un plan
// @Description  Cancela la suscripción activa anterior y abre una nueva.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID de la empresa"
// @Param        body  body  dto.SubscribeRequest  true  "plan_id"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/subscribe [post]
func (h *CompanyHandler) Subscribe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.SubscribeRequest
	if valid, err := bind(c, &in); !valid {
		return err
	}
	out, err := h.svc.SubscribeToPlan(c.UserContext(), id, in.PlanID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// CancelSubscription godoc
// @Summary      Cancelar suscripción activa
// @Tags         companies
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/cancel-subscription [post]
func (h *CompanyHandler) CancelSubscription(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svc.CancelSubscription(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Subscriptions godoc
// @Summary      Historial de suscripciones
// @Tags         companies
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {array}  dto.SubscriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/subscriptions [get]
func (h *CompanyHandler) Subscriptions(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svc.ListSubscriptions(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Users godoc
// @Summary      Usuarios de la empresa
// @Tags         companies
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {array}  dto.EnterpriseUserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/enterprise-users [get]
func (h *CompanyHandler) Users(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.users.FindUsersByCompany(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

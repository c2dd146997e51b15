package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/suscripciones-api/internal/application/dto"
	"github.com/jhoicas/suscripciones-api/internal/application/usecase"
)

// PlanHandler maneja las peticiones HTTP para el recurso Plan.
type PlanHandler struct {
	svc *usecase.PlanService
}

// NewPlanHandler construye el handler inyectando el servicio.
func NewPlanHandler(svc *usecase.PlanService) *PlanHandler {
	return &PlanHandler{svc: svc}
}

// Create godoc
// @Summary      Crear plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlanRequest  true  "Datos del plan"
// @Success      201   {object}  dto.PlanResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/plans [post]
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if valid, err := bind(c, &in); !valid {
		return err
	}
	out, err := h.svc.CreatePlan(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

// GetByID godoc
// @Summary      Obtener plan por ID
// @Tags         plans
// @Produce      json
// @Param        id   path  int  true  "ID del plan"
// @Success      200  {object}  dto.PlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [get]
func (h *PlanHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svc.FindPlanByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// List godoc
// @Summary      Listar planes
// @Tags         plans
// @Produce      json
// @Success      200  {array}  dto.PlanResponse
// @Router       /api/plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.FindAllPlans(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Update godoc
// @Summary      Actualizar plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del plan"
// @Param        body  body  dto.UpdatePlanRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [put]
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdatePlanRequest
	if valid, err := bind(c, &in); !valid {
		return err
	}
	out, err := h.svc.UpdatePlan(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Eliminar plan
// @Tags         plans
// @Param        id   path  int  true  "ID del plan"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [delete]
func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeletePlan(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddFeature godoc
// @Summary      Agregar característica al plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        id    path  int             true  "ID del plan"
// @Param        body  body  dto.FeatureDTO  true  "Característica"
// @Success      200   {object}  dto.PlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/features [post]
func (h *PlanHandler) AddFeature(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.FeatureDTO
	if valid, err := bind(c, &in); !valid {
		return err
	}
	out, err := h.svc.AddFeatureToPlan(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// RemoveFeature godoc
// @Summary      Quitar característica del plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        id    path  int             true  "ID del plan"
// @Param        body  body  dto.FeatureDTO  true  "Característica (nombre y descripción exactos)"
// @Success      200   {object}  dto.PlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/features [delete]
func (h *PlanHandler) RemoveFeature(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.FeatureDTO
	if valid, err := bind(c, &in); !valid {
		return err
	}
	out, err := h.svc.RemoveFeatureFromPlan(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

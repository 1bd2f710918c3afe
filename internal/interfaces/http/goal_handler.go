package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/application/usecase"
)

// GoalHandler metas de ahorro.
type GoalHandler struct {
	uc *usecase.GoalUseCase
}

// NewGoalHandler crea el handler de metas de ahorro.
func NewGoalHandler(uc *usecase.GoalUseCase) *GoalHandler {
	return &GoalHandler{uc: uc}
}

// Create godoc
// @Summary      Crear meta de ahorro
// @Tags         goals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoalRequest  true  "Meta"
// @Success      201   {object}  dto.GoalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/goals [post]
func (h *GoalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGoalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Metas del usuario
// @Tags         goals
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.GoalResponse
// @Router       /api/goals [get]
func (h *GoalHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Contribute godoc
// @Summary      Aportar a una meta
// @Tags         goals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la meta"
// @Param        body  body  dto.AmountRequest  true  "Monto"
// @Success      200   {object}  dto.GoalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "meta ya completada"
// @Router       /api/goals/{id}/contributions [post]
func (h *GoalHandler) Contribute(c *fiber.Ctx) error {
	var in dto.AmountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Contribute(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar meta
// @Tags         goals
// @Security     Bearer
// @Param        id  path  string  true  "ID de la meta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goals/{id} [delete]
func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

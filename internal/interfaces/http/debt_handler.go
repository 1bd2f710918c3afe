package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/application/usecase"
)

// DebtHandler deudas y pagos.
type DebtHandler struct {
	uc *usecase.DebtUseCase
}

// NewDebtHandler crea el handler de deudas.
func NewDebtHandler(uc *usecase.DebtUseCase) *DebtHandler {
	return &DebtHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar deuda
// @Tags         debts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDebtRequest  true  "Deuda"
// @Success      201   {object}  dto.DebtResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/debts [post]
func (h *DebtHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDebtRequest
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
// @Summary      Deudas del usuario con meses estimados de pago
// @Tags         debts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DebtResponse
// @Router       /api/debts [get]
func (h *DebtHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Registrar pago
// @Tags         debts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la deuda"
// @Param        body  body  dto.AmountRequest  true  "Monto"
// @Success      200   {object}  dto.DebtResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "deuda cerrada"
// @Router       /api/debts/{id}/payments [post]
func (h *DebtHandler) Pay(c *fiber.Ctx) error {
	var in dto.AmountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Pay(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar deuda
// @Tags         debts
// @Security     Bearer
// @Param        id  path  string  true  "ID de la deuda"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/debts/{id} [delete]
func (h *DebtHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

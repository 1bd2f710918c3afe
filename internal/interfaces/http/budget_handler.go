package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/finanzas-api/internal/application/budgeting"
	"github.com/jhoicas/finanzas-api/internal/application/dto"
)

// BudgetHandler presupuestos mensuales.
type BudgetHandler struct {
	uc *budgeting.UseCase
}

// NewBudgetHandler construye el handler.
func NewBudgetHandler(uc *budgeting.UseCase) *BudgetHandler {
	return &BudgetHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar el presupuesto del mes
// @Description  Usa el perfil guardado; los campos enviados lo reemplazan solo para este cálculo.
// @Description  Si ya existe presupuesto para el mes, se sobrescribe.
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateBudgetRequest  false  "Mes y overrides del perfil"
// @Success      201   {object}  dto.BudgetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "perfil incompleto"
// @Router       /api/budgets/generate [post]
func (h *BudgetHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateBudgetRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Generate(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Presupuestos del usuario (más reciente primero)
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo 24"
// @Success      200  {array}  dto.BudgetResponse
// @Router       /api/budgets [get]
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c), c.QueryInt("limit", 12))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Presupuesto de un mes
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        month  path  string  true  "YYYY-MM"
// @Success      200  {object}  dto.BudgetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/budgets/{month} [get]
func (h *BudgetHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Customize godoc
// @Summary      Personalizar montos por categoría
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        month  path  string                      true  "YYYY-MM"
// @Param        body   body  dto.CustomizeBudgetRequest  true  "categoría → monto"
// @Success      200  {object}  dto.BudgetResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/budgets/{month} [put]
func (h *BudgetHandler) Customize(c *fiber.Ctx) error {
	var in dto.CustomizeBudgetRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Customize(c.UserContext(), GetUserID(c), c.Params("month"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías y porcentajes base
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryDTO
// @Router       /api/budgets/categories [get]
func (h *BudgetHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.uc.Categories())
}

// Report godoc
// @Summary      Reporte PDF del mes (asignado vs gastado)
// @Tags         budgets
// @Security     Bearer
// @Produce      application/pdf
// @Param        month  path  string  true  "YYYY-MM"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/budgets/{month}/report.pdf [get]
func (h *BudgetHandler) Report(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.Report(c.UserContext(), GetUserID(c), c.Params("month"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

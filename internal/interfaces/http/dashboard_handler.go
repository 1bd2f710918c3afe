package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/finanzas-api/internal/application/analytics"
	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/application/usecase"
)

// DashboardHandler maneja los endpoints de resumen y analítica de gasto.
type DashboardHandler struct {
	uc        *appanalytics.DashboardUseCase
	analytics *usecase.AnalyticsUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, analytics *usecase.AnalyticsUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, analytics: analytics}
}

// GetSummary godoc
// @Summary      Resumen financiero del mes
// @Description  Presupuesto vs gasto por categoría, metas, deuda pendiente y notificaciones sin leer.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM (por defecto el actual)"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetUserID(c), c.Query("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetSpendingReport godoc
// @Summary      Ranking de gasto por categoría (Pareto) vs período anterior
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (por defecto el día 1 del mes)"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusive (por defecto hoy)"
// @Success      200  {object}  dto.SpendingReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/spending [get]
func (h *DashboardHandler) GetSpendingReport(c *fiber.Ctx) error {
	var in dto.SpendingReportRequest
	if err := c.QueryParser(&in); err != nil {
		return validation(c, "parámetros de fecha inválidos")
	}
	out, err := h.analytics.GetSpendingReport(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trainmaster-app/trainmaster-api/internal/application/dto"
	"github.com/trainmaster-app/trainmaster-api/internal/application/training"
)

// ReportHandler reportes de gestión (solo MANAGER).
type ReportHandler struct {
	uc *training.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *training.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Profitability godoc
// @Summary      Reporte de rentabilidad
// @Description  Una fila por compra finalizada: comisión, costos de traslado, ganancia y días hasta el cierre.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProfitabilityRow
// @Router       /api/reports/profitability [get]
func (h *ReportHandler) Profitability(c *fiber.Ctx) error {
	out, err := h.uc.Profitability(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Commissions godoc
// @Summary      Reporte de comisiones
// @Description  Compras finalizadas con valor y porcentaje de comisión positivos. paid filtra por estado de pago.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        paid  query  bool  false  "Filtrar por comisión pagada"
// @Success      200   {array}  dto.CommissionRow
// @Router       /api/reports/commissions [get]
func (h *ReportHandler) Commissions(c *fiber.Ctx) error {
	var paid *bool
	if raw := c.Query("paid"); raw != "" {
		v := raw == "true" || raw == "1"
		paid = &v
	}
	out, err := h.uc.Commissions(c.UserContext(), paid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

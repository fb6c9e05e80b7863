package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/trainmaster-app/trainmaster-api/internal/application/dto"
	"github.com/trainmaster-app/trainmaster-api/internal/application/training"
	"github.com/trainmaster-app/trainmaster-api/internal/domain"
)

// PurchaseHandler maneja el ciclo de vida de las compras de horas.
type PurchaseHandler struct {
	uc       *training.PurchaseUseCase
	reportUC *training.ReportUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *training.PurchaseUseCase, reportUC *training.ReportUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, reportUC: reportUC}
}

// Create godoc
// @Summary      Crear compra de horas
// @Description  Emite el protocolo vía webhook antes de persistir; si la emisión falla, la compra no se guarda.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Datos de la compra"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id, training_type y technician_id son requeridos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CUSTOMER_NOT_FOUND", Message: "cliente no encontrado"})
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TECHNICIAN_NOT_FOUND", Message: "técnico no encontrado"})
		case errors.Is(err, domain.ErrWebhookNotConfigured):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "WEBHOOK_NOT_CONFIGURED", Message: "configure la integración antes de crear compras"})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PROTOCOL_FAILED", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener compra por ID
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PurchaseResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la compra"
// @Param        body  body  dto.UpdatePurchaseRequest  true  "Datos editables"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TECHNICIAN_NOT_FOUND", Message: "técnico no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar compra
// @Description  Borra la compra y todas sus sesiones en una sola transacción.
// @Tags         purchases
// @Security     Bearer
// @Param        id  path  string  true  "ID de la compra"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResidualPreview godoc
// @Summary      Residual heredable para una compra nueva
// @Description  Corre el resolver de residuales del cliente; exclude descarta la compra en edición.
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  true   "ID del cliente"
// @Param        exclude      query  string  false  "ID de compra a excluir"
// @Success      200  {object}  dto.ResidualPreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchases/residual-preview [get]
func (h *PurchaseHandler) ResidualPreview(c *fiber.Ctx) error {
	customerID := c.Query("customer_id")
	out, err := h.uc.ResidualPreview(c.UserContext(), customerID, c.Query("exclude"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Saldo de horas de la compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/summary [get]
func (h *PurchaseHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Finalize godoc
// @Summary      Finalizar compra
// @Description  Transiciona pending → completed, congela la fecha de cierre y el residual, y notifica al sistema externo (el fallo del webhook no bloquea).
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true   "ID de la compra"
// @Param        body  body  dto.FinalizePurchaseRequest  false  "Nota de cierre"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/finalize [post]
func (h *PurchaseHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizePurchaseRequest
	// Body opcional: sin nota de cierre también es válido.
	_ = c.BodyParser(&in)
	out, err := h.uc.Finalize(c.UserContext(), c.Params("id"), in.ClosureNote)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
		}
		if errors.Is(err, domain.ErrPurchaseNotPending) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_PENDING", Message: "la compra ya está finalizada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Revert godoc
// @Summary      Revertir finalización
// @Description  Transiciona completed → pending. Rechazado si la comisión ya fue pagada.
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/revert [post]
func (h *PurchaseHandler) Revert(c *fiber.Ctx) error {
	out, err := h.uc.Revert(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
		}
		if errors.Is(err, domain.ErrPurchaseNotCompleted) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_COMPLETED", Message: "la compra no está finalizada"})
		}
		if errors.Is(err, domain.ErrCommissionPaid) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMMISSION_PAID", Message: "desmarque el pago de la comisión antes de revertir"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SetCommissionPaid godoc
// @Summary      Marcar/desmarcar pago de comisión
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la compra"
// @Param        body  body  dto.CommissionPaidRequest true  "paid: true|false"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/commission-paid [put]
func (h *PurchaseHandler) SetCommissionPaid(c *fiber.Ctx) error {
	var in dto.CommissionPaidRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetCommissionPaid(c.UserContext(), c.Params("id"), in.Paid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
		}
		if errors.Is(err, domain.ErrPurchaseNotCompleted) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_COMPLETED", Message: "solo compras finalizadas tienen comisión"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ClosureReportPDF godoc
// @Summary      Reporte de cierre en PDF
// @Tags         purchases
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/report.pdf [get]
func (h *PurchaseHandler) ClosureReportPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.reportUC.ClosureReportPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="reporte-cierre.pdf"`)
	return c.Send(pdfBytes)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/trainmaster-app/trainmaster-api/internal/application/dto"
	"github.com/trainmaster-app/trainmaster-api/internal/application/training"
	"github.com/trainmaster-app/trainmaster-api/internal/domain"
)

// SessionHandler maneja las sesiones de trabajo de los técnicos.
type SessionHandler struct {
	uc *training.SessionUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *training.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar sesión de trabajo
// @Description  Las horas se calculan en el servidor a partir de los tramos horarios; el técnico es el usuario autenticado.
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkSessionRequest  true  "Datos de la sesión"
// @Success      201   {object}  dto.WorkSessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), GetUserName(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de la sesión inválidos (compra, fecha, tramos HH:MM o transporte)"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PURCHASE_NOT_FOUND", Message: "compra no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener sesión por ID
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.WorkSessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar sesiones
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        purchase_id  query  string  false  "Filtrar por compra"
// @Success      200  {array}  dto.WorkSessionResponse
// @Router       /api/sessions [get]
func (h *SessionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("purchase_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar sesión
// @Description  Recalcula las horas a partir de los tramos enviados.
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la sesión"
// @Param        body  body  dto.UpdateWorkSessionRequest  true  "Datos de la sesión"
// @Success      200   {object}  dto.WorkSessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [put]
func (h *SessionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWorkSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tramos horarios o transporte inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar sesión
// @Tags         sessions
// @Security     Bearer
// @Param        id  path  string  true  "ID de la sesión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

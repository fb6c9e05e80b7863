package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/trainmaster-app/trainmaster-api/internal/application/dto"
	"github.com/trainmaster-app/trainmaster-api/internal/application/usecase"
	"github.com/trainmaster-app/trainmaster-api/internal/domain"
)

// ReferenceHandler datos de referencia: módulos del sistema y tipos de entrenamiento.
type ReferenceHandler struct {
	uc *usecase.ReferenceUseCase
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(uc *usecase.ReferenceUseCase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

// CreateModule godoc
// @Summary      Crear módulo del sistema
// @Tags         reference
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReferenceRequest  true  "Nombre del módulo"
// @Success      201   {object}  dto.SystemModuleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/modules [post]
func (h *ReferenceHandler) CreateModule(c *fiber.Ctx) error {
	var in dto.CreateReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateModule(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un módulo con ese nombre"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListModules godoc
// @Summary      Listar módulos del sistema
// @Tags         reference
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SystemModuleResponse
// @Router       /api/modules [get]
func (h *ReferenceHandler) ListModules(c *fiber.Ctx) error {
	out, err := h.uc.ListModules(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteModule godoc
// @Summary      Borrar módulo del sistema
// @Description  Rechazado con 409 si alguna compra referencia el módulo.
// @Tags         reference
// @Security     Bearer
// @Param        id  path  string  true  "ID del módulo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/modules/{id} [delete]
func (h *ReferenceHandler) DeleteModule(c *fiber.Ctx) error {
	if err := h.uc.DeleteModule(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "módulo no encontrado"})
		}
		if errors.Is(err, domain.ErrModuleInUse) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "MODULE_IN_USE", Message: "hay compras que referencian este módulo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateTrainingType godoc
// @Summary      Crear tipo de entrenamiento
// @Tags         reference
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReferenceRequest  true  "Nombre del tipo"
// @Success      201   {object}  dto.TrainingTypeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/training-types [post]
func (h *ReferenceHandler) CreateTrainingType(c *fiber.Ctx) error {
	var in dto.CreateReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateTrainingType(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un tipo con ese nombre"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTrainingTypes godoc
// @Summary      Listar tipos de entrenamiento
// @Tags         reference
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TrainingTypeResponse
// @Router       /api/training-types [get]
func (h *ReferenceHandler) ListTrainingTypes(c *fiber.Ctx) error {
	out, err := h.uc.ListTrainingTypes(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteTrainingType godoc
// @Summary      Borrar tipo de entrenamiento
// @Description  Rechazado con 409 si alguna compra referencia el tipo.
// @Tags         reference
// @Security     Bearer
// @Param        id  path  string  true  "ID del tipo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/training-types/{id} [delete]
func (h *ReferenceHandler) DeleteTrainingType(c *fiber.Ctx) error {
	if err := h.uc.DeleteTrainingType(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo no encontrado"})
		}
		if errors.Is(err, domain.ErrTrainingTypeInUse) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TYPE_IN_USE", Message: "hay compras que referencian este tipo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrLoginAlreadyExists = errors.New("el login ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Máquina de estados de la compra de horas.
	ErrPurchaseNotPending   = errors.New("la compra no está pendiente")
	ErrPurchaseNotCompleted = errors.New("la compra no está finalizada")
	ErrCommissionPaid       = errors.New("la comisión ya fue pagada; desmárquela antes de revertir")

	// Bloqueos de integridad referencial (verificados antes de borrar).
	ErrCustomerInUse     = errors.New("el cliente tiene compras registradas")
	ErrModuleInUse       = errors.New("el módulo está referenciado por compras")
	ErrTrainingTypeInUse = errors.New("el tipo de entrenamiento está referenciado por compras")

	// Rechazos de reglas de negocio locales.
	ErrSelfDelete           = errors.New("un usuario no puede eliminar su propia cuenta")
	ErrWebhookNotConfigured = errors.New("webhook de integración no configurado")
)

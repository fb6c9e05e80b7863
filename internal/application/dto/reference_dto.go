package dto

import "time"

// CreateReferenceRequest alta de un dato de referencia (solo nombre).
type CreateReferenceRequest struct {
	Name string `json:"name"`
}

// SystemModuleResponse módulo del sistema.
type SystemModuleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TrainingTypeResponse tipo de entrenamiento.
type TrainingTypeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

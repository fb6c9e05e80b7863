package entity

import "time"

// SystemModule módulo del sistema sobre el que se entrena (dato de referencia, solo nombre).
type SystemModule struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// TrainingType tipo de entrenamiento (dato de referencia, solo nombre).
type TrainingType struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

package repository

import (
	"context"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
)

// SystemModuleRepository puerto de persistencia para los módulos del sistema
// (dato de referencia, solo nombre).
type SystemModuleRepository interface {
	Create(ctx context.Context, module *entity.SystemModule) error
	GetByID(ctx context.Context, id string) (*entity.SystemModule, error)
	GetByName(ctx context.Context, name string) (*entity.SystemModule, error)
	List(ctx context.Context) ([]*entity.SystemModule, error)
	Delete(ctx context.Context, id string) error
}

// TrainingTypeRepository puerto de persistencia para los tipos de entrenamiento.
type TrainingTypeRepository interface {
	Create(ctx context.Context, tt *entity.TrainingType) error
	GetByID(ctx context.Context, id string) (*entity.TrainingType, error)
	GetByName(ctx context.Context, name string) (*entity.TrainingType, error)
	List(ctx context.Context) ([]*entity.TrainingType, error)
	Delete(ctx context.Context, id string) error
}

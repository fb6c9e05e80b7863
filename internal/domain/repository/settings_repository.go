package repository

import (
	"context"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
)

// SettingsRepository puerto del registro singleton de configuración
// (integración webhook + marca). Get devuelve (nil, nil) si aún no existe.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/trainmaster-app/trainmaster-api/internal/application/dto"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
)

// SettingsUseCase registro singleton de configuración (webhook + marca).
type SettingsUseCase struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(settingsRepo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settingsRepo: settingsRepo}
}

// Get devuelve la configuración vigente con el secreto enmascarado. Si aún no
// hay registro devuelve el cero con los campos vacíos.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &dto.SettingsResponse{}, nil
	}
	return &dto.SettingsResponse{
		WebhookURL:    s.WebhookURL,
		WebhookSecret: maskSecret(s.WebhookSecret),
		CompanyName:   s.CompanyName,
		LogoURL:       s.LogoURL,
		UpdatedAt:     s.UpdatedAt,
	}, nil
}

// Update upsert de la configuración. Un secreto vacío o enmascarado conserva
// el secreto vigente.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	current, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = &entity.Settings{}
	}

	current.WebhookURL = in.WebhookURL
	current.CompanyName = in.CompanyName
	current.LogoURL = in.LogoURL
	if in.WebhookSecret != "" && !strings.Contains(in.WebhookSecret, "•") {
		current.WebhookSecret = in.WebhookSecret
	}
	current.UpdatedAt = time.Now()

	if err := uc.settingsRepo.Save(ctx, current); err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{
		WebhookURL:    current.WebhookURL,
		WebhookSecret: maskSecret(current.WebhookSecret),
		CompanyName:   current.CompanyName,
		LogoURL:       current.LogoURL,
		UpdatedAt:     current.UpdatedAt,
	}, nil
}

// maskSecret deja visibles los últimos 4 caracteres del secreto.
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("•", len(secret))
	}
	return strings.Repeat("•", len(secret)-4) + secret[len(secret)-4:]
}

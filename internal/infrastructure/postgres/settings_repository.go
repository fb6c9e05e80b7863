package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository. La tabla guarda un único
// registro con id fijo; Save hace upsert sobre él.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve la configuración vigente o (nil, nil) si aún no existe.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	var s entity.Settings
	err := r.q.QueryRow(ctx,
		`SELECT id, webhook_url, webhook_secret, company_name, logo_url, updated_at
		 FROM settings WHERE id = $1`, entity.SettingsID,
	).Scan(&s.ID, &s.WebhookURL, &s.WebhookSecret, &s.CompanyName, &s.LogoURL, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Save upsert del registro singleton.
func (r *SettingsRepo) Save(ctx context.Context, s *entity.Settings) error {
	query := `
		INSERT INTO settings (id, webhook_url, webhook_secret, company_name, logo_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			webhook_url = EXCLUDED.webhook_url,
			webhook_secret = EXCLUDED.webhook_secret,
			company_name = EXCLUDED.company_name,
			logo_url = EXCLUDED.logo_url,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		entity.SettingsID, s.WebhookURL, s.WebhookSecret, s.CompanyName, s.LogoURL, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

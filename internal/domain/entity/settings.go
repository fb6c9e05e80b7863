package entity

import "time"

// SettingsID id fijo del registro singleton de configuración.
const SettingsID = "default"

// Settings registro singleton: integración webhook y marca de la empresa.
type Settings struct {
	ID            string
	WebhookURL    string
	WebhookSecret string // secreto compartido, viaja como campo del body JSON (no header)
	CompanyName   string
	LogoURL       string
	UpdatedAt     time.Time
}

// WebhookConfigured informa si hay endpoint de integración configurado.
func (s *Settings) WebhookConfigured() bool {
	return s.WebhookURL != ""
}

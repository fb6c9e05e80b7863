package dto

import "time"

// UpdateSettingsRequest upsert del registro singleton de configuración.
type UpdateSettingsRequest struct {
	WebhookURL    string `json:"webhook_url"`
	WebhookSecret string `json:"webhook_secret"`
	CompanyName   string `json:"company_name"`
	LogoURL       string `json:"logo_url"`
}

// SettingsResponse configuración vigente. El secreto se devuelve enmascarado.
type SettingsResponse struct {
	WebhookURL    string    `json:"webhook_url"`
	WebhookSecret string    `json:"webhook_secret"`
	CompanyName   string    `json:"company_name"`
	LogoURL       string    `json:"logo_url"`
	UpdatedAt     time.Time `json:"updated_at"`
}

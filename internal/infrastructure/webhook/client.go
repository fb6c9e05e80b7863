// Package webhook adaptador de integración con el sistema externo de la
// empresa: emisión de protocolos y notificación de cierres vía HTTP.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trainmaster-app/trainmaster-api/internal/application/training"
	"github.com/trainmaster-app/trainmaster-api/internal/domain"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
)

// Verificar en tiempo de compilación que Client implementa ambos puertos.
var _ training.ProtocolGenerator = (*Client)(nil)
var _ training.FinalizeNotifier = (*Client)(nil)

// Nombres de evento del contrato webhook.
const (
	eventGenerateProtocol  = "generate_protocol"
	eventTrainingFinalized = "training_finalized"
)

// Client adaptador webhook. La URL y el secreto se leen del registro Settings
// en cada llamada: el gerente puede cambiarlos en caliente sin reiniciar.
// El secreto viaja como campo del body JSON, no como header (contrato heredado
// del sistema externo).
type Client struct {
	settingsRepo repository.SettingsRepository
	httpClient   *http.Client
}

// NewClient construye el adaptador.
func NewClient(settingsRepo repository.SettingsRepository) *Client {
	return &Client{
		settingsRepo: settingsRepo,
		httpClient: &http.Client{
			// Timeout de red de 25 s; los casos de uso imponen además sus
			// propios context.WithTimeout.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras del contrato webhook ─────────────────────────────────────────

type protocolPayload struct {
	Event             string          `json:"event"`
	Secret            string          `json:"secret"`
	CustomerName      string          `json:"customer_name"`
	CustomerTaxID     string          `json:"customer_tax_id"`
	TechnicianName    string          `json:"technician_name"`
	ExternalUsername  string          `json:"external_username"`
	Requester         string          `json:"requester"`
	Modules           []string        `json:"modules"`
	TrainingType      string          `json:"training_type"`
	ContractedHours   decimal.Decimal `json:"contracted_hours"`
	StartDate         string          `json:"start_date"`
	ContractValue     decimal.Decimal `json:"contract_value"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
}

type protocolResponse struct {
	Protocol string `json:"protocolo"`
	Error    string `json:"error"`
}

type finalizedPayload struct {
	Event          string          `json:"event"`
	Secret         string          `json:"secret"`
	PurchaseID     string          `json:"purchase_id"`
	Protocol       string          `json:"protocolo"`
	CustomerName   string          `json:"customer_name"`
	TechnicianName string          `json:"technician_name"`
	ClosureNote    string          `json:"closure_note"`
	UsedHours      decimal.Decimal `json:"used_hours"`
	Balance        decimal.Decimal `json:"balance"`
	Attendees      []string        `json:"attendees"`
	FinishDate     string          `json:"finish_date"`
}

// ── Implementación de los puertos ────────────────────────────────────────────

// GenerateProtocol pide al sistema externo el protocolo de una compra nueva.
// Llamada sincrónica: cualquier fallo (endpoint sin configurar, HTTP no-2xx,
// respuesta sin protocolo) aborta el alta.
func (c *Client) GenerateProtocol(ctx context.Context, req training.ProtocolRequest) (string, error) {
	settings, err := c.settings(ctx)
	if err != nil {
		return "", err
	}

	payload := protocolPayload{
		Event:             eventGenerateProtocol,
		Secret:            settings.WebhookSecret,
		CustomerName:      req.CustomerName,
		CustomerTaxID:     req.CustomerTaxID,
		TechnicianName:    req.TechnicianName,
		ExternalUsername:  req.ExternalUsername,
		Requester:         req.Requester,
		Modules:           req.Modules,
		TrainingType:      req.TrainingType,
		ContractedHours:   req.ContractedHours,
		StartDate:         req.StartDate.Format("2006-01-02"),
		ContractValue:     req.ContractValue,
		CommissionPercent: req.CommissionPercent,
	}

	rawBody, err := c.post(ctx, settings.WebhookURL, payload)
	if err != nil {
		return "", err
	}

	var out protocolResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return "", fmt.Errorf("webhook: deserializar respuesta: %w (body: %s)", err, string(rawBody))
	}
	if out.Error != "" {
		return "", fmt.Errorf("webhook: el sistema externo rechazó la emisión: %s", out.Error)
	}
	if out.Protocol == "" {
		return "", fmt.Errorf("webhook: respuesta sin protocolo (body: %s)", string(rawBody))
	}
	return out.Protocol, nil
}

// NotifyTrainingFinalized informa el cierre de una compra al sistema externo.
// El llamador la despacha disparar-y-olvidar; acá solo se reporta el error.
func (c *Client) NotifyTrainingFinalized(ctx context.Context, ev training.FinalizedEvent) error {
	settings, err := c.settings(ctx)
	if err != nil {
		return err
	}

	payload := finalizedPayload{
		Event:          eventTrainingFinalized,
		Secret:         settings.WebhookSecret,
		PurchaseID:     ev.PurchaseID,
		Protocol:       ev.Protocol,
		CustomerName:   ev.CustomerName,
		TechnicianName: ev.TechnicianName,
		ClosureNote:    ev.ClosureNote,
		UsedHours:      ev.UsedHours,
		Balance:        ev.Balance,
		Attendees:      ev.Attendees,
		FinishDate:     ev.FinishDate.Format("2006-01-02"),
	}

	_, err = c.post(ctx, settings.WebhookURL, payload)
	return err
}

func (c *Client) settings(ctx context.Context) (*entity.Settings, error) {
	s, err := c.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("webhook: leer configuración: %w", err)
	}
	if s == nil || !s.WebhookConfigured() {
		return nil, domain.ErrWebhookNotConfigured
	}
	return s, nil
}

func (c *Client) post(ctx context.Context, url string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("webhook: serializar payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("webhook: crear HTTP request: %w", err)
	}
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("webhook: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("webhook: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("webhook: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("webhook: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	return rawBody, nil
}

package webhook_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainmaster-app/trainmaster-api/internal/application/training"
	"github.com/trainmaster-app/trainmaster-api/internal/domain"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/infrastructure/webhook"
)

type stubSettingsRepo struct {
	settings *entity.Settings
}

func (r *stubSettingsRepo) Get(_ context.Context) (*entity.Settings, error) {
	return r.settings, nil
}

func (r *stubSettingsRepo) Save(_ context.Context, s *entity.Settings) error {
	r.settings = s
	return nil
}

func clientFor(url, secret string) *webhook.Client {
	return webhook.NewClient(&stubSettingsRepo{settings: &entity.Settings{
		ID:            entity.SettingsID,
		WebhookURL:    url,
		WebhookSecret: secret,
	}})
}

func TestGenerateProtocol_EnviaSecretoEnElBody(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Empty(t, r.Header.Get("Authorization"), "el secreto nunca viaja como header")
		_ = json.NewEncoder(w).Encode(map[string]string{"protocolo": "PROTO-77"})
	}))
	defer srv.Close()

	c := clientFor(srv.URL, "s3cr3t")
	protocol, err := c.GenerateProtocol(context.Background(), training.ProtocolRequest{
		CustomerName:    "Acme Ltda",
		CustomerTaxID:   "12.345.678/0001-00",
		TechnicianName:  "Carlos Técnico",
		ContractedHours: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	assert.Equal(t, "PROTO-77", protocol)
	assert.Equal(t, "generate_protocol", received["event"])
	assert.Equal(t, "s3cr3t", received["secret"], "el secreto viaja como campo del body JSON")
	assert.Equal(t, "Acme Ltda", received["customer_name"])
}

func TestGenerateProtocol_HTTPNoOK_Falla(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := clientFor(srv.URL, "s")
	_, err := c.GenerateProtocol(context.Background(), training.ProtocolRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestGenerateProtocol_RespuestaSinProtocolo_Falla(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
	}))
	defer srv.Close()

	c := clientFor(srv.URL, "s")
	_, err := c.GenerateProtocol(context.Background(), training.ProtocolRequest{})
	require.Error(t, err, "sin campo protocolo la emisión falla")
}

func TestGenerateProtocol_ErrorDelSistemaExterno_Falla(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "cliente bloqueado"})
	}))
	defer srv.Close()

	c := clientFor(srv.URL, "s")
	_, err := c.GenerateProtocol(context.Background(), training.ProtocolRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cliente bloqueado")
}

func TestGenerateProtocol_SinConfiguracion_Falla(t *testing.T) {
	c := webhook.NewClient(&stubSettingsRepo{settings: nil})
	_, err := c.GenerateProtocol(context.Background(), training.ProtocolRequest{})
	assert.ErrorIs(t, err, domain.ErrWebhookNotConfigured)
}

func TestNotifyTrainingFinalized_PayloadCompleto(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := clientFor(srv.URL, "s3cr3t")
	err := c.NotifyTrainingFinalized(context.Background(), training.FinalizedEvent{
		PurchaseID:     "p1",
		Protocol:       "PROTO-77",
		CustomerName:   "Acme Ltda",
		TechnicianName: "Carlos Técnico",
		ClosureNote:    "todo entregado",
		UsedHours:      decimal.RequireFromString("6"),
		Balance:        decimal.RequireFromString("4"),
		Attendees:      []string{"Ana", "Bruno"},
		FinishDate:     time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "training_finalized", received["event"])
	assert.Equal(t, "s3cr3t", received["secret"])
	assert.Equal(t, "PROTO-77", received["protocolo"])
	assert.Equal(t, "2024-03-15", received["finish_date"])
	assert.Equal(t, "todo entregado", received["closure_note"])
}

func TestNotifyTrainingFinalized_HTTPNoOK_DevuelveError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := clientFor(srv.URL, "s")
	err := c.NotifyTrainingFinalized(context.Background(), training.FinalizedEvent{PurchaseID: "p1"})
	require.Error(t, err, "el adaptador reporta el error; ignorarlo es decisión del caso de uso")
}

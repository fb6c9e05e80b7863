// Package training contiene los casos de uso del ciclo de vida de las compras
// de horas y sus sesiones de trabajo: alta con emisión de protocolo, registro
// de sesiones, finalización con notificación webhook, reversión y reportes.
package training

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
)

// ProtocolRequest datos que el colaborador externo necesita para emitir el
// protocolo de una compra nueva.
type ProtocolRequest struct {
	CustomerName      string
	CustomerTaxID     string
	TechnicianName    string
	ExternalUsername  string
	Requester         string
	Modules           []string
	TrainingType      string
	ContractedHours   decimal.Decimal
	StartDate         time.Time
	ContractValue     decimal.Decimal
	CommissionPercent decimal.Decimal
}

// ProtocolGenerator colaborador externo (webhook generate_protocol).
// Llamada sincrónica: cualquier fallo aborta el alta de la compra; no hay
// persistencia parcial.
type ProtocolGenerator interface {
	GenerateProtocol(ctx context.Context, req ProtocolRequest) (string, error)
}

// FinalizedEvent payload del evento training_finalized.
type FinalizedEvent struct {
	PurchaseID     string
	Protocol       string
	CustomerName   string
	TechnicianName string
	ClosureNote    string
	UsedHours      decimal.Decimal
	Balance        decimal.Decimal
	Attendees      []string
	FinishDate     time.Time
}

// FinalizeNotifier colaborador externo (webhook training_finalized).
// Disparar-y-olvidar: su fallo se registra en el log y jamás bloquea ni
// revierte la transición de estado.
type FinalizeNotifier interface {
	NotifyTrainingFinalized(ctx context.Context, ev FinalizedEvent) error
}

// TxRunner ejecuta un callback con repos atados a una transacción. Se usa para
// el borrado en cascada compra + sesiones.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		sessionRepo repository.WorkSessionRepository,
	) error) error
}

// ClosureReportData insumos del reporte PDF de cierre de una compra.
type ClosureReportData struct {
	CompanyName     string
	Protocol        string
	CustomerName    string
	TechnicianName  string
	TrainingType    string
	Modules         []string
	Status          string
	StartDate       time.Time
	FinishDate      *time.Time
	ContractedHours decimal.Decimal
	UsedHours       decimal.Decimal
	Balance         decimal.Decimal
	Sessions        []ClosureReportSession
	Attendees       []string
}

// ClosureReportSession fila de la tabla de sesiones del reporte.
type ClosureReportSession struct {
	Date           time.Time
	TechnicianName string
	Start1, End1   string
	Start2, End2   string
	Hours          decimal.Decimal
	Transport      string
}

// ClosureReportGenerator genera el PDF de cierre (adaptador Maroto).
type ClosureReportGenerator interface {
	GenerateClosureReport(ctx context.Context, data ClosureReportData) ([]byte, error)
}

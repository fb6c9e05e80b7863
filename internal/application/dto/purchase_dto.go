package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest alta de compra de horas. El protocolo NO se envía: se
// emite sincrónicamente vía webhook generate_protocol antes de persistir.
type CreatePurchaseRequest struct {
	CustomerID        string          `json:"customer_id"`
	Modules           []string        `json:"modules"`
	TrainingType      string          `json:"training_type"`
	Requester         string          `json:"requester"`
	ContractedHours   decimal.Decimal `json:"contracted_hours"`
	ResidualAdded     decimal.Decimal `json:"residual_added"`
	StartDate         time.Time       `json:"start_date"`
	ContractValue     decimal.Decimal `json:"contract_value"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	TechnicianID      string          `json:"technician_id"`
	Notes             string          `json:"notes"`
}

// UpdatePurchaseRequest edición de compra (campos editables en estado pending).
type UpdatePurchaseRequest struct {
	Modules           []string        `json:"modules"`
	TrainingType      string          `json:"training_type"`
	Requester         string          `json:"requester"`
	ContractedHours   decimal.Decimal `json:"contracted_hours"`
	ResidualAdded     decimal.Decimal `json:"residual_added"`
	StartDate         time.Time       `json:"start_date"`
	ContractValue     decimal.Decimal `json:"contract_value"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	TechnicianID      string          `json:"technician_id"`
	Notes             string          `json:"notes"`
}

// PurchaseResponse representación de una compra.
type PurchaseResponse struct {
	ID                string          `json:"id"`
	CustomerID        string          `json:"customer_id"`
	CustomerName      string          `json:"customer_name"`
	Protocol          string          `json:"protocolo"`
	Modules           []string        `json:"modules"`
	TrainingType      string          `json:"training_type"`
	Requester         string          `json:"requester"`
	ContractedHours   decimal.Decimal `json:"contracted_hours"`
	ResidualAdded     decimal.Decimal `json:"residual_added"`
	StartDate         time.Time       `json:"start_date"`
	FinishDate        *time.Time      `json:"finish_date,omitempty"`
	ContractValue     decimal.Decimal `json:"contract_value"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	Status            string          `json:"status"`
	TechnicianID      string          `json:"technician_id"`
	TechnicianName    string          `json:"technician_name"`
	CommissionPaid    bool            `json:"commission_paid"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// PurchaseSummaryResponse saldo de horas de una compra (vista derivada).
type PurchaseSummaryResponse struct {
	PurchaseID      string          `json:"purchase_id"`
	ContractedHours decimal.Decimal `json:"contracted_hours"`
	UsedHours       decimal.Decimal `json:"used_hours"`
	Balance         decimal.Decimal `json:"balance"`
	PercentComplete decimal.Decimal `json:"percent_complete"`
	Sessions        int             `json:"sessions"`
}

// ResidualPreviewResponse resultado del resolver de residuales para el
// formulario de nueva compra.
type ResidualPreviewResponse struct {
	CustomerID       string          `json:"customer_id"`
	Residual         decimal.Decimal `json:"residual"`
	ContractedHours  decimal.Decimal `json:"contracted_hours"` // pre-carga del borrador
	SourcePurchaseID string          `json:"source_purchase_id,omitempty"`
}

// FinalizePurchaseRequest nota de cierre para finalizar la compra.
type FinalizePurchaseRequest struct {
	ClosureNote string `json:"closure_note"`
}

// CommissionPaidRequest marca o desmarca el pago de la comisión.
type CommissionPaidRequest struct {
	Paid bool `json:"paid"`
}

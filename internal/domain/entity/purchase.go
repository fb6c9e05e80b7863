package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/trainmaster-app/trainmaster-api/internal/domain"
)

// Estados del ciclo de vida de una compra de horas.
const (
	PurchasePending   = "pending"
	PurchaseCompleted = "completed"
)

// Purchase representa un contrato de horas de entrenamiento de un cliente:
// la unidad de seguimiento de estado y de contabilidad de horas.
// CustomerName es una copia desnormalizada que el caso de uso de clientes
// propaga cuando la razón social cambia.
type Purchase struct {
	ID                string
	CustomerID        string
	CustomerName      string
	Protocol          string // identificador externo, emitido por el webhook generate_protocol
	Modules           []string
	TrainingType      string
	Requester         string // contacto solicitante (key user del cliente)
	ContractedHours   decimal.Decimal
	// ResidualAdded tiene doble rol: en una compra pending son las horas
	// heredadas de la compra anterior; al finalizar se congela el saldo
	// restante, que pasa a ser el residual candidato para la próxima compra.
	ResidualAdded decimal.Decimal
	StartDate         time.Time
	FinishDate        *time.Time
	ContractValue     decimal.Decimal
	CommissionPercent decimal.Decimal
	Status            string // pending | completed
	TechnicianID      string
	TechnicianName    string
	CommissionPaid    bool
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Finalize transiciona pending → completed congelando la fecha de cierre y el
// saldo residual (redondeado a 1 decimal). El residual puede quedar ≤ 0; en ese
// caso ninguna compra futura lo hereda (el resolver exige residual > 0).
func (p *Purchase) Finalize(finishDate time.Time, balance decimal.Decimal) error {
	if p.Status != PurchasePending {
		return domain.ErrPurchaseNotPending
	}
	p.Status = PurchaseCompleted
	p.FinishDate = &finishDate
	p.ResidualAdded = balance.Round(1)
	return nil
}

// Revert transiciona completed → pending. Rechazado si la comisión ya fue
// pagada: primero hay que desmarcar el pago.
func (p *Purchase) Revert() error {
	if p.Status != PurchaseCompleted {
		return domain.ErrPurchaseNotCompleted
	}
	if p.CommissionPaid {
		return domain.ErrCommissionPaid
	}
	p.Status = PurchasePending
	p.FinishDate = nil
	p.ResidualAdded = decimal.Zero
	return nil
}

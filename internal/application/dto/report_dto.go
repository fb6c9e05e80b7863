package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitabilityRow fila del reporte de rentabilidad (una compra finalizada).
type ProfitabilityRow struct {
	PurchaseID      string          `json:"purchase_id"`
	Protocol        string          `json:"protocolo"`
	CustomerName    string          `json:"customer_name"`
	TechnicianName  string          `json:"technician_name"`
	ContractValue   decimal.Decimal `json:"contract_value"`
	CommissionValue decimal.Decimal `json:"commission_value"`
	TransportCosts  decimal.Decimal `json:"transport_costs"`
	TotalCosts      decimal.Decimal `json:"total_costs"`
	Profit          decimal.Decimal `json:"profit"`
	ProfitPercent   decimal.Decimal `json:"profit_percent"`
	DaysToFinish    int             `json:"days_to_finish"`
	FinishDate      *time.Time      `json:"finish_date,omitempty"`
}

// CommissionRow fila del reporte de comisiones.
type CommissionRow struct {
	PurchaseID        string          `json:"purchase_id"`
	Protocol          string          `json:"protocolo"`
	CustomerName      string          `json:"customer_name"`
	TechnicianName    string          `json:"technician_name"`
	ContractValue     decimal.Decimal `json:"contract_value"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	CommissionValue   decimal.Decimal `json:"commission_value"`
	CommissionPaid    bool            `json:"commission_paid"`
	FinishDate        *time.Time      `json:"finish_date,omitempty"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWorkSessionRequest registro de un bloque de trabajo contra una compra.
// Las horas calculadas no se aceptan del cliente: el servidor las deriva de
// los tramos horarios.
type CreateWorkSessionRequest struct {
	PurchaseID   string          `json:"purchase_id"`
	Date         time.Time       `json:"date"`
	Start1       string          `json:"start1"`
	End1         string          `json:"end1"`
	Start2       string          `json:"start2"`
	End2         string          `json:"end2"`
	Attendees    []string        `json:"attendees"`
	Notes        string          `json:"notes"`
	Transport    string          `json:"transport"` // Online | Uber | OwnVehicle
	UberOutCost  decimal.Decimal `json:"uber_out_cost"`
	UberBackCost decimal.Decimal `json:"uber_back_cost"`
	VehicleKM    decimal.Decimal `json:"vehicle_km"`
	KMRate       decimal.Decimal `json:"km_rate"`
}

// UpdateWorkSessionRequest edición de una sesión.
type UpdateWorkSessionRequest struct {
	Date         time.Time       `json:"date"`
	Start1       string          `json:"start1"`
	End1         string          `json:"end1"`
	Start2       string          `json:"start2"`
	End2         string          `json:"end2"`
	Attendees    []string        `json:"attendees"`
	Notes        string          `json:"notes"`
	Transport    string          `json:"transport"`
	UberOutCost  decimal.Decimal `json:"uber_out_cost"`
	UberBackCost decimal.Decimal `json:"uber_back_cost"`
	VehicleKM    decimal.Decimal `json:"vehicle_km"`
	KMRate       decimal.Decimal `json:"km_rate"`
}

// WorkSessionResponse representación de una sesión.
type WorkSessionResponse struct {
	ID             string          `json:"id"`
	PurchaseID     string          `json:"purchase_id"`
	Protocol       string          `json:"protocolo"`
	TechnicianID   string          `json:"technician_id"`
	TechnicianName string          `json:"technician_name"`
	Date           time.Time       `json:"date"`
	Start1         string          `json:"start1,omitempty"`
	End1           string          `json:"end1,omitempty"`
	Start2         string          `json:"start2,omitempty"`
	End2           string          `json:"end2,omitempty"`
	Attendees      []string        `json:"attendees"`
	Notes          string          `json:"notes,omitempty"`
	Transport      string          `json:"transport"`
	UberOutCost    decimal.Decimal `json:"uber_out_cost"`
	UberBackCost   decimal.Decimal `json:"uber_back_cost"`
	VehicleKM      decimal.Decimal `json:"vehicle_km"`
	KMRate         decimal.Decimal `json:"km_rate"`
	ComputedHours  decimal.Decimal `json:"horas_calculadas"`
	CreatedAt      time.Time       `json:"created_at"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de transporte de una sesión de trabajo.
const (
	TransportOnline     = "Online"
	TransportUber       = "Uber"
	TransportOwnVehicle = "OwnVehicle"
)

// WorkSession un bloque de trabajo de un técnico contra una compra de horas.
// Hasta dos tramos horarios por día ("HH:MM"); tramo vacío = no usado.
// ComputedHours se calcula siempre en el servidor (paquete hours), nunca se
// acepta del cliente.
type WorkSession struct {
	ID             string
	PurchaseID     string
	Protocol       string // snapshot del protocolo de la compra
	TechnicianID   string
	TechnicianName string
	Date           time.Time
	Start1         string
	End1           string
	Start2         string
	End2           string
	Attendees      []string // nombres de contactos presentes
	Notes          string
	Transport      string // Online | Uber | OwnVehicle
	UberOutCost    decimal.Decimal
	UberBackCost   decimal.Decimal
	VehicleKM      decimal.Decimal
	KMRate         decimal.Decimal
	ComputedHours  decimal.Decimal
	CreatedAt      time.Time
}

// TransportCost costo de traslado de la sesión según el medio usado:
// Uber = ida + vuelta; vehículo propio = km × tarifa; Online = 0.
func (s *WorkSession) TransportCost() decimal.Decimal {
	switch s.Transport {
	case TransportUber:
		return s.UberOutCost.Add(s.UberBackCost)
	case TransportOwnVehicle:
		return s.VehicleKM.Mul(s.KMRate)
	default:
		return decimal.Zero
	}
}

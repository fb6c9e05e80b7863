package hours_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/hours"
)

// ──────────────────────────────────────────────────────────────────────────────
// CommissionValue
// ──────────────────────────────────────────────────────────────────────────────

func TestCommissionValue_Ejemplo(t *testing.T) {
	v := hours.CommissionValue(dec("3500.00"), dec("10"))
	assert.Equal(t, "350", v.String(), "3500 × 10% = 350")
}

func TestCommissionValue_PorcentajeCero(t *testing.T) {
	assert.True(t, hours.CommissionValue(dec("3500"), decimal.Zero).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// TransportCosts
// ──────────────────────────────────────────────────────────────────────────────

func TestTransportCosts_SegunMedio(t *testing.T) {
	sessions := []*entity.WorkSession{
		{
			PurchaseID:   "p1",
			Transport:    entity.TransportUber,
			UberOutCost:  dec("20"),
			UberBackCost: dec("25"),
			// Los campos de vehículo propio no cuentan cuando el medio es Uber.
			VehicleKM: dec("100"),
			KMRate:    dec("2"),
		},
		{
			PurchaseID: "p1",
			Transport:  entity.TransportOwnVehicle,
			VehicleKM:  dec("30"),
			KMRate:     dec("0.8"),
		},
		{
			PurchaseID: "p1",
			Transport:  entity.TransportOnline,
		},
	}

	total := hours.TransportCosts("p1", sessions)
	assert.Equal(t, "69", total.String(), "uber 45 + vehículo 24 + online 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// DaysToFinish
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysToFinish_SinSesiones_EsCero(t *testing.T) {
	assert.Equal(t, 0, hours.DaysToFinish("p1", nil))
}

func TestDaysToFinish_UnaSesion_EsUno(t *testing.T) {
	sessions := []*entity.WorkSession{
		{PurchaseID: "p1", Date: time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, 1, hours.DaysToFinish("p1", sessions), "con una sola sesión el mínimo es 1 día")
}

func TestDaysToFinish_RangoInclusive(t *testing.T) {
	sessions := []*entity.WorkSession{
		{PurchaseID: "p1", Date: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		{PurchaseID: "p1", Date: time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC)},
		{PurchaseID: "ajena", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, 10, hours.DaysToFinish("p1", sessions),
		"del 1 al 10 de marzo son 10 días inclusive; otras compras no cuentan")
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeProfitability
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeProfitability_Completa(t *testing.T) {
	p := &entity.Purchase{
		ID:                "p1",
		ContractValue:     dec("3500"),
		CommissionPercent: dec("10"),
	}
	sessions := []*entity.WorkSession{
		{
			PurchaseID:   "p1",
			Transport:    entity.TransportUber,
			UberOutCost:  dec("20"),
			UberBackCost: dec("25"),
			Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			PurchaseID: "p1",
			Transport:  entity.TransportOwnVehicle,
			VehicleKM:  dec("30"),
			KMRate:     dec("0.8"),
			Date:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	got := hours.ComputeProfitability(p, sessions)

	assert.Equal(t, "350", got.CommissionValue.String())
	assert.Equal(t, "69", got.TransportCosts.String())
	assert.Equal(t, "419", got.TotalCosts.String())
	assert.Equal(t, "3081", got.Profit.String(), "3500 − 419")
	assert.Equal(t, "88.03", got.ProfitPercent.String(), "3081 / 3500 × 100 redondeado a 2")
	assert.Equal(t, 10, got.DaysToFinish)
}

func TestComputeProfitability_ValorCero_PorcentajeCero(t *testing.T) {
	p := &entity.Purchase{ID: "p1", ContractValue: decimal.Zero, CommissionPercent: dec("10")}

	got := hours.ComputeProfitability(p, nil)
	assert.True(t, got.ProfitPercent.IsZero(), "con valor de contrato 0 el porcentaje es 0, no división por cero")
}

func TestComputeProfitability_Idempotente(t *testing.T) {
	p := &entity.Purchase{ID: "p1", ContractValue: dec("1000"), CommissionPercent: dec("5")}
	sessions := []*entity.WorkSession{
		{PurchaseID: "p1", Transport: entity.TransportUber, UberOutCost: dec("10"), UberBackCost: dec("10"),
			Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
	}

	a := hours.ComputeProfitability(p, sessions)
	b := hours.ComputeProfitability(p, sessions)

	assert.True(t, a.Profit.Equal(b.Profit))
	assert.True(t, a.TotalCosts.Equal(b.TotalCosts))
	assert.Equal(t, a.DaysToFinish, b.DaysToFinish)
}

package hours_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/hours"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func session(purchaseID string, computed string) *entity.WorkSession {
	return &entity.WorkSession{
		ID:            "s-" + computed,
		PurchaseID:    purchaseID,
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ComputedHours: dec(computed),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SessionHours / RangeHours
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionHours_DosTramos(t *testing.T) {
	h, err := hours.SessionHours(
		hours.TimeRange{Start: "08:00", End: "12:00"},
		hours.TimeRange{Start: "13:30", End: "17:45"},
	)
	require.NoError(t, err)
	assert.Equal(t, "8.25", h.String(), "4h de la mañana + 4.25h de la tarde")
}

func TestSessionHours_SegundoTramoVacio(t *testing.T) {
	h, err := hours.SessionHours(
		hours.TimeRange{Start: "09:00", End: "11:30"},
		hours.TimeRange{},
	)
	require.NoError(t, err)
	assert.Equal(t, "2.5", h.String())
}

func TestSessionHours_MinutosNoExactos_RedondeaADosDecimales(t *testing.T) {
	// 09:10 → 10:05 = 1h − 5min = 0.91666... → 0.92
	h, err := hours.SessionHours(
		hours.TimeRange{Start: "09:10", End: "10:05"},
		hours.TimeRange{},
	)
	require.NoError(t, err)
	assert.Equal(t, "0.92", h.String())
}

// El fin antes del inicio produce contribución negativa a propósito: las
// sesiones nocturnas no están soportadas y el valor queda visible en el saldo.
func TestSessionHours_FinAntesDelInicio_ContribucionNegativa(t *testing.T) {
	h, err := hours.SessionHours(
		hours.TimeRange{Start: "17:00", End: "16:00"},
		hours.TimeRange{},
	)
	require.NoError(t, err)
	assert.Equal(t, "-1", h.String(), "el tramo invertido pasa como negativo, sin recorte")
}

func TestSessionHours_FormatoInvalido_RetornaError(t *testing.T) {
	_, err := hours.SessionHours(hours.TimeRange{Start: "ocho", End: "12:00"}, hours.TimeRange{})
	assert.Error(t, err)

	_, err = hours.SessionHours(hours.TimeRange{Start: "08:00", End: "25:00"}, hours.TimeRange{})
	assert.Error(t, err, "hora fuera de rango debe fallar")
}

// ──────────────────────────────────────────────────────────────────────────────
// UsedHours / Balance
// ──────────────────────────────────────────────────────────────────────────────

func TestUsedHours_SinSesiones_EsCero(t *testing.T) {
	p := &entity.Purchase{ID: "p1", ContractedHours: dec("10")}

	used := hours.UsedHours(p.ID, nil)
	assert.True(t, used.IsZero(), "sin sesiones las horas usadas deben ser 0")
	assert.Equal(t, "10", hours.Balance(p, nil).String(),
		"sin sesiones el saldo es igual a las horas contratadas")
}

func TestUsedHours_SumaSoloSesionesDeLaCompra(t *testing.T) {
	sessions := []*entity.WorkSession{
		session("p1", "2.5"),
		session("p1", "3"),
		session("otra-compra", "8"),
	}
	assert.Equal(t, "5.5", hours.UsedHours("p1", sessions).String(),
		"las sesiones de otras compras no cuentan")
}

func TestUsedHours_AgregarSesionIncrementaExactamente(t *testing.T) {
	sessions := []*entity.WorkSession{session("p1", "2")}
	before := hours.UsedHours("p1", sessions)

	sessions = append(sessions, session("p1", "1.75"))
	after := hours.UsedHours("p1", sessions)

	assert.Equal(t, "1.75", after.Sub(before).String(),
		"agregar una sesión incrementa las horas usadas exactamente en sus horas calculadas")
}

func TestBalance_PuedeSerNegativo(t *testing.T) {
	p := &entity.Purchase{ID: "p1", ContractedHours: dec("10")}
	sessions := []*entity.WorkSession{session("p1", "12")}

	assert.Equal(t, "-2", hours.Balance(p, sessions).String(),
		"el sobreuso está permitido y el saldo queda negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// PercentComplete
// ──────────────────────────────────────────────────────────────────────────────

func TestPercentComplete_Normal(t *testing.T) {
	assert.Equal(t, "60", hours.PercentComplete(dec("10"), dec("6")).String())
}

func TestPercentComplete_ContratadasCero_EsCeroNoNaN(t *testing.T) {
	pct := hours.PercentComplete(decimal.Zero, dec("5"))
	assert.True(t, pct.IsZero(), "con 0 horas contratadas el porcentaje es 0, nunca NaN")
}

func TestPercentComplete_TopeEn100(t *testing.T) {
	assert.Equal(t, "100", hours.PercentComplete(dec("10"), dec("14")).String(),
		"el avance se topa en 100 aunque haya sobreuso")
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia: funciones puras, sin estado oculto
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_RecalculoIdempotente(t *testing.T) {
	p := &entity.Purchase{ID: "p1", ContractedHours: dec("40")}
	sessions := []*entity.WorkSession{
		session("p1", "3.5"),
		session("p1", "4"),
	}

	b1 := hours.Balance(p, sessions)
	b2 := hours.Balance(p, sessions)
	assert.True(t, b1.Equal(b2), "recalcular con los mismos insumos debe dar el mismo saldo")

	u1 := hours.UsedHours(p.ID, sessions)
	u2 := hours.UsedHours(p.ID, sessions)
	assert.True(t, u1.Equal(u2))
}

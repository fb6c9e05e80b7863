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
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func completedPurchase(id, customerID, residual string, finish time.Time) *entity.Purchase {
	return &entity.Purchase{
		ID:            id,
		CustomerID:    customerID,
		Status:        entity.PurchaseCompleted,
		ResidualAdded: dec(residual),
		FinishDate:    &finish,
		CreatedAt:     finish.Add(-30 * 24 * time.Hour),
	}
}

func pendingPurchase(id, customerID string) *entity.Purchase {
	return &entity.Purchase{
		ID:         id,
		CustomerID: customerID,
		Status:     entity.PurchasePending,
	}
}

var (
	jan10 = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb01 = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
)

// ──────────────────────────────────────────────────────────────────────────────
// ResolveResidual
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveResidual_UnaCompraFinalizadaConResidual(t *testing.T) {
	purchases := []*entity.Purchase{
		completedPurchase("p1", "c1", "5.5", jan10),
	}

	res := hours.ResolveResidual("c1", purchases, "")

	assert.Equal(t, "5.5", res.Residual.String(),
		"el residual de la compra finalizada debe proponerse para el nuevo borrador")
	assert.Equal(t, "p1", res.SourcePurchaseID)
}

func TestResolveResidual_CompraPendienteBloqueaHerencia(t *testing.T) {
	purchases := []*entity.Purchase{
		completedPurchase("p1", "c1", "5.5", jan10),
		pendingPurchase("p2", "c1"),
	}

	res := hours.ResolveResidual("c1", purchases, "")

	assert.True(t, res.Residual.IsZero(),
		"una compra en vuelo bloquea la herencia aunque exista residual disponible")
	assert.Empty(t, res.SourcePurchaseID)
}

func TestResolveResidual_GanaLaFechaDeCierreMasReciente(t *testing.T) {
	purchases := []*entity.Purchase{
		completedPurchase("vieja", "c1", "3", jan10),
		completedPurchase("nueva", "c1", "7", feb01),
	}

	res := hours.ResolveResidual("c1", purchases, "")

	assert.Equal(t, "7", res.Residual.String(), "gana la compra con fecha de cierre más reciente")
	assert.Equal(t, "nueva", res.SourcePurchaseID)
}

func TestResolveResidual_ResidualCeroNoHereda(t *testing.T) {
	purchases := []*entity.Purchase{
		completedPurchase("p1", "c1", "0", feb01),
	}

	res := hours.ResolveResidual("c1", purchases, "")
	assert.True(t, res.Residual.IsZero(), "residual 0 no se hereda: la regla exige > 0")
}

func TestResolveResidual_ResidualNegativoNoHereda(t *testing.T) {
	p := completedPurchase("p1", "c1", "0", feb01)
	p.ResidualAdded = decimal.NewFromFloat(-2.5)

	res := hours.ResolveResidual("c1", []*entity.Purchase{p}, "")
	assert.True(t, res.Residual.IsZero())
}

func TestResolveResidual_IgnoraOtrosClientes(t *testing.T) {
	purchases := []*entity.Purchase{
		completedPurchase("ajena", "c2", "9", feb01),
	}

	res := hours.ResolveResidual("c1", purchases, "")
	assert.True(t, res.Residual.IsZero(), "las compras de otros clientes no participan")
}

func TestResolveResidual_ExcluyeLaCompraEnEdicion(t *testing.T) {
	purchases := []*entity.Purchase{
		completedPurchase("editando", "c1", "4", feb01),
		completedPurchase("otra", "c1", "2", jan10),
	}

	res := hours.ResolveResidual("c1", purchases, "editando")

	assert.Equal(t, "2", res.Residual.String(),
		"la compra que se está editando no puede aportarse a sí misma el residual")
	assert.Equal(t, "otra", res.SourcePurchaseID)
}

func TestResolveResidual_SinFechaDeCierreOrdenaComoLaMasAntigua(t *testing.T) {
	sinFecha := completedPurchase("sin-fecha", "c1", "8", feb01)
	sinFecha.FinishDate = nil

	purchases := []*entity.Purchase{
		sinFecha,
		completedPurchase("con-fecha", "c1", "3", jan10),
	}

	res := hours.ResolveResidual("c1", purchases, "")
	assert.Equal(t, "con-fecha", res.SourcePurchaseID,
		"una compra sin fecha de cierre pierde contra cualquier fecha concreta")
}

// Empate exacto de fecha de cierre: no está definido por negocio, así que la
// regla propia es determinista (gana la compra creada más recientemente).
func TestResolveResidual_EmpateDeFecha_GanaLaCreadaMasReciente(t *testing.T) {
	a := completedPurchase("a", "c1", "3", feb01)
	a.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := completedPurchase("b", "c1", "7", feb01)
	b.CreatedAt = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	res := hours.ResolveResidual("c1", []*entity.Purchase{a, b}, "")
	assert.Equal(t, "b", res.SourcePurchaseID, "a igual fecha de cierre gana la creada después")
	assert.Equal(t, "7", res.Residual.String())

	// El orden de la colección no debe cambiar el resultado.
	res2 := hours.ResolveResidual("c1", []*entity.Purchase{b, a}, "")
	assert.Equal(t, "b", res2.SourcePurchaseID)
}

func TestResolveResidual_SinCompras_EsCero(t *testing.T) {
	res := hours.ResolveResidual("c1", nil, "")
	assert.True(t, res.Residual.IsZero())
	assert.Empty(t, res.SourcePurchaseID)
}

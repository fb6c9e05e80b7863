package hours

import (
	"github.com/shopspring/decimal"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
)

// Resolution resultado del resolver de horas residuales.
// SourcePurchaseID identifica la compra finalizada que aporta el residual
// (vacío cuando no hay herencia).
type Resolution struct {
	Residual         decimal.Decimal
	SourcePurchaseID string
}

// ResolveResidual determina qué residual (si alguno) debe pre-cargarse al
// redactar una nueva compra para el cliente dado. excludeID descarta la compra
// que se está editando, si aplica.
//
// Reglas:
//  1. Si el cliente tiene alguna compra pending, no hay herencia (una sola
//     compra "en vuelo" por cliente, por convención).
//  2. Solo heredan las compras completed con residual estrictamente positivo.
//  3. Gana la de fecha de cierre más reciente; sin fecha de cierre ordena como
//     la más antigua. Empate exacto de fecha: gana la compra creada más
//     recientemente (regla determinista propia; el empate no está definido por
//     negocio).
//
// El valor devuelto pre-carga tanto el residual como las horas contratadas del
// borrador, y debe recalcularse cada vez que el operador cambia de cliente.
func ResolveResidual(customerID string, purchases []*entity.Purchase, excludeID string) Resolution {
	var candidate *entity.Purchase

	for _, p := range purchases {
		if p.CustomerID != customerID || p.ID == excludeID {
			continue
		}
		if p.Status == entity.PurchasePending {
			// Una compra en vuelo bloquea la herencia por completo.
			return Resolution{Residual: decimal.Zero}
		}
		if p.Status != entity.PurchaseCompleted || !p.ResidualAdded.IsPositive() {
			continue
		}
		if candidate == nil || finishesAfter(p, candidate) {
			candidate = p
		}
	}

	if candidate == nil {
		return Resolution{Residual: decimal.Zero}
	}
	return Resolution{Residual: candidate.ResidualAdded, SourcePurchaseID: candidate.ID}
}

// finishesAfter informa si a cierra después que b según las reglas del resolver.
func finishesAfter(a, b *entity.Purchase) bool {
	switch {
	case a.FinishDate == nil && b.FinishDate == nil:
		return a.CreatedAt.After(b.CreatedAt)
	case a.FinishDate == nil:
		return false
	case b.FinishDate == nil:
		return true
	case a.FinishDate.Equal(*b.FinishDate):
		return a.CreatedAt.After(b.CreatedAt)
	default:
		return a.FinishDate.After(*b.FinishDate)
	}
}

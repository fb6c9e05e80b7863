package hours

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
)

// Profitability proyección de rentabilidad de una compra. Es una vista
// derivada: se recalcula en cada consulta a partir de las colecciones
// vigentes, nunca se persiste.
type Profitability struct {
	CommissionValue decimal.Decimal
	TransportCosts  decimal.Decimal
	TotalCosts      decimal.Decimal
	Profit          decimal.Decimal
	ProfitPercent   decimal.Decimal
	DaysToFinish    int
}

// CommissionValue comisión del técnico: valor del contrato × porcentaje / 100.
func CommissionValue(contractValue, commissionPercent decimal.Decimal) decimal.Decimal {
	return contractValue.Mul(commissionPercent).Div(hundred).Round(2)
}

// TransportCosts suma de costos de traslado de las sesiones de la compra.
func TransportCosts(purchaseID string, sessions []*entity.WorkSession) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sessions {
		if s.PurchaseID == purchaseID {
			total = total.Add(s.TransportCost())
		}
	}
	return total
}

// DaysToFinish días transcurridos (inclusive) entre la primera y la última
// sesión de la compra. Mínimo 1 si existe alguna sesión; 0 si no hay ninguna.
func DaysToFinish(purchaseID string, sessions []*entity.WorkSession) int {
	var first, last time.Time
	found := false
	for _, s := range sessions {
		if s.PurchaseID != purchaseID {
			continue
		}
		d := s.Date.Truncate(24 * time.Hour)
		if !found {
			first, last = d, d
			found = true
			continue
		}
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	if !found {
		return 0
	}
	days := int(last.Sub(first).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// ComputeProfitability construye la proyección completa para una compra:
// costos = traslados + comisión; utilidad = valor del contrato − costos;
// porcentaje de utilidad sobre el valor del contrato (0 si el valor es 0).
func ComputeProfitability(p *entity.Purchase, sessions []*entity.WorkSession) Profitability {
	commission := CommissionValue(p.ContractValue, p.CommissionPercent)
	transport := TransportCosts(p.ID, sessions)
	totalCosts := transport.Add(commission)
	profit := p.ContractValue.Sub(totalCosts)

	profitPct := decimal.Zero
	if !p.ContractValue.IsZero() {
		profitPct = profit.Div(p.ContractValue).Mul(hundred).Round(2)
	}

	return Profitability{
		CommissionValue: commission,
		TransportCosts:  transport,
		TotalCosts:      totalCosts,
		Profit:          profit.Round(2),
		ProfitPercent:   profitPct,
		DaysToFinish:    DaysToFinish(p.ID, sessions),
	}
}

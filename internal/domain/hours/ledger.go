// Package hours implementa el núcleo contable del sistema: el libro de horas
// (horas usadas y saldo por compra), el resolver de horas residuales entre
// compras sucesivas de un mismo cliente y las proyecciones de comisión y
// rentabilidad. Todas las funciones son puras: reciben colecciones y devuelven
// valores derivados, sin estado propio.
package hours

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
)

var (
	sixty   = decimal.NewFromInt(60)
	hundred = decimal.NewFromInt(100)
)

// TimeRange tramo horario de una sesión, en formato "HH:MM".
// Un tramo con ambos extremos vacíos se considera no usado.
type TimeRange struct {
	Start string
	End   string
}

// Empty informa si el tramo no fue diligenciado.
func (r TimeRange) Empty() bool {
	return r.Start == "" && r.End == ""
}

// parseClock interpreta "HH:MM" (también acepta "H:MM").
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("hora inválida %q: se espera HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("hora inválida %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("minutos inválidos %q", s)
	}
	return hour, minute, nil
}

// RangeHours horas decimales de un tramo: (horaFin − horaInicio) + (minFin − minInicio)/60.
//
// No hay manejo de medianoche: un tramo con fin anterior al inicio produce una
// contribución NEGATIVA a propósito. Las sesiones nocturnas no están soportadas
// y el valor negativo queda visible en el saldo en lugar de ocultarse.
func RangeHours(r TimeRange) (decimal.Decimal, error) {
	if r.Empty() {
		return decimal.Zero, nil
	}
	sh, sm, err := parseClock(r.Start)
	if err != nil {
		return decimal.Zero, err
	}
	eh, em, err := parseClock(r.End)
	if err != nil {
		return decimal.Zero, err
	}
	h := decimal.NewFromInt(int64(eh - sh))
	m := decimal.NewFromInt(int64(em - sm)).Div(sixty)
	return h.Add(m), nil
}

// SessionHours horas calculadas de una sesión: suma de sus dos tramos,
// redondeada a 2 decimales. Es el valor que se persiste como horas_calculadas.
func SessionHours(r1, r2 TimeRange) (decimal.Decimal, error) {
	h1, err := RangeHours(r1)
	if err != nil {
		return decimal.Zero, err
	}
	h2, err := RangeHours(r2)
	if err != nil {
		return decimal.Zero, err
	}
	return h1.Add(h2).Round(2), nil
}

// UsedHours suma de horas_calculadas de todas las sesiones de la compra.
func UsedHours(purchaseID string, sessions []*entity.WorkSession) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sessions {
		if s.PurchaseID == purchaseID {
			total = total.Add(s.ComputedHours)
		}
	}
	return total
}

// Balance saldo de la compra: horas contratadas − horas usadas.
// Puede ser negativo: el sobreuso está permitido y solo se señala en la UI.
func Balance(p *entity.Purchase, sessions []*entity.WorkSession) decimal.Decimal {
	return p.ContractedHours.Sub(UsedHours(p.ID, sessions))
}

// PercentComplete porcentaje de avance, tope 100.
// Con horas contratadas en 0 devuelve 0 (nunca NaN hacia la UI).
func PercentComplete(contracted, used decimal.Decimal) decimal.Decimal {
	if contracted.IsZero() {
		return decimal.Zero
	}
	pct := used.Mul(hundred).Div(contracted)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct.Round(2)
}

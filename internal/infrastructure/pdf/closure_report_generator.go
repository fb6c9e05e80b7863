// Package pdf genera el reporte de cierre de una compra de horas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  Protocolo + Estado                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: razón social + tipo + módulos + técnico            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDO: contratadas / utilizadas / saldo                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Técnico | Tramo 1 | Tramo 2 | Horas | Medio  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ASISTENTES + fechas de inicio y cierre                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/trainmaster-app/trainmaster-api/internal/application/training"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
)

var _ training.ClosureReportGenerator = (*ClosureReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ClosureReportGenerator implementa training.ClosureReportGenerator usando Maroto v2.
type ClosureReportGenerator struct{}

// NewClosureReportGenerator construye el generador.
func NewClosureReportGenerator() *ClosureReportGenerator { return &ClosureReportGenerator{} }

// GenerateClosureReport genera el PDF y devuelve sus bytes.
func (g *ClosureReportGenerator) GenerateClosureReport(_ context.Context, data training.ClosureReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de cierre "+data.Protocol, true).
		WithAuthor(data.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(balanceRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableSessionRows(data.Sessions) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(data) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y protocolo + estado (der).
func headerRow(data training.ClosureReportData) core.Row {
	status := "EN CURSO"
	if data.Status == entity.PurchaseCompleted {
		status = "FINALIZADO"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de cierre de entrenamiento", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PROTOCOLO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(data.Protocol, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(status, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: cliente, tipo de entrenamiento, módulos y técnico.
func customerRow(data training.ClosureReportData) core.Row {
	modules := strings.Join(data.Modules, ", ")
	if modules == "" {
		modules = "—"
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(data.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tipo: %s   |   Módulos: %s   |   Técnico: %s",
				data.TrainingType, modules, data.TechnicianName,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// balanceRow: contratadas / utilizadas / saldo, en tres columnas.
func balanceRow(data training.ClosureReportData) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		cell("HORAS CONTRATADAS", data.ContractedHours.String()),
		cell("HORAS UTILIZADAS", data.UsedHours.String()),
		cell("SALDO", data.Balance.String()),
	)
}

// tableHeaderRow: cabecera de la tabla de sesiones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Técnico", 3, align.Left),
		h("Tramo 1", 2, align.Center),
		h("Tramo 2", 2, align.Center),
		h("Horas", 1, align.Right),
		h("Traslado", 2, align.Center),
	)
}

// tableSessionRows: una fila por sesión de trabajo.
func tableSessionRows(sessions []training.ClosureReportSession) []core.Row {
	result := make([]core.Row, 0, len(sessions))
	for _, s := range sessions {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				s.Date.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				s.TechnicianName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				timeSlot(s.Start1, s.End1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				timeSlot(s.Start2, s.End2),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				s.Hours.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				transportLabel(s.Transport),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// footerRows: asistentes + fechas de inicio y cierre.
func footerRows(data training.ClosureReportData) []core.Row {
	attendees := strings.Join(data.Attendees, ", ")
	if attendees == "" {
		attendees = "—"
	}
	finish := "—"
	if data.FinishDate != nil {
		finish = data.FinishDate.Format("02/01/2006")
	}
	return []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New("ASISTENTES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(attendees, props.Text{Size: 8, Top: 6, Color: colorGray}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Inicio: %s   |   Cierre: %s",
				data.StartDate.Format("02/01/2006"), finish,
			), props.Text{Size: 8, Top: 1, Color: colorGray}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func timeSlot(start, end string) string {
	if start == "" && end == "" {
		return "—"
	}
	return start + "–" + end
}

func transportLabel(t string) string {
	switch t {
	case entity.TransportOnline:
		return "Online"
	case entity.TransportUber:
		return "Uber"
	case entity.TransportOwnVehicle:
		return "Vehículo propio"
	default:
		return t
	}
}

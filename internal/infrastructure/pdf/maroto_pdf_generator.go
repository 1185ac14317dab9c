// Package pdf implementa la generación del reporte gráfico del pipeline de
// ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Pipeline  │  Generado para + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Etapa | # Deals | Monto total                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Título | Etapa | Prob. | Cierre esperado | Monto    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Deals abiertos / Monto ponderado / TOTAL          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.PipelineReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa usecase.PipelineReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePipelineReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePipelineReport(
	deals []*entity.Deal,
	totals []repository.StageTotal,
	generatedFor string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Pipeline de Ventas", true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(generatedFor))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Resumen por etapa
	m.AddRows(summaryHeaderRow())
	for _, r := range summaryRows(totals) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de deals
	m.AddRows(tableHeaderRow())
	for _, r := range tableDealRows(deals) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(totals))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y destinatario + fecha (der).
func headerRow(generatedFor string) core.Row {
	fecha := time.Now().Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE PIPELINE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Oportunidades visibles según rol y territorio", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado para: "+generatedFor, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// summaryHeaderRow: cabecera del resumen por etapa.
func summaryHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Etapa", 6, align.Left),
		h("Deals", 2, align.Center),
		h("Monto total", 4, align.Right),
	)
}

// summaryRows: una fila por etapa con totales agregados.
func summaryRows(totals []repository.StageTotal) []core.Row {
	result := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(t.Stage, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", t.Count),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				"$"+formatMoney(t.Amount.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// tableHeaderRow: cabecera de la tabla de oportunidades.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Oportunidad", 5, align.Left),
		h("Etapa", 2, align.Left),
		h("Prob.", 1, align.Center),
		h("Cierre esperado", 2, align.Center),
		h("Monto", 2, align.Right),
	)
}

// tableDealRows: una fila por oportunidad.
func tableDealRows(deals []*entity.Deal) []core.Row {
	result := make([]core.Row, 0, len(deals))
	for _, d := range deals {
		close := "—"
		if d.ExpectedClose != nil {
			close = d.ExpectedClose.Format("02/01/2006")
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				d.Title,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				d.Stage,
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d%%", d.Probability),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				close,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(d.Amount.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha. El monto ponderado usa
// la probabilidad por defecto de cada etapa sobre los agregados.
func totalsRow(totals []repository.StageTotal) core.Row {
	count := 0
	total := decimal.Zero
	weighted := decimal.Zero
	for _, t := range totals {
		count += t.Count
		total = total.Add(t.Amount)
		prob := decimal.NewFromInt(int64(entity.StageProbability(t.Stage)))
		weighted = weighted.Add(t.Amount.Mul(prob).Div(decimal.NewFromInt(100)))
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3), // espacio izquierdo
		col.New(4).Add(
			label("Total de deals:"),
			label("Monto ponderado:"),
			grandLabel("MONTO TOTAL:"),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", count)),
			value("$"+formatMoney(weighted.StringFixed(0))),
			grandValue("$"+formatMoney(total.StringFixed(0))),
		),
		col.New(2), // espacio derecho
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

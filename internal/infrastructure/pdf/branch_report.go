// Package pdf genera el reporte comparativo de sucursales con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título del reporte  │  fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Métrica | Sucursal 1 | Sucursal 2                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DIFERENCIA DE VENTAS                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
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

	"github.com/jhoicas/retailflow-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// BranchReport implementa usecase.BranchReportRenderer usando Maroto v2.
type BranchReport struct {
	appName string
	now     func() time.Time
}

// NewBranchReport construye el generador. appName aparece como autor del PDF.
func NewBranchReport(appName string) *BranchReport {
	return &BranchReport{appName: appName, now: time.Now}
}

// RenderComparison genera el PDF de la comparación y devuelve sus bytes.
func (g *BranchReport) RenderComparison(_ context.Context, cmp *dto.BranchComparisonResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comparación de sucursales", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(cmp, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(cmp))
	m.AddRows(metricRows(cmp)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(differenceRow(cmp.SalesDifference))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(cmp *dto.BranchComparisonResponse, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("COMPARACIÓN DE SUCURSALES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(cmp.Branch1.Name+" vs "+cmp.Branch2.Name, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(cmp *dto.BranchComparisonResponse) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Métrica", 4, align.Left),
		h(cmp.Branch1.Name, 4, align.Right),
		h(cmp.Branch2.Name, 4, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// metricRows: una fila por métrica comparada.
func metricRows(cmp *dto.BranchComparisonResponse) []core.Row {
	b1, b2 := cmp.Branch1, cmp.Branch2
	metrics := []struct {
		label  string
		v1, v2 string
	}{
		{"Ubicación", b1.Location, b2.Location},
		{"Ventas totales", "$" + formatMoney(b1.TotalSales), "$" + formatMoney(b2.TotalSales)},
		{"Productos activos", strconv.Itoa(b1.ProductCount), strconv.Itoa(b2.ProductCount)},
		{"Empleados", strconv.Itoa(b1.EmployeeCount), strconv.Itoa(b2.EmployeeCount)},
	}
	rows := make([]core.Row, 0, len(metrics))
	for _, mt := range metrics {
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(mt.label, props.Text{Size: 8, Style: fontstyle.Bold, Top: 1, Left: 1})),
			col.New(4).Add(text.New(mt.v1, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(4).Add(text.New(mt.v2, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func differenceRow(diff decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("DIFERENCIA DE VENTAS:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(diff), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", -1234.5 → "-1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	buf = append(buf, ',')
	buf = append(buf, frac...)
	return string(buf)
}

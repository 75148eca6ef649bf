// Package pdf genera el resumen mensual de stock en PDF con Maroto v2.
//
// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + periodo   │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BLOQUE MATERIAL: cabecera + filas + totales de valor        │
//	│  BLOQUE PRODUCT:  cabecera + filas + totales de valor        │
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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/application/report"
)

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 20, Blue: 20}
)

var blockTitles = map[string]string{
	"MATERIAL": "MATERIALES",
	"PRODUCT":  "PRODUCTOS",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// SummaryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) SummaryPDF(_ context.Context, doc report.SummaryDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(doc.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, b := range doc.Blocks {
		m.AddRows(row.New(4))
		m.AddRows(blockTitleRow(b))
		m.AddRows(tableHeaderRow())
		for _, r := range tableDetailRows(b.Rows) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
		m.AddRows(totalsRow(b))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y periodo (izq), fecha de generación (der).
func headerRow(doc report.SummaryDocument) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Periodo: "+doc.Period, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func blockTitleRow(b dto.SummaryBlock) core.Row {
	title, ok := blockTitles[b.ItemType]
	if !ok {
		title = b.ItemType
	}
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%s (%d)", title, len(b.Rows)), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		}),
	))
}

// tableHeaderRow: 12 columnas; ID y nombre ocupan 4, cada par cantidad/valor 2.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("ID", 1, align.Left),
		h("Nombre", 3, align.Left),
		h("Cant. ini.", 1, align.Right),
		h("Valor ini.", 1, align.Right),
		h("Cant. ent.", 1, align.Right),
		h("Valor ent.", 1, align.Right),
		h("Cant. sal.", 1, align.Right),
		h("Valor sal.", 1, align.Right),
		h("Cant. fin.", 1, align.Right),
		h("Valor fin.", 1, align.Right),
	)
}

// tableDetailRows: una fila por ítem; cierres negativos en rojo.
func tableDetailRows(rows []dto.MonthlySummaryResponse) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, s := range rows {
		numCol := func(d decimal.Decimal, places int32) core.Col {
			p := props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1}
			if d.IsNegative() {
				p.Color = colorRed
			}
			return col.New(1).Add(text.New(formatAmount(d, places), p))
		}
		result = append(result, row.New(5).Add(
			col.New(1).Add(text.New(s.FkID, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(3).Add(text.New(s.ItemName, props.Text{Size: 7, Top: 1, Left: 1})),
			numCol(s.OpeningQty, 2), numCol(s.OpeningValue, 2),
			numCol(s.InQty, 2), numCol(s.InValue, 2),
			numCol(s.OutQty, 2), numCol(s.OutValue, 2),
			numCol(s.ClosingQty, 2), numCol(s.ClosingValue, 2),
		))
	}
	return result
}

// totalsRow: totales de valor del bloque bajo sus columnas.
func totalsRow(b dto.SummaryBlock) core.Row {
	v := func(d decimal.Decimal) core.Col {
		return col.New(1).Add(text.New(formatAmount(d, 2), props.Text{
			Style: fontstyle.Bold, Size: 7, Align: align.Right, Top: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		col.New(4).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1})),
		col.New(1), v(b.OpeningValue),
		col.New(1), v(b.InValue),
		col.New(1), v(b.OutValue),
		col.New(1), v(b.ClosingValue),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatAmount redondea a places decimales e inserta comas de miles.
// Ej: 1234567.891 → "1,234,567.89", -723.2 → "-723.20"
func formatAmount(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + frac
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}

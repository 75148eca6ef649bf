// Package excel genera libros .xlsx con excelize.
package excel

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/application/report"
)

var _ report.SpreadsheetWriter = (*Writer)(nil)

var summaryHeader = []string{
	"Tipo", "ID", "Nombre",
	"Cant. inicial", "Valor inicial",
	"Cant. entradas", "Valor entradas",
	"Cant. salidas", "Valor salidas",
	"Cant. final", "Valor final",
}

var movementHeader = []string{
	"Fecha", "Tipo", "ID", "SKU", "Movimiento", "Cantidad", "Costo unit.", "Valor", "Referencia", "Descripción",
}

// Writer implementa report.SpreadsheetWriter.
type Writer struct{}

// NewWriter construye el writer.
func NewWriter() *Writer { return &Writer{} }

// SummaryWorkbook una hoja por bloque (MATERIAL, PRODUCT) con fila de totales de valor.
func (w *Writer) SummaryWorkbook(doc report.SummaryDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	for i, b := range doc.Blocks {
		sheet := b.ItemType
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("excel: hoja: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("excel: hoja: %w", err)
		}

		if err := f.SetCellValue(sheet, "A1", doc.Title); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
			return nil, err
		}
		if err := writeRow(f, sheet, 3, toAny(summaryHeader)); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, "A3", cell(len(summaryHeader), 3), bold); err != nil {
			return nil, err
		}

		r := 4
		for _, s := range b.Rows {
			values := []any{
				s.ItemType, s.FkID, s.ItemName,
				num(s.OpeningQty), num(s.OpeningValue),
				num(s.InQty), num(s.InValue),
				num(s.OutQty), num(s.OutValue),
				num(s.ClosingQty), num(s.ClosingValue),
			}
			if err := writeRow(f, sheet, r, values); err != nil {
				return nil, err
			}
			r++
		}
		totals := []any{"TOTAL", "", "", "", num(b.OpeningValue), "", num(b.InValue), "", num(b.OutValue), "", num(b.ClosingValue)}
		if err := writeRow(f, sheet, r, totals); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell(1, r), cell(len(totals), r), bold); err != nil {
			return nil, err
		}
		_ = f.SetColWidth(sheet, "C", "C", 32)
	}
	return writeBytes(f)
}

// MovementsWorkbook listado plano de movimientos.
func (w *Writer) MovementsWorkbook(title string, movs []dto.StockMovementResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheet, 3, toAny(movementHeader)); err != nil {
		return nil, err
	}
	for i, m := range movs {
		values := []any{
			m.Date.Format("2006-01-02 15:04"), m.ItemType, m.FkID, m.SKU, m.MovementType,
			num(m.Qty), num(m.UnitCost), num(m.Value), m.Reference, m.Description,
		}
		if err := writeRow(f, sheet, i+4, values); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 18)
	return writeBytes(f)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
		return fmt.Errorf("excel: fila %d: %w", row, err)
	}
	return nil
}

func writeBytes(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func num(d decimal.Decimal) float64 { return d.InexactFloat64() }

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

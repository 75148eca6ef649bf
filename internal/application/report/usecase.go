package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IhsanMhd-mr/back-ims/internal/domain"
)

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"

	maxExportMovements = 1000
)

// File documento generado listo para descargar.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// UseCase exportaciones de resúmenes y movimientos.
type UseCase struct {
	summaries SummarySource
	movements MovementSource
	xlsx      SpreadsheetWriter
	pdf       PDFGenerator
	clock     func() time.Time
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(summaries SummarySource, movements MovementSource, xlsx SpreadsheetWriter, pdf PDFGenerator) *UseCase {
	return &UseCase{summaries: summaries, movements: movements, xlsx: xlsx, pdf: pdf, clock: time.Now}
}

// ExportSummary genera el resumen del mes en el formato pedido ("xlsx" por defecto).
func (uc *UseCase) ExportSummary(ctx context.Context, year, month int, format string) (*File, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatXLSX
	}
	if format != FormatXLSX && format != FormatPDF {
		return nil, domain.ErrInvalidInput
	}

	blocks, err := uc.summaries.Grouped(ctx, year, month)
	if err != nil {
		return nil, err
	}
	period := fmt.Sprintf("%04d-%02d", year, month)
	doc := SummaryDocument{
		Title:       "Resumen mensual de stock " + period,
		Period:      period,
		GeneratedAt: uc.clock().UTC(),
		Blocks:      blocks,
	}

	name := "stock-summary-" + period + "." + format
	switch format {
	case FormatPDF:
		data, err := uc.pdf.SummaryPDF(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("report: pdf: %w", err)
		}
		return &File{Name: name, ContentType: contentTypePDF, Data: data}, nil
	default:
		data, err := uc.xlsx.SummaryWorkbook(doc)
		if err != nil {
			return nil, fmt.Errorf("report: xlsx: %w", err)
		}
		return &File{Name: name, ContentType: contentTypeXLSX, Data: data}, nil
	}
}

// ExportMovements genera el listado de movimientos de la ventana en .xlsx.
func (uc *UseCase) ExportMovements(ctx context.Context, itemType, fkID string, from, to *time.Time) (*File, error) {
	movs, err := uc.movements.ListMovements(ctx, itemType, fkID, from, to, maxExportMovements)
	if err != nil {
		return nil, err
	}
	data, err := uc.xlsx.MovementsWorkbook("Movimientos de stock", movs)
	if err != nil {
		return nil, fmt.Errorf("report: xlsx: %w", err)
	}
	name := "stock-movements-" + uc.clock().UTC().Format("20060102") + "." + FormatXLSX
	return &File{Name: name, ContentType: contentTypeXLSX, Data: data}, nil
}

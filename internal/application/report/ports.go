package report

import (
	"context"
	"time"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
)

// SummaryDocument datos de un resumen mensual listo para renderizar.
type SummaryDocument struct {
	Title       string
	Period      string
	GeneratedAt time.Time
	Blocks      []dto.SummaryBlock
}

// SpreadsheetWriter genera libros .xlsx (implementado en infrastructure/excel).
type SpreadsheetWriter interface {
	SummaryWorkbook(doc SummaryDocument) ([]byte, error)
	MovementsWorkbook(title string, movs []dto.StockMovementResponse) ([]byte, error)
}

// PDFGenerator genera el resumen mensual en PDF (implementado en infrastructure/pdf).
type PDFGenerator interface {
	SummaryPDF(ctx context.Context, doc SummaryDocument) ([]byte, error)
}

// SummarySource lectura agrupada de resúmenes.
type SummarySource interface {
	Grouped(ctx context.Context, year, month int) ([]dto.SummaryBlock, error)
}

// MovementSource lectura del ledger.
type MovementSource interface {
	ListMovements(ctx context.Context, itemType, fkID string, from, to *time.Time, limit int) ([]dto.StockMovementResponse, error)
}

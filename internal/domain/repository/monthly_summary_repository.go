package repository

import (
	"context"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
)

// SummaryFilter filtros opcionales de consulta de resúmenes.
type SummaryFilter struct {
	ItemType string
	FkID     string
}

// MonthlySummaryRepository puerto de los resúmenes mensuales (caché derivada del ledger).
type MonthlySummaryRepository interface {
	// Get devuelve nil, nil si no existe.
	Get(ctx context.Context, year, month int, key entity.ItemKey) (*entity.MonthlySummary, error)
	// ListByPeriod ordena por item_type y fk_id.
	ListByPeriod(ctx context.Context, year, month int, f SummaryFilter) ([]*entity.MonthlySummary, error)
	Upsert(ctx context.Context, s *entity.MonthlySummary) error
	DeletePeriod(ctx context.Context, year, month int) error
	// TryLockPeriod toma el lock de regeneración del periodo hasta el fin de la transacción.
	// Devuelve false si otro proceso lo tiene.
	TryLockPeriod(ctx context.Context, year, month int) (bool, error)
}

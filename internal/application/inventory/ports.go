package inventory

import (
	"context"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que una generación mensual se aplique completa o no se aplique.
type TxRunner interface {
	RunSummary(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		summaryRepo repository.MonthlySummaryRepository,
	) error) error
}

// ItemNamer resuelve el nombre de un material o producto del catálogo.
// Devuelve "" si el ítem no existe.
type ItemNamer interface {
	ItemName(ctx context.Context, key entity.ItemKey) (string, error)
}

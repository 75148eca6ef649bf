package production

import (
	"context"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repositorios atados a ella.
// Una ejecución de producción escribe todos sus movimientos y la corrida o nada.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		prodRepo repository.ProductionRepository,
	) error) error
}

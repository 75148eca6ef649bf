package repository

import (
	"context"
	"time"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
)

// MovementFilter criterios de consulta del ledger. From es inclusivo y To exclusivo;
// nil deja la ventana abierta. Limit 0 = sin límite.
type MovementFilter struct {
	ItemType string
	FkID     string
	From     *time.Time
	To       *time.Time
	Limit    int
}

// StockMovementRepository puerto del ledger de stock (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// List devuelve movimientos no borrados ordenados por date ASC, seq ASC.
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error)
	// ItemsWithActivity ítems con al menos un movimiento en [from, to).
	ItemsWithActivity(ctx context.Context, from, to time.Time) ([]entity.ItemKey, error)
	SoftDelete(ctx context.Context, id, deletedBy string, at time.Time) error
}

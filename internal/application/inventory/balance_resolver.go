package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/IhsanMhd-mr/back-ims/internal/domain"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	ledger "github.com/IhsanMhd-mr/back-ims/internal/domain/inventory"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

// BalanceResolver calcula saldos de apertura. No escribe nada.
type BalanceResolver struct {
	movRepo     repository.StockMovementRepository
	summaryRepo repository.MonthlySummaryRepository
}

// NewBalanceResolver construye el resolvedor.
func NewBalanceResolver(movRepo repository.StockMovementRepository, summaryRepo repository.MonthlySummaryRepository) *BalanceResolver {
	return &BalanceResolver{movRepo: movRepo, summaryRepo: summaryRepo}
}

// OpeningBalance saldo del ítem justo antes de asOf.
func (r *BalanceResolver) OpeningBalance(ctx context.Context, itemType, fkID string, asOf time.Time) (ledger.Balance, error) {
	key, err := itemKey(itemType, fkID)
	if err != nil {
		return ledger.Balance{}, err
	}
	return openingBalance(ctx, r.movRepo, r.summaryRepo, key, asOf)
}

// openingBalance usa el cierre del mes anterior a asOf como base si existe y pliega encima
// los movimientos del mes de asOf previos a asOf. Sin ese resumen pliega todo el ledger anterior a asOf.
func openingBalance(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	summaryRepo repository.MonthlySummaryRepository,
	key entity.ItemKey,
	asOf time.Time,
) (ledger.Balance, error) {
	asOf = asOf.UTC()
	month := ledger.PeriodOf(asOf)
	prev := month.Prev()

	prior, err := summaryRepo.Get(ctx, prev.Year, prev.Month, key)
	if err != nil {
		return ledger.Balance{}, err
	}
	if prior != nil {
		base := ledger.Balance{Qty: prior.ClosingQty, Value: prior.ClosingValue}
		start := month.Start()
		if asOf.Equal(start) {
			return base, nil
		}
		movs, err := movRepo.List(ctx, repository.MovementFilter{
			ItemType: key.ItemType, FkID: key.FkID, From: &start, To: &asOf,
		})
		if err != nil {
			return ledger.Balance{}, err
		}
		return ledger.Fold(base, movs), nil
	}

	movs, err := movRepo.List(ctx, repository.MovementFilter{
		ItemType: key.ItemType, FkID: key.FkID, To: &asOf,
	})
	if err != nil {
		return ledger.Balance{}, err
	}
	return ledger.Fold(ledger.Balance{}, movs), nil
}

// CurrentBalance saldo con los movimientos fechados hasta now inclusive (sin atajo de resúmenes).
// Los movimientos con fecha futura no cuentan.
func CurrentBalance(ctx context.Context, movRepo repository.StockMovementRepository, key entity.ItemKey, now time.Time) (ledger.Balance, error) {
	// timestamptz guarda microsegundos
	to := now.Add(time.Microsecond)
	movs, err := movRepo.List(ctx, repository.MovementFilter{ItemType: key.ItemType, FkID: key.FkID, To: &to})
	if err != nil {
		return ledger.Balance{}, err
	}
	return ledger.Fold(ledger.Balance{}, movs), nil
}

func itemKey(itemType, fkID string) (entity.ItemKey, error) {
	itemType = strings.ToUpper(strings.TrimSpace(itemType))
	if !entity.ValidItemType(itemType) {
		return entity.ItemKey{}, domain.ErrInvalidItemType
	}
	fkID = strings.TrimSpace(fkID)
	if fkID == "" {
		return entity.ItemKey{}, domain.ErrInvalidInput
	}
	return entity.ItemKey{ItemType: itemType, FkID: fkID}, nil
}

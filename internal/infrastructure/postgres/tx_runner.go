package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IhsanMhd-mr/back-ims/internal/application/inventory"
	"github.com/IhsanMhd-mr/back-ims/internal/application/production"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSummary transacción con ledger y resúmenes (generación mensual).
func (r *TxRunner) RunSummary(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	summaryRepo repository.MonthlySummaryRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStockMovementRepository(tx), NewMonthlySummaryRepository(tx))
	})
}

// RunProduction transacción con ledger y producción (ejecución de un plan).
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	prodRepo repository.ProductionRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStockMovementRepository(tx), NewProductionRepository(tx))
	})
}

// run inicia la transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, seq, item_type, fk_id, sku, variant_id, movement_type, qty, unit_cost, value,
	date, description, reference, status, created_at, created_by, deleted_at, deleted_by`

// StockMovementRepo ledger de stock sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta el movimiento y completa Seq con la identidad asignada por la BD.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, item_type, fk_id, sku, variant_id, movement_type, qty, unit_cost, value,
			date, description, reference, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ItemType, m.FkID, m.SKU, m.VariantID, m.MovementType, m.Qty, m.UnitCost, m.Value,
		m.Date, m.Description, m.Reference, m.Status, m.CreatedAt, m.CreatedBy,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento (incluidos los borrados). nil, nil si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// List movimientos no borrados por date ASC, seq ASC.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query, args, err := movementListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stock movements query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ItemsWithActivity ítems con movimientos no borrados en [from, to).
func (r *StockMovementRepo) ItemsWithActivity(ctx context.Context, from, to time.Time) ([]entity.ItemKey, error) {
	query := `
		SELECT DISTINCT item_type, fk_id FROM stock_movements
		WHERE deleted_at IS NULL AND date >= $1 AND date < $2
		ORDER BY item_type, fk_id`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("items with activity: %w", err)
	}
	defer rows.Close()
	var keys []entity.ItemKey
	for rows.Next() {
		var k entity.ItemKey
		if err := rows.Scan(&k.ItemType, &k.FkID); err != nil {
			return nil, fmt.Errorf("scan item key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// SoftDelete marca el movimiento como borrado. No toca filas ya borradas.
func (r *StockMovementRepo) SoftDelete(ctx context.Context, id, deletedBy string, at time.Time) error {
	query := `UPDATE stock_movements SET deleted_at = $2, deleted_by = $3 WHERE id = $1 AND deleted_at IS NULL`
	if _, err := r.q.Exec(ctx, query, id, at, deletedBy); err != nil {
		return fmt.Errorf("soft delete stock movement: %w", err)
	}
	return nil
}

func movementListQuery(f repository.MovementFilter) sq.SelectBuilder {
	b := psql.Select(movementColumns).From("stock_movements").Where("deleted_at IS NULL")
	if f.ItemType != "" {
		b = b.Where(sq.Eq{"item_type": f.ItemType})
	}
	if f.FkID != "" {
		b = b.Where(sq.Eq{"fk_id": f.FkID})
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"date": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.Lt{"date": *f.To})
	}
	b = b.OrderBy("date ASC", "seq ASC")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	return b
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.Seq, &m.ItemType, &m.FkID, &m.SKU, &m.VariantID, &m.MovementType,
		&m.Qty, &m.UnitCost, &m.Value, &m.Date, &m.Description, &m.Reference, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.DeletedAt, &m.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	m.Date = m.Date.UTC()
	return &m, nil
}

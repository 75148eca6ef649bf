package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

var _ repository.MonthlySummaryRepository = (*MonthlySummaryRepo)(nil)

const summaryColumns = `year, month, item_type, fk_id, item_name,
	opening_qty, opening_value, in_qty, in_value, out_qty, out_value, closing_qty, closing_value`

// MonthlySummaryRepo resúmenes mensuales sobre PostgreSQL (usable con pool o tx).
type MonthlySummaryRepo struct {
	q Querier
}

// NewMonthlySummaryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMonthlySummaryRepository(q Querier) *MonthlySummaryRepo {
	return &MonthlySummaryRepo{q: q}
}

// Get devuelve la fila o nil, nil.
func (r *MonthlySummaryRepo) Get(ctx context.Context, year, month int, key entity.ItemKey) (*entity.MonthlySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM stock_monthly_summaries
		WHERE year = $1 AND month = $2 AND item_type = $3 AND fk_id = $4`
	s, err := scanSummary(r.q.QueryRow(ctx, query, year, month, key.ItemType, key.FkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get monthly summary: %w", err)
	}
	return s, nil
}

// ListByPeriod filas del mes ordenadas por item_type, fk_id.
func (r *MonthlySummaryRepo) ListByPeriod(ctx context.Context, year, month int, f repository.SummaryFilter) ([]*entity.MonthlySummary, error) {
	query, args, err := summaryListQuery(year, month, f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build monthly summaries query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list monthly summaries: %w", err)
	}
	defer rows.Close()
	var list []*entity.MonthlySummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan monthly summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Upsert inserta o reemplaza la fila por su clave natural.
func (r *MonthlySummaryRepo) Upsert(ctx context.Context, s *entity.MonthlySummary) error {
	query := `
		INSERT INTO stock_monthly_summaries (` + summaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (year, month, item_type, fk_id) DO UPDATE SET
			item_name = EXCLUDED.item_name,
			opening_qty = EXCLUDED.opening_qty,
			opening_value = EXCLUDED.opening_value,
			in_qty = EXCLUDED.in_qty,
			in_value = EXCLUDED.in_value,
			out_qty = EXCLUDED.out_qty,
			out_value = EXCLUDED.out_value,
			closing_qty = EXCLUDED.closing_qty,
			closing_value = EXCLUDED.closing_value`
	_, err := r.q.Exec(ctx, query,
		s.Year, s.Month, s.ItemType, s.FkID, s.ItemName,
		s.OpeningQty, s.OpeningValue, s.InQty, s.InValue, s.OutQty, s.OutValue, s.ClosingQty, s.ClosingValue,
	)
	if err != nil {
		return fmt.Errorf("upsert monthly summary: %w", err)
	}
	return nil
}

// DeletePeriod borra todas las filas del mes.
func (r *MonthlySummaryRepo) DeletePeriod(ctx context.Context, year, month int) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_monthly_summaries WHERE year = $1 AND month = $2`, year, month); err != nil {
		return fmt.Errorf("delete monthly summaries: %w", err)
	}
	return nil
}

// TryLockPeriod advisory lock de la transacción sobre (año*100 + mes). Sólo tiene efecto dentro de una tx.
func (r *MonthlySummaryRepo) TryLockPeriod(ctx context.Context, year, month int) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock($1, $2)`,
		lockNamespaceSummaries, int32(year*100+month)).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("lock period: %w", err)
	}
	return ok, nil
}

func summaryListQuery(year, month int, f repository.SummaryFilter) sq.SelectBuilder {
	b := psql.Select(summaryColumns).From("stock_monthly_summaries").
		Where(sq.Eq{"year": year, "month": month})
	if f.ItemType != "" {
		b = b.Where(sq.Eq{"item_type": f.ItemType})
	}
	if f.FkID != "" {
		b = b.Where(sq.Eq{"fk_id": f.FkID})
	}
	return b.OrderBy("item_type", "fk_id")
}

func scanSummary(row pgx.Row) (*entity.MonthlySummary, error) {
	var s entity.MonthlySummary
	err := row.Scan(
		&s.Year, &s.Month, &s.ItemType, &s.FkID, &s.ItemName,
		&s.OpeningQty, &s.OpeningValue, &s.InQty, &s.InValue,
		&s.OutQty, &s.OutValue, &s.ClosingQty, &s.ClosingValue,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

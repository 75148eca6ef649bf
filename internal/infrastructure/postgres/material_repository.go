package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/IhsanMhd-mr/back-ims/internal/domain"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, sku, name, unit, cost, status, created_at, updated_at, created_by, updated_by`

// MaterialRepo implementación de MaterialRepository (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material. SKU repetido devuelve domain.ErrDuplicate.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `INSERT INTO materials (` + materialColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.SKU, m.Name, m.Unit, m.Cost, m.Status, m.CreatedAt, m.UpdatedAt, m.CreatedBy, m.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID. nil, nil si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// List lista materiales por nombre con paginación.
func (r *MaterialRepo) List(ctx context.Context, limit, offset int) ([]*entity.Material, error) {
	lim, off := pageArgs(limit, offset)
	query := `SELECT ` + materialColumns + ` FROM materials ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, unit = $3, cost = $4, status = $5, updated_at = $6, updated_by = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Unit, m.Cost, m.Status, m.UpdatedAt, m.UpdatedBy)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	if err := row.Scan(&m.ID, &m.SKU, &m.Name, &m.Unit, &m.Cost, &m.Status,
		&m.CreatedAt, &m.UpdatedAt, &m.CreatedBy, &m.UpdatedBy); err != nil {
		return nil, err
	}
	return &m, nil
}

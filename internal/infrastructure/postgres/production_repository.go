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

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo plantillas y corridas de producción (usable con pool o tx).
// Cabecera y líneas se escriben en una sola sentencia (CTE), así Create es atómico también fuera de una tx.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

// CreateTemplate inserta la plantilla con sus materiales.
func (r *ProductionRepo) CreateTemplate(ctx context.Context, t *entity.ProductionTemplate) error {
	ids := make([]string, len(t.Materials))
	qtys := make([]string, len(t.Materials))
	for i, m := range t.Materials {
		ids[i] = m.MaterialID
		qtys[i] = m.Qty.String()
	}
	query := `
		WITH t AS (
			INSERT INTO production_templates (id, name, description, product_id, output_qty, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		)
		INSERT INTO production_template_materials (template_id, position, material_id, qty)
		SELECT t.id, u.ord, u.material_id, u.qty::numeric
		FROM t, unnest($9::text[], $10::text[]) WITH ORDINALITY AS u(material_id, qty, ord)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Name, t.Description, t.ProductID, t.OutputQty, t.Status, t.CreatedAt, t.UpdatedAt, ids, qtys,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert production template: %w", err)
	}
	return nil
}

// GetTemplate plantilla con materiales. nil, nil si no existe.
func (r *ProductionRepo) GetTemplate(ctx context.Context, id string) (*entity.ProductionTemplate, error) {
	query := `
		SELECT id, name, description, product_id, output_qty, status, created_at, updated_at
		FROM production_templates WHERE id = $1`
	var t entity.ProductionTemplate
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.ProductID, &t.OutputQty, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production template: %w", err)
	}
	byTemplate, err := r.templateMaterials(ctx, []string{t.ID})
	if err != nil {
		return nil, err
	}
	t.Materials = byTemplate[t.ID]
	return &t, nil
}

// ListTemplates todas las plantillas por nombre.
func (r *ProductionRepo) ListTemplates(ctx context.Context) ([]*entity.ProductionTemplate, error) {
	query := `
		SELECT id, name, description, product_id, output_qty, status, created_at, updated_at
		FROM production_templates ORDER BY name, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list production templates: %w", err)
	}
	var (
		list []*entity.ProductionTemplate
		ids  []string
	)
	for rows.Next() {
		var t entity.ProductionTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.ProductID, &t.OutputQty, &t.Status,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan production template: %w", err)
		}
		list = append(list, &t)
		ids = append(ids, t.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	byTemplate, err := r.templateMaterials(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range list {
		t.Materials = byTemplate[t.ID]
	}
	return list, nil
}

func (r *ProductionRepo) templateMaterials(ctx context.Context, ids []string) (map[string][]entity.TemplateMaterial, error) {
	query := `
		SELECT template_id, material_id, qty FROM production_template_materials
		WHERE template_id = ANY($1) ORDER BY template_id, position`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list template materials: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.TemplateMaterial, len(ids))
	for rows.Next() {
		var tid string
		var m entity.TemplateMaterial
		if err := rows.Scan(&tid, &m.MaterialID, &m.Qty); err != nil {
			return nil, fmt.Errorf("scan template material: %w", err)
		}
		out[tid] = append(out[tid], m)
	}
	return out, rows.Err()
}

// CreateRun inserta la corrida con sus ítems.
func (r *ProductionRepo) CreateRun(ctx context.Context, run *entity.ProductionRun) error {
	tids := make([]string, len(run.Items))
	names := make([]string, len(run.Items))
	qtys := make([]string, len(run.Items))
	for i, it := range run.Items {
		tids[i] = it.TemplateID
		names[i] = it.TemplateName
		qtys[i] = it.Quantity.String()
	}
	query := `
		WITH r AS (
			INSERT INTO production_runs (id, production_ref, date, notes, total_cost, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		)
		INSERT INTO production_run_items (run_id, position, template_id, template_name, quantity)
		SELECT r.id, u.ord, u.template_id, u.template_name, u.quantity::numeric
		FROM r, unnest($8::text[], $9::text[], $10::text[]) WITH ORDINALITY AS u(template_id, template_name, quantity, ord)`
	_, err := r.q.Exec(ctx, query,
		run.ID, run.ProductionRef, run.Date, run.Notes, run.TotalCost, run.CreatedAt, run.CreatedBy,
		tids, names, qtys,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production run: %w", err)
	}
	return nil
}

// ListRuns corridas más recientes primero, con sus ítems.
func (r *ProductionRepo) ListRuns(ctx context.Context, limit int) ([]*entity.ProductionRun, error) {
	query := `
		SELECT id, production_ref, date, notes, total_cost, created_at, created_by
		FROM production_runs ORDER BY date DESC, created_at DESC, id LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list production runs: %w", err)
	}
	var (
		list []*entity.ProductionRun
		ids  []string
	)
	for rows.Next() {
		var run entity.ProductionRun
		if err := rows.Scan(&run.ID, &run.ProductionRef, &run.Date, &run.Notes, &run.TotalCost,
			&run.CreatedAt, &run.CreatedBy); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan production run: %w", err)
		}
		list = append(list, &run)
		ids = append(ids, run.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT run_id, template_id, template_name, quantity FROM production_run_items
		WHERE run_id = ANY($1) ORDER BY run_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("list production run items: %w", err)
	}
	defer itemRows.Close()
	items := make(map[string][]entity.ProductionRunItem, len(ids))
	for itemRows.Next() {
		var runID string
		var it entity.ProductionRunItem
		if err := itemRows.Scan(&runID, &it.TemplateID, &it.TemplateName, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan production run item: %w", err)
		}
		items[runID] = append(items[runID], it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	for _, run := range list {
		run.Items = items[run.ID]
	}
	return list, nil
}

// CountRuns total de corridas registradas.
func (r *ProductionRepo) CountRuns(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM production_runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count production runs: %w", err)
	}
	return n, nil
}

// LockProduction advisory lock bloqueante hasta el fin de la transacción.
func (r *ProductionRepo) LockProduction(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1, 0)`, lockNamespaceProduction); err != nil {
		return fmt.Errorf("lock production: %w", err)
	}
	return nil
}

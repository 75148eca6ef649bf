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

var _ repository.VendorRepository = (*VendorRepo)(nil)

const vendorColumns = `id, unique_id, company_name, supplier_name, contact_no, address, remarks, status,
	created_by, updated_by, deleted_by, created_at, updated_at, deleted_at`

// VendorRepo implementación de VendorRepository (usable con pool o tx).
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// Create persiste un proveedor. unique_id repetido devuelve domain.ErrDuplicate.
func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, unique_id, company_name, supplier_name, contact_no, address, remarks, status,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.UniqueID, v.CompanyName, v.SupplierName, v.ContactNo, v.Address, v.Remarks, v.Status,
		v.CreatedBy, v.UpdatedBy, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor, incluido si está borrado. nil, nil si no existe.
func (r *VendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	v, err := scanVendor(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

// List proveedores no borrados, más recientes primero.
func (r *VendorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Vendor, error) {
	lim, off := pageArgs(limit, offset)
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE deleted_at IS NULL
		ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Count total de proveedores no borrados.
func (r *VendorRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM vendors WHERE deleted_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vendors: %w", err)
	}
	return n, nil
}

// Update actualiza los campos editables de un proveedor no borrado.
func (r *VendorRepo) Update(ctx context.Context, v *entity.Vendor) error {
	query := `
		UPDATE vendors SET company_name = $2, supplier_name = $3, contact_no = $4, address = $5,
			remarks = $6, status = $7, updated_by = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query,
		v.ID, v.CompanyName, v.SupplierName, v.ContactNo, v.Address, v.Remarks, v.Status, v.UpdatedBy, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca deleted_at y deleted_by.
func (r *VendorRepo) SoftDelete(ctx context.Context, id, deletedBy string) error {
	query := `UPDATE vendors SET deleted_at = now(), deleted_by = $2 WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query, id, deletedBy)
	if err != nil {
		return fmt.Errorf("soft delete vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanVendor(row pgx.Row) (*entity.Vendor, error) {
	var v entity.Vendor
	err := row.Scan(
		&v.ID, &v.UniqueID, &v.CompanyName, &v.SupplierName, &v.ContactNo, &v.Address, &v.Remarks, &v.Status,
		&v.CreatedBy, &v.UpdatedBy, &v.DeletedBy, &v.CreatedAt, &v.UpdatedAt, &v.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

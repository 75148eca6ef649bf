package repository

import (
	"context"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
)

// VendorRepository puerto de persistencia de proveedores.
type VendorRepository interface {
	Create(ctx context.Context, v *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Vendor, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, v *entity.Vendor) error
	SoftDelete(ctx context.Context, id, deletedBy string) error
}

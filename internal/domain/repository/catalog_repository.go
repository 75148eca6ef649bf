package repository

import (
	"context"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
)

// MaterialRepository puerto del catálogo de materiales.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Material, error)
	Update(ctx context.Context, m *entity.Material) error
}

// ProductRepository puerto del catálogo de productos.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
}

package inventory

import (
	"context"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

var _ ItemNamer = (*CatalogNamer)(nil)

// CatalogNamer implementa ItemNamer sobre los repositorios de materiales y productos.
type CatalogNamer struct {
	materials repository.MaterialRepository
	products  repository.ProductRepository
}

// NewCatalogNamer construye el resolvedor de nombres.
func NewCatalogNamer(materials repository.MaterialRepository, products repository.ProductRepository) *CatalogNamer {
	return &CatalogNamer{materials: materials, products: products}
}

// ItemName devuelve el nombre del catálogo o "" si no existe.
func (n *CatalogNamer) ItemName(ctx context.Context, key entity.ItemKey) (string, error) {
	switch key.ItemType {
	case entity.ItemTypeMaterial:
		m, err := n.materials.GetByID(ctx, key.FkID)
		if err != nil || m == nil {
			return "", err
		}
		return m.Name, nil
	case entity.ItemTypeProduct:
		p, err := n.products.GetByID(ctx, key.FkID)
		if err != nil || p == nil {
			return "", err
		}
		return p.Name, nil
	}
	return "", nil
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto terminado; entra al stock por producción o por /stock/add.
type Product struct {
	ID        string
	SKU       string
	Name      string
	Price     decimal.Decimal
	Cost      decimal.Decimal
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	UpdatedBy string
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/stock/movements.
// Date acepta "2006-01-02" o RFC3339; vacío = ahora.
type RecordMovementRequest struct {
	ItemType     string          `json:"item_type" validate:"required"`
	FkID         string          `json:"fk_id" validate:"required"`
	SKU          string          `json:"sku" validate:"max=100"`
	VariantID    string          `json:"variant_id"`
	MovementType string          `json:"movement_type" validate:"required"`
	Qty          decimal.Decimal `json:"qty"`
	Value        decimal.Decimal `json:"value"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Date         string          `json:"date"`
	Description  string          `json:"description" validate:"max=500"`
	Reference    string          `json:"reference"`
	Status       string          `json:"status"`
}

// AddStockRequest body para POST /api/stock/add. ProductID implica item_type PRODUCT;
// Cost es costo unitario.
type AddStockRequest struct {
	ProductID    string          `json:"product_id"`
	FkID         string          `json:"fk_id"`
	ItemType     string          `json:"item_type"`
	MovementType string          `json:"movement_type"`
	SKU          string          `json:"sku" validate:"max=100"`
	VariantID    string          `json:"variant_id"`
	Qty          decimal.Decimal `json:"qty"`
	Cost         decimal.Decimal `json:"cost"`
	Date         string          `json:"date"`
	Description  string          `json:"description" validate:"max=500"`
	Status       string          `json:"status"`
}

// StockMovementResponse salida de un movimiento del ledger.
type StockMovementResponse struct {
	ID           string          `json:"id"`
	ItemType     string          `json:"item_type"`
	FkID         string          `json:"fk_id"`
	SKU          string          `json:"sku"`
	VariantID    string          `json:"variant_id,omitempty"`
	MovementType string          `json:"movement_type"`
	Qty          decimal.Decimal `json:"qty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Value        decimal.Decimal `json:"value"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description,omitempty"`
	Reference    string          `json:"reference,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	CreatedBy    string          `json:"created_by,omitempty"`
}

// BalanceResponse saldo de un ítem a una fecha.
type BalanceResponse struct {
	ItemType string          `json:"item_type"`
	FkID     string          `json:"fk_id"`
	AsOf     time.Time       `json:"as_of"`
	Qty      decimal.Decimal `json:"qty"`
	Value    decimal.Decimal `json:"value"`
}

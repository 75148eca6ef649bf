package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un material o producto.
// Unit sólo aplica a materiales y Price sólo a productos.
type CreateItemRequest struct {
	SKU   string          `json:"sku" validate:"required,max=100"`
	Name  string          `json:"name" validate:"required,max=200"`
	Unit  string          `json:"unit" validate:"max=20"`
	Cost  decimal.Decimal `json:"cost"`
	Price decimal.Decimal `json:"price"`
}

// UpdateItemRequest campos opcionales de material o producto.
type UpdateItemRequest struct {
	Name   *string          `json:"name" validate:"omitempty,max=200"`
	Unit   *string          `json:"unit" validate:"omitempty,max=20"`
	Cost   *decimal.Decimal `json:"cost"`
	Price  *decimal.Decimal `json:"price"`
	Status *string          `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// ItemResponse salida de un material o producto.
type ItemResponse struct {
	ID        string          `json:"id"`
	ItemType  string          `json:"item_type"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit,omitempty"`
	Cost      decimal.Decimal `json:"cost"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

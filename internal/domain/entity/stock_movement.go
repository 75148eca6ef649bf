package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ítem que mueven stock.
const (
	ItemTypeMaterial = "MATERIAL"
	ItemTypeProduct  = "PRODUCT"
)

// Tipos de movimiento del ledger.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// StatusActive estado por defecto de movimientos, ítems y proveedores.
const StatusActive = "ACTIVE"

// StockMovement es una entrada del ledger de stock. Inmutable salvo borrado lógico (DeletedAt).
// Qty y Value son siempre no negativos; el sentido lo da MovementType.
type StockMovement struct {
	ID           string
	Seq          int64 // orden de inserción, desempata movimientos con la misma fecha
	ItemType     string
	FkID         string // ID del material o producto
	SKU          string
	VariantID    string
	MovementType string
	Qty          decimal.Decimal
	UnitCost     decimal.Decimal
	Value        decimal.Decimal
	Date         time.Time // fecha del evento (distinta de CreatedAt)
	Description  string
	Reference    string // p.ej. referencia de producción
	Status       string
	CreatedAt    time.Time
	CreatedBy    string
	DeletedAt    *time.Time
	DeletedBy    string
}

// ValidItemType indica si t es MATERIAL o PRODUCT.
func ValidItemType(t string) bool {
	return t == ItemTypeMaterial || t == ItemTypeProduct
}

// ValidMovementType indica si t es IN u OUT.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}

package entity

import "github.com/shopspring/decimal"

// MonthlySummary agregado derivado del ledger para un ítem en un mes.
// Clave: (Year, Month, ItemType, FkID). Siempre reconstruible desde stock_movements.
type MonthlySummary struct {
	Year         int
	Month        int
	ItemType     string
	FkID         string
	ItemName     string
	OpeningQty   decimal.Decimal
	OpeningValue decimal.Decimal
	InQty        decimal.Decimal
	InValue      decimal.Decimal
	OutQty       decimal.Decimal
	OutValue     decimal.Decimal
	ClosingQty   decimal.Decimal
	ClosingValue decimal.Decimal
}

// ItemKey identifica un ítem del ledger.
type ItemKey struct {
	ItemType string
	FkID     string
}

package inventory

import "github.com/shopspring/decimal"

// AverageUnitCost devuelve el costo unitario promedio de un saldo: Value / Qty.
// Con saldo no positivo se usa fallback (costo de referencia del catálogo).
func AverageUnitCost(b Balance, fallback decimal.Decimal) decimal.Decimal {
	if b.Qty.LessThanOrEqual(decimal.Zero) {
		return fallback
	}
	return b.Value.DivRound(b.Qty, unitCostPlaces)
}

// unitCostPlaces decimales del costo unitario derivado (columna NUMERIC(20,6)).
const unitCostPlaces = 6

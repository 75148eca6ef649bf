package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material materia prima consumida por las plantillas de producción.
type Material struct {
	ID        string
	SKU       string
	Name      string
	Unit      string
	Cost      decimal.Decimal // costo de referencia cuando el ledger no tiene saldo
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	UpdatedBy string
}

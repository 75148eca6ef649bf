package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
)

// Balance cantidad y valor de un ítem en un instante.
type Balance struct {
	Qty   decimal.Decimal
	Value decimal.Decimal
}

// Apply suma un movimiento IN o resta un OUT. Tipos desconocidos no alteran el saldo.
func (b Balance) Apply(m *entity.StockMovement) Balance {
	switch m.MovementType {
	case entity.MovementTypeIN:
		return Balance{Qty: b.Qty.Add(m.Qty), Value: b.Value.Add(m.Value)}
	case entity.MovementTypeOUT:
		return Balance{Qty: b.Qty.Sub(m.Qty), Value: b.Value.Sub(m.Value)}
	}
	return b
}

// Fold aplica movs sobre start en orden.
func Fold(start Balance, movs []*entity.StockMovement) Balance {
	b := start
	for _, m := range movs {
		b = b.Apply(m)
	}
	return b
}

// Flow totales de entradas y salidas de un periodo.
type Flow struct {
	InQty    decimal.Decimal
	InValue  decimal.Decimal
	OutQty   decimal.Decimal
	OutValue decimal.Decimal
}

// Accumulate suma los movimientos del periodo por sentido.
func Accumulate(movs []*entity.StockMovement) Flow {
	var f Flow
	for _, m := range movs {
		switch m.MovementType {
		case entity.MovementTypeIN:
			f.InQty = f.InQty.Add(m.Qty)
			f.InValue = f.InValue.Add(m.Value)
		case entity.MovementTypeOUT:
			f.OutQty = f.OutQty.Add(m.Qty)
			f.OutValue = f.OutValue.Add(m.Value)
		}
	}
	return f
}

// Close calcula el cierre: opening + in - out, sin recortar negativos.
func Close(opening Balance, f Flow) Balance {
	return Balance{
		Qty:   opening.Qty.Add(f.InQty).Sub(f.OutQty),
		Value: opening.Value.Add(f.InValue).Sub(f.OutValue),
	}
}

// BuildSummary arma la fila mensual a partir de la apertura y el flujo del mes.
func BuildSummary(p Period, key entity.ItemKey, name string, opening Balance, f Flow) *entity.MonthlySummary {
	closing := Close(opening, f)
	return &entity.MonthlySummary{
		Year:         p.Year,
		Month:        p.Month,
		ItemType:     key.ItemType,
		FkID:         key.FkID,
		ItemName:     name,
		OpeningQty:   opening.Qty,
		OpeningValue: opening.Value,
		InQty:        f.InQty,
		InValue:      f.InValue,
		OutQty:       f.OutQty,
		OutValue:     f.OutValue,
		ClosingQty:   closing.Qty,
		ClosingValue: closing.Value,
	}
}

// Reconciles verifica closing == opening + in - out para cantidad y valor.
func Reconciles(s *entity.MonthlySummary) bool {
	q := s.OpeningQty.Add(s.InQty).Sub(s.OutQty)
	v := s.OpeningValue.Add(s.InValue).Sub(s.OutValue)
	return q.Equal(s.ClosingQty) && v.Equal(s.ClosingValue)
}

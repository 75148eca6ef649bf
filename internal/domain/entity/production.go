package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionTemplate receta: cuánto material consume producir OutputQty unidades de ProductID.
type ProductionTemplate struct {
	ID          string
	Name        string
	Description string
	ProductID   string
	OutputQty   decimal.Decimal
	Status      string
	Materials   []TemplateMaterial
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TemplateMaterial línea de material de una plantilla.
type TemplateMaterial struct {
	MaterialID string
	Qty        decimal.Decimal
}

// ProductionRun ejecución registrada de un plan de producción.
type ProductionRun struct {
	ID            string
	ProductionRef string
	Date          time.Time
	Notes         string
	TotalCost     decimal.Decimal
	Items         []ProductionRunItem
	CreatedAt     time.Time
	CreatedBy     string
}

// ProductionRunItem plantilla y multiplicador usados en una ejecución.
type ProductionRunItem struct {
	TemplateID   string
	TemplateName string
	Quantity     decimal.Decimal
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanLine línea de un plan de producción.
type PlanLine struct {
	TemplateID string          `json:"template_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CalculateProductionRequest body de POST /api/production/calculate.
type CalculateProductionRequest struct {
	ProductionPlan []PlanLine `json:"production_plan" validate:"required,min=1,dive"`
}

// ExecuteProductionRequest body de POST /api/production/execute.
type ExecuteProductionRequest struct {
	ProductionPlan []PlanLine `json:"production_plan" validate:"required,min=1,dive"`
	Notes          string     `json:"notes" validate:"max=1000"`
}

// MaterialRequirement requerimiento vs disponibilidad de un material.
type MaterialRequirement struct {
	MaterialID string          `json:"material_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Required   decimal.Decimal `json:"required"`
	Available  decimal.Decimal `json:"available"`
	Feasible   bool            `json:"feasible"`
	Shortage   decimal.Decimal `json:"shortage"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// ProductOutput producto resultante de un plan.
type ProductOutput struct {
	ProductID  string          `json:"product_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	TemplateID string          `json:"template_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Value      decimal.Decimal `json:"value"`
}

// ProductionCalculation resultado de factibilidad.
type ProductionCalculation struct {
	Materials []MaterialRequirement `json:"materials"`
	Products  []ProductOutput       `json:"products"`
	Feasible  bool                  `json:"feasible"`
	TotalCost decimal.Decimal       `json:"total_cost"`
}

// ProductionExecution resultado de ejecutar un plan.
type ProductionExecution struct {
	ProductionRef     string                `json:"production_ref"`
	Date              time.Time             `json:"date"`
	MaterialsConsumed []MaterialRequirement `json:"materials_consumed"`
	ProductsProduced  []ProductOutput       `json:"products_produced"`
	MovementsCreated  int                   `json:"movements_created"`
	TotalCost         decimal.Decimal       `json:"total_cost"`
}

// TemplateMaterialDTO línea de material de una plantilla.
type TemplateMaterialDTO struct {
	MaterialID string          `json:"material_id" validate:"required"`
	Qty        decimal.Decimal `json:"qty"`
}

// CreateTemplateRequest body de POST /api/production/templates.
type CreateTemplateRequest struct {
	Name        string                `json:"name" validate:"required,max=200"`
	Description string                `json:"description" validate:"max=1000"`
	ProductID   string                `json:"product_id" validate:"required"`
	OutputQty   decimal.Decimal       `json:"output_qty"`
	Materials   []TemplateMaterialDTO `json:"materials" validate:"required,min=1,dive"`
}

// TemplateResponse plantilla de producción.
type TemplateResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	ProductID   string                `json:"product_id"`
	OutputQty   decimal.Decimal       `json:"output_qty"`
	Status      string                `json:"status"`
	Materials   []TemplateMaterialDTO `json:"materials"`
	CreatedAt   time.Time             `json:"created_at"`
}

// HistoryTemplate plantilla usada en una ejecución.
type HistoryTemplate struct {
	TemplateID   string          `json:"template_id"`
	TemplateName string          `json:"template_name"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ProductionHistoryEntry entrada del historial.
type ProductionHistoryEntry struct {
	ProductionRef string            `json:"production_ref"`
	Date          time.Time         `json:"date"`
	Notes         string            `json:"notes,omitempty"`
	Templates     []HistoryTemplate `json:"templates"`
	TotalCost     decimal.Decimal   `json:"total_cost"`
}

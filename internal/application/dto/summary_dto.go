package dto

import "github.com/shopspring/decimal"

// GenerateSummaryRequest body de los endpoints de generación mensual.
type GenerateSummaryRequest struct {
	Year  int `json:"year" validate:"required"`
	Month int `json:"month" validate:"required"`
}

// GenerateItemSummaryRequest generación para un único ítem.
type GenerateItemSummaryRequest struct {
	Year     int    `json:"year" validate:"required"`
	Month    int    `json:"month" validate:"required"`
	ItemType string `json:"item_type" validate:"required"`
	FkID     string `json:"fk_id" validate:"required"`
}

// MonthlySummaryResponse fila de resumen mensual.
type MonthlySummaryResponse struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	ItemType     string          `json:"item_type"`
	FkID         string          `json:"fk_id"`
	ItemName     string          `json:"item_name"`
	OpeningQty   decimal.Decimal `json:"opening_qty"`
	OpeningValue decimal.Decimal `json:"opening_value"`
	InQty        decimal.Decimal `json:"in_qty"`
	InValue      decimal.Decimal `json:"in_value"`
	OutQty       decimal.Decimal `json:"out_qty"`
	OutValue     decimal.Decimal `json:"out_value"`
	ClosingQty   decimal.Decimal `json:"closing_qty"`
	ClosingValue decimal.Decimal `json:"closing_value"`
}

// GenerateSummaryResult resultado de una generación mensual.
type GenerateSummaryResult struct {
	Year  int                      `json:"year"`
	Month int                      `json:"month"`
	Count int                      `json:"count"`
	Items []MonthlySummaryResponse `json:"items"`
}

// SummaryBlock bloque de presentación (MATERIAL o PRODUCT) con totales.
type SummaryBlock struct {
	ItemType     string                   `json:"item_type"`
	Rows         []MonthlySummaryResponse `json:"rows"`
	OpeningValue decimal.Decimal          `json:"opening_value"`
	InValue      decimal.Decimal          `json:"in_value"`
	OutValue     decimal.Decimal          `json:"out_value"`
	ClosingValue decimal.Decimal          `json:"closing_value"`
}

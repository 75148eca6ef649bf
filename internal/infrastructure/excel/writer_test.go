package excel_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/application/report"
	"github.com/IhsanMhd-mr/back-ims/internal/infrastructure/excel"
)

func TestSummaryWorkbook_HojasPorBloqueYTotales(t *testing.T) {
	row := dto.MonthlySummaryResponse{
		Year: 2025, Month: 9, ItemType: "MATERIAL", FkID: "1", ItemName: "Harina",
		InQty: decimal.NewFromInt(100), InValue: decimal.NewFromInt(904),
		OutQty: decimal.NewFromInt(20), OutValue: decimal.RequireFromString("180.8"),
		ClosingQty: decimal.NewFromInt(80), ClosingValue: decimal.RequireFromString("723.2"),
	}
	doc := report.SummaryDocument{
		Title: "Resumen 2025-09", Period: "2025-09", GeneratedAt: time.Now(),
		Blocks: []dto.SummaryBlock{
			{ItemType: "MATERIAL", Rows: []dto.MonthlySummaryResponse{row}, ClosingValue: row.ClosingValue, InValue: row.InValue, OutValue: row.OutValue},
			{ItemType: "PRODUCT", Rows: []dto.MonthlySummaryResponse{}},
		},
	}

	data, err := excel.NewWriter().SummaryWorkbook(doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"MATERIAL", "PRODUCT"}, f.GetSheetList())

	name, err := f.GetCellValue("MATERIAL", "C4")
	require.NoError(t, err)
	assert.Equal(t, "Harina", name)

	total, err := f.GetCellValue("MATERIAL", "A5")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", total)
	closing, err := f.GetCellValue("MATERIAL", "K5")
	require.NoError(t, err)
	assert.Equal(t, "723.2", closing)
}

func TestMovementsWorkbook(t *testing.T) {
	movs := []dto.StockMovementResponse{{
		ItemType: "PRODUCT", FkID: "7", SKU: "PAN", MovementType: "IN",
		Qty: decimal.NewFromInt(3), Value: decimal.NewFromInt(30),
		Date: time.Date(2025, 9, 1, 8, 30, 0, 0, time.UTC),
	}}
	data, err := excel.NewWriter().MovementsWorkbook("Movimientos", movs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	date, err := f.GetCellValue("Sheet1", "A4")
	require.NoError(t, err)
	assert.Equal(t, "2025-09-01 08:30", date)
	sku, err := f.GetCellValue("Sheet1", "D4")
	require.NoError(t, err)
	assert.Equal(t, "PAN", sku)
}

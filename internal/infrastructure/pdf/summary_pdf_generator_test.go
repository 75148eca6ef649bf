package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/application/report"
)

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"0":           "0.00",
		"723.2":       "723.20",
		"1234":        "1,234.00",
		"1234567.891": "1,234,567.89",
		"-9876543.2":  "-9,876,543.20",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatAmount(decimal.RequireFromString(in), 2), in)
	}
}

func TestSummaryPDF_GeneraDocumento(t *testing.T) {
	doc := report.SummaryDocument{
		Title: "Resumen mensual de stock 2025-09", Period: "2025-09", GeneratedAt: time.Now(),
		Blocks: []dto.SummaryBlock{
			{ItemType: "MATERIAL", Rows: []dto.MonthlySummaryResponse{{
				FkID: "1", ItemName: "Harina", ClosingQty: decimal.NewFromInt(-3), ClosingValue: decimal.NewFromInt(-30),
			}}},
			{ItemType: "PRODUCT", Rows: []dto.MonthlySummaryResponse{}},
		},
	}
	out, err := NewMarotoPDFGenerator().SummaryPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

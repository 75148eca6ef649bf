package inventory

import (
	"context"
	"sort"
	"strings"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/domain"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	ledger "github.com/IhsanMhd-mr/back-ims/internal/domain/inventory"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

// SummaryQueryUseCase lectura de resúmenes persistidos. No modifica nada.
type SummaryQueryUseCase struct {
	repo repository.MonthlySummaryRepository
}

// NewSummaryQueryUseCase construye el caso de uso.
func NewSummaryQueryUseCase(repo repository.MonthlySummaryRepository) *SummaryQueryUseCase {
	return &SummaryQueryUseCase{repo: repo}
}

// Query devuelve los resúmenes del mes ordenados por item_type y fk_id.
// Un mes sin resúmenes devuelve una lista vacía.
func (uc *SummaryQueryUseCase) Query(ctx context.Context, year, month int, itemType, fkID string) ([]dto.MonthlySummaryResponse, error) {
	p, err := ledger.NewPeriod(year, month)
	if err != nil {
		return nil, err
	}
	itemType = strings.ToUpper(strings.TrimSpace(itemType))
	if itemType != "" && !entity.ValidItemType(itemType) {
		return nil, domain.ErrInvalidItemType
	}
	rows, err := uc.repo.ListByPeriod(ctx, p.Year, p.Month, repository.SummaryFilter{ItemType: itemType, FkID: fkID})
	if err != nil {
		return nil, err
	}
	return toSummaryResponses(rows), nil
}

// Grouped devuelve el mes en bloques MATERIAL y PRODUCT, cada uno ordenado por nombre y con totales de valor.
func (uc *SummaryQueryUseCase) Grouped(ctx context.Context, year, month int) ([]dto.SummaryBlock, error) {
	rows, err := uc.Query(ctx, year, month, "", "")
	if err != nil {
		return nil, err
	}
	return GroupSummaries(rows), nil
}

// GroupSummaries arma los bloques de presentación. Siempre devuelve ambos bloques.
func GroupSummaries(rows []dto.MonthlySummaryResponse) []dto.SummaryBlock {
	blocks := []dto.SummaryBlock{
		{ItemType: entity.ItemTypeMaterial, Rows: []dto.MonthlySummaryResponse{}},
		{ItemType: entity.ItemTypeProduct, Rows: []dto.MonthlySummaryResponse{}},
	}
	for _, r := range rows {
		i := 0
		if r.ItemType == entity.ItemTypeProduct {
			i = 1
		}
		b := &blocks[i]
		b.Rows = append(b.Rows, r)
		b.OpeningValue = b.OpeningValue.Add(r.OpeningValue)
		b.InValue = b.InValue.Add(r.InValue)
		b.OutValue = b.OutValue.Add(r.OutValue)
		b.ClosingValue = b.ClosingValue.Add(r.ClosingValue)
	}
	for i := range blocks {
		rs := blocks[i].Rows
		sort.SliceStable(rs, func(a, b int) bool {
			if rs[a].ItemName != rs[b].ItemName {
				return rs[a].ItemName < rs[b].ItemName
			}
			return rs[a].FkID < rs[b].FkID
		})
	}
	return blocks
}

func toSummaryResponse(s *entity.MonthlySummary) dto.MonthlySummaryResponse {
	return dto.MonthlySummaryResponse{
		Year:         s.Year,
		Month:        s.Month,
		ItemType:     s.ItemType,
		FkID:         s.FkID,
		ItemName:     s.ItemName,
		OpeningQty:   s.OpeningQty,
		OpeningValue: s.OpeningValue,
		InQty:        s.InQty,
		InValue:      s.InValue,
		OutQty:       s.OutQty,
		OutValue:     s.OutValue,
		ClosingQty:   s.ClosingQty,
		ClosingValue: s.ClosingValue,
	}
}

func toSummaryResponses(rows []*entity.MonthlySummary) []dto.MonthlySummaryResponse {
	out := make([]dto.MonthlySummaryResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, toSummaryResponse(s))
	}
	return out
}

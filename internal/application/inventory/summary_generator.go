package inventory

import (
	"context"
	"sort"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/domain"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	ledger "github.com/IhsanMhd-mr/back-ims/internal/domain/inventory"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

// SummaryGenerator genera los resúmenes mensuales a partir del ledger.
//
// Cada llamada corre en una sola transacción: el mes queda completo o sin cambios.
// Las regeneraciones del mismo periodo se serializan en el proceso con un lock por periodo
// y entre procesos con un advisory lock de la transacción; si otro proceso tiene el periodo
// la llamada falla con domain.ErrConcurrentRegeneration.
type SummaryGenerator struct {
	tx    TxRunner
	namer ItemNamer
	locks *periodLocks
	log   *logger.Logger
}

// NewSummaryGenerator construye el generador.
func NewSummaryGenerator(tx TxRunner, namer ItemNamer, log *logger.Logger) *SummaryGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &SummaryGenerator{tx: tx, namer: namer, locks: newPeriodLocks(), log: log}
}

// Generate regenera el mes completo. Incluye los ítems con movimientos en el mes y,
// con fromLastMonth, todos los que tenían resumen en el mes anterior (arrastre de saldo).
// Sin fromLastMonth se recalculan también las filas que ya estaban arrastradas al mes;
// sólo desaparecen las filas sin actividad ni resumen en el mes anterior.
func (g *SummaryGenerator) Generate(ctx context.Context, year, month int, fromLastMonth bool) (*dto.GenerateSummaryResult, error) {
	p, err := ledger.NewPeriod(year, month)
	if err != nil {
		return nil, err
	}
	unlock := g.locks.Lock(p.Key())
	defer unlock()

	var rows []*entity.MonthlySummary
	err = g.tx.RunSummary(ctx, func(movRepo repository.StockMovementRepository, summaryRepo repository.MonthlySummaryRepository) error {
		if err := lockPeriod(ctx, summaryRepo, p); err != nil {
			return err
		}

		keys, err := movRepo.ItemsWithActivity(ctx, p.Start(), p.End())
		if err != nil {
			return err
		}
		carried, err := carriedKeys(ctx, summaryRepo, p, fromLastMonth)
		if err != nil {
			return err
		}
		keys = uniqueSortedKeys(append(keys, carried...))

		rows = make([]*entity.MonthlySummary, 0, len(keys))
		for _, key := range keys {
			s, err := g.compute(ctx, movRepo, summaryRepo, p, key)
			if err != nil {
				return err
			}
			rows = append(rows, s)
		}

		if err := summaryRepo.DeletePeriod(ctx, p.Year, p.Month); err != nil {
			return err
		}
		for _, s := range rows {
			if err := summaryRepo.Upsert(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.log.Info().
		Str("period", p.String()).
		Bool("from_last_month", fromLastMonth).
		Int("count", len(rows)).
		Msg("resúmenes mensuales generados")

	return &dto.GenerateSummaryResult{
		Year:  p.Year,
		Month: p.Month,
		Count: len(rows),
		Items: toSummaryResponses(rows),
	}, nil
}

// GenerateForItem regenera la fila de un único ítem. Falla con domain.ErrItemNotFound
// si el ítem no tiene movimientos hasta el fin del mes ni resumen del mes anterior.
func (g *SummaryGenerator) GenerateForItem(ctx context.Context, year, month int, itemType, fkID string) (*dto.MonthlySummaryResponse, error) {
	p, err := ledger.NewPeriod(year, month)
	if err != nil {
		return nil, err
	}
	key, err := itemKey(itemType, fkID)
	if err != nil {
		return nil, err
	}
	unlock := g.locks.Lock(p.Key())
	defer unlock()

	var row *entity.MonthlySummary
	err = g.tx.RunSummary(ctx, func(movRepo repository.StockMovementRepository, summaryRepo repository.MonthlySummaryRepository) error {
		if err := lockPeriod(ctx, summaryRepo, p); err != nil {
			return err
		}

		prev := p.Prev()
		prior, err := summaryRepo.Get(ctx, prev.Year, prev.Month, key)
		if err != nil {
			return err
		}
		if prior == nil {
			end := p.End()
			hist, err := movRepo.List(ctx, repository.MovementFilter{
				ItemType: key.ItemType, FkID: key.FkID, To: &end, Limit: 1,
			})
			if err != nil {
				return err
			}
			if len(hist) == 0 {
				return domain.ErrItemNotFound
			}
		}

		row, err = g.compute(ctx, movRepo, summaryRepo, p, key)
		if err != nil {
			return err
		}
		return summaryRepo.Upsert(ctx, row)
	})
	if err != nil {
		return nil, err
	}
	out := toSummaryResponse(row)
	return &out, nil
}

func (g *SummaryGenerator) compute(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	summaryRepo repository.MonthlySummaryRepository,
	p ledger.Period,
	key entity.ItemKey,
) (*entity.MonthlySummary, error) {
	opening, err := openingBalance(ctx, movRepo, summaryRepo, key, p.Start())
	if err != nil {
		return nil, err
	}
	start, end := p.Start(), p.End()
	movs, err := movRepo.List(ctx, repository.MovementFilter{
		ItemType: key.ItemType, FkID: key.FkID, From: &start, To: &end,
	})
	if err != nil {
		return nil, err
	}

	name, err := g.namer.ItemName(ctx, key)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = fallbackName(movs, key)
	}

	s := ledger.BuildSummary(p, key, name, opening, ledger.Accumulate(movs))
	if s.ClosingQty.IsNegative() {
		g.log.Warn().
			Str("period", p.String()).
			Str("item_type", key.ItemType).
			Str("fk_id", key.FkID).
			Str("closing_qty", s.ClosingQty.String()).
			Msg("saldo de cierre negativo")
	}
	return s, nil
}

// carriedKeys ítems del mes anterior que entran en p. Con all, todos; si no, sólo los que
// ya tienen fila en p (arrastrados por una generación anterior).
func carriedKeys(ctx context.Context, summaryRepo repository.MonthlySummaryRepository, p ledger.Period, all bool) ([]entity.ItemKey, error) {
	prev := p.Prev()
	prior, err := summaryRepo.ListByPeriod(ctx, prev.Year, prev.Month, repository.SummaryFilter{})
	if err != nil || len(prior) == 0 {
		return nil, err
	}
	present := map[entity.ItemKey]bool{}
	if !all {
		current, err := summaryRepo.ListByPeriod(ctx, p.Year, p.Month, repository.SummaryFilter{})
		if err != nil {
			return nil, err
		}
		for _, s := range current {
			present[entity.ItemKey{ItemType: s.ItemType, FkID: s.FkID}] = true
		}
	}
	keys := make([]entity.ItemKey, 0, len(prior))
	for _, s := range prior {
		k := entity.ItemKey{ItemType: s.ItemType, FkID: s.FkID}
		if all || present[k] {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func lockPeriod(ctx context.Context, summaryRepo repository.MonthlySummaryRepository, p ledger.Period) error {
	ok, err := summaryRepo.TryLockPeriod(ctx, p.Year, p.Month)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrConcurrentRegeneration
	}
	return nil
}

func fallbackName(movs []*entity.StockMovement, key entity.ItemKey) string {
	for _, m := range movs {
		if m.SKU != "" {
			return m.SKU
		}
	}
	return key.ItemType + " " + key.FkID
}

func uniqueSortedKeys(keys []entity.ItemKey) []entity.ItemKey {
	seen := make(map[entity.ItemKey]struct{}, len(keys))
	out := make([]entity.ItemKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemType != out[j].ItemType {
			return out[i].ItemType < out[j].ItemType
		}
		return out[i].FkID < out[j].FkID
	})
	return out
}

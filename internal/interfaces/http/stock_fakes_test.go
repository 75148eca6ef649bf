package http_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

// memLedger ledger y resúmenes en memoria; RunSummary ejecuta sin rollback.
type memLedger struct {
	mu        sync.Mutex
	movs      []*entity.StockMovement
	seq       int64
	summaries map[string]*entity.MonthlySummary
}

func newMemLedger() *memLedger {
	return &memLedger{summaries: map[string]*entity.MonthlySummary{}}
}

type memMovements struct{ l *memLedger }
type memSummaries struct{ l *memLedger }

var _ repository.StockMovementRepository = memMovements{}
var _ repository.MonthlySummaryRepository = memSummaries{}

func (l *memLedger) RunSummary(_ context.Context, fn func(repository.StockMovementRepository, repository.MonthlySummaryRepository) error) error {
	return fn(memMovements{l}, memSummaries{l})
}

func (r memMovements) Create(_ context.Context, m *entity.StockMovement) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	r.l.seq++
	m.Seq = r.l.seq
	cp := *m
	r.l.movs = append(r.l.movs, &cp)
	return nil
}

func (r memMovements) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	for _, m := range r.l.movs {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memMovements) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.l.movs {
		switch {
		case m.DeletedAt != nil,
			f.ItemType != "" && m.ItemType != f.ItemType,
			f.FkID != "" && m.FkID != f.FkID,
			f.From != nil && m.Date.Before(*f.From),
			f.To != nil && !m.Date.Before(*f.To):
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Seq < out[j].Seq
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r memMovements) ItemsWithActivity(ctx context.Context, from, to time.Time) ([]entity.ItemKey, error) {
	list, err := r.List(ctx, repository.MovementFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}
	keys := make([]entity.ItemKey, 0, len(list))
	for _, m := range list {
		keys = append(keys, entity.ItemKey{ItemType: m.ItemType, FkID: m.FkID})
	}
	return keys, nil
}

func (r memMovements) SoftDelete(_ context.Context, id, deletedBy string, at time.Time) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	for _, m := range r.l.movs {
		if m.ID == id && m.DeletedAt == nil {
			m.DeletedAt = &at
			m.DeletedBy = deletedBy
		}
	}
	return nil
}

func summaryID(year, month int, itemType, fkID string) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01") + "|" + itemType + "|" + fkID
}

func (r memSummaries) Get(_ context.Context, year, month int, key entity.ItemKey) (*entity.MonthlySummary, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	s, ok := r.l.summaries[summaryID(year, month, key.ItemType, key.FkID)]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r memSummaries) ListByPeriod(_ context.Context, year, month int, f repository.SummaryFilter) ([]*entity.MonthlySummary, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	var out []*entity.MonthlySummary
	for _, s := range r.l.summaries {
		if s.Year != year || s.Month != month ||
			(f.ItemType != "" && s.ItemType != f.ItemType) || (f.FkID != "" && s.FkID != f.FkID) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemType != out[j].ItemType {
			return out[i].ItemType < out[j].ItemType
		}
		return out[i].FkID < out[j].FkID
	})
	return out, nil
}

func (r memSummaries) Upsert(_ context.Context, s *entity.MonthlySummary) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	cp := *s
	r.l.summaries[summaryID(s.Year, s.Month, s.ItemType, s.FkID)] = &cp
	return nil
}

func (r memSummaries) DeletePeriod(_ context.Context, year, month int) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	for k, s := range r.l.summaries {
		if s.Year == year && s.Month == month {
			delete(r.l.summaries, k)
		}
	}
	return nil
}

func (r memSummaries) TryLockPeriod(context.Context, int, int) (bool, error) { return true, nil }

// fixedNamer nombres de catálogo fijos; "" si no está.
type fixedNamer map[string]string

func (n fixedNamer) ItemName(_ context.Context, key entity.ItemKey) (string, error) {
	return n[key.ItemType+"|"+key.FkID], nil
}

package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

type summaryKey struct {
	year, month int
	key         entity.ItemKey
}

type memoryStore struct {
	mu        sync.Mutex
	movs      []*entity.StockMovement
	seq       int64
	summaries map[summaryKey]*entity.MonthlySummary

	heldByOther map[int64]bool // periodos bloqueados por "otro proceso"
	failUpsertN int            // si > 0, falla el N-ésimo Upsert de la tx
	upserts     int

	inTx       int32
	overlapped atomic.Bool
}

var errUpsertFailed = errors.New("upsert falló")

func newMemoryStore() *memoryStore {
	return &memoryStore{
		summaries:   make(map[summaryKey]*entity.MonthlySummary),
		heldByOther: make(map[int64]bool),
	}
}

// memoryMovRepo y memorySummaryRepo comparten el store.
type memoryMovRepo struct{ s *memoryStore }
type memorySummaryRepo struct{ s *memoryStore }

var _ repository.StockMovementRepository = memoryMovRepo{}
var _ repository.MonthlySummaryRepository = memorySummaryRepo{}
var _ TxRunner = (*memoryStore)(nil)

func (s *memoryStore) RunSummary(ctx context.Context, fn func(repository.StockMovementRepository, repository.MonthlySummaryRepository) error) error {
	if atomic.AddInt32(&s.inTx, 1) > 1 {
		s.overlapped.Store(true)
	}
	defer atomic.AddInt32(&s.inTx, -1)

	// Simula rollback: se restaura el snapshot si fn falla.
	s.mu.Lock()
	snapshot := make(map[summaryKey]*entity.MonthlySummary, len(s.summaries))
	for k, v := range s.summaries {
		cp := *v
		snapshot[k] = &cp
	}
	s.upserts = 0
	s.mu.Unlock()

	time.Sleep(time.Millisecond) // ensancha la ventana de carrera en los tests concurrentes

	if err := fn(memoryMovRepo{s}, memorySummaryRepo{s}); err != nil {
		s.mu.Lock()
		s.summaries = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (r memoryMovRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	m.Seq = r.s.seq
	cp := *m
	r.s.movs = append(r.s.movs, &cp)
	return nil
}

func (r memoryMovRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movs {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memoryMovRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.s.movs {
		if m.DeletedAt != nil {
			continue
		}
		if f.ItemType != "" && m.ItemType != f.ItemType {
			continue
		}
		if f.FkID != "" && m.FkID != f.FkID {
			continue
		}
		if f.From != nil && m.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && !m.Date.Before(*f.To) {
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

func (r memoryMovRepo) ItemsWithActivity(ctx context.Context, from, to time.Time) ([]entity.ItemKey, error) {
	list, _ := r.List(ctx, repository.MovementFilter{From: &from, To: &to})
	var keys []entity.ItemKey
	for _, m := range list {
		keys = append(keys, entity.ItemKey{ItemType: m.ItemType, FkID: m.FkID})
	}
	return keys, nil
}

func (r memoryMovRepo) SoftDelete(_ context.Context, id, deletedBy string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movs {
		if m.ID == id {
			m.DeletedAt = &at
			m.DeletedBy = deletedBy
		}
	}
	return nil
}

func (r memorySummaryRepo) Get(_ context.Context, year, month int, key entity.ItemKey) (*entity.MonthlySummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if s, ok := r.s.summaries[summaryKey{year, month, key}]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r memorySummaryRepo) ListByPeriod(_ context.Context, year, month int, f repository.SummaryFilter) ([]*entity.MonthlySummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.MonthlySummary
	for k, s := range r.s.summaries {
		if k.year != year || k.month != month {
			continue
		}
		if f.ItemType != "" && s.ItemType != f.ItemType {
			continue
		}
		if f.FkID != "" && s.FkID != f.FkID {
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

func (r memorySummaryRepo) Upsert(_ context.Context, s *entity.MonthlySummary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.upserts++
	if r.s.failUpsertN > 0 && r.s.upserts == r.s.failUpsertN {
		return errUpsertFailed
	}
	cp := *s
	r.s.summaries[summaryKey{s.Year, s.Month, entity.ItemKey{ItemType: s.ItemType, FkID: s.FkID}}] = &cp
	return nil
}

func (r memorySummaryRepo) DeletePeriod(_ context.Context, year, month int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k := range r.s.summaries {
		if k.year == year && k.month == month {
			delete(r.s.summaries, k)
		}
	}
	return nil
}

func (r memorySummaryRepo) TryLockPeriod(_ context.Context, year, month int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return !r.s.heldByOther[int64(year)*100+int64(month)], nil
}

// mapNamer resuelve nombres desde un mapa fijo.
type mapNamer map[entity.ItemKey]string

func (n mapNamer) ItemName(_ context.Context, key entity.ItemKey) (string, error) {
	return n[key], nil
}

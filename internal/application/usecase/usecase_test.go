package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/application/usecase"
	"github.com/IhsanMhd-mr/back-ims/internal/domain"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type vendorRepo struct {
	byID  map[string]*entity.Vendor
	order []string
}

func newVendorRepo() *vendorRepo { return &vendorRepo{byID: map[string]*entity.Vendor{}} }

func (r *vendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	for _, e := range r.byID {
		if e.UniqueID == v.UniqueID {
			return domain.ErrDuplicate
		}
	}
	cp := *v
	r.byID[v.ID] = &cp
	r.order = append(r.order, v.ID)
	return nil
}

func (r *vendorRepo) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *vendorRepo) active() []*entity.Vendor {
	var out []*entity.Vendor
	for _, id := range r.order {
		if v := r.byID[id]; v.DeletedAt == nil {
			out = append(out, v)
		}
	}
	return out
}

func (r *vendorRepo) List(_ context.Context, limit, offset int) ([]*entity.Vendor, error) {
	all := r.active()
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *vendorRepo) Count(context.Context) (int, error) { return len(r.active()), nil }

func (r *vendorRepo) Update(_ context.Context, v *entity.Vendor) error {
	cp := *v
	r.byID[v.ID] = &cp
	return nil
}

func (r *vendorRepo) SoftDelete(_ context.Context, id, deletedBy string) error {
	now := time.Now()
	r.byID[id].DeletedAt = &now
	r.byID[id].DeletedBy = deletedBy
	return nil
}

type materialRepo struct{ byID map[string]*entity.Material }

func (r *materialRepo) Create(_ context.Context, m *entity.Material) error {
	r.byID[m.ID] = m
	return nil
}
func (r *materialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	return r.byID[id], nil
}
func (r *materialRepo) List(context.Context, int, int) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, m := range r.byID {
		out = append(out, m)
	}
	return out, nil
}
func (r *materialRepo) Update(_ context.Context, m *entity.Material) error {
	r.byID[m.ID] = m
	return nil
}

type productRepo struct{ byID map[string]*entity.Product }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}
func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.byID[id], nil
}
func (r *productRepo) List(context.Context, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Vendors
// ──────────────────────────────────────────────────────────────────────────────

func TestVendorUseCase_CicloDeVida(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewVendorUseCase(newVendorRepo())

	v, err := uc.Create(ctx, "u-1", dto.CreateVendorRequest{UniqueID: "V-001", CompanyName: "Molinos SA"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, v.Status)
	assert.Equal(t, "u-1", v.CreatedBy)

	_, err = uc.Create(ctx, "u-1", dto.CreateVendorRequest{UniqueID: "V-001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, "u-1", dto.CreateVendorRequest{UniqueID: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	upd, err := uc.Update(ctx, "u-2", v.ID, dto.UpdateVendorRequest{ContactNo: strPtr("555-1234"), Status: strPtr("INACTIVE")})
	require.NoError(t, err)
	assert.Equal(t, "555-1234", upd.ContactNo)
	assert.Equal(t, "INACTIVE", upd.Status)
	assert.Equal(t, "Molinos SA", upd.CompanyName)
	assert.Equal(t, "u-2", upd.UpdatedBy)

	list, err := uc.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)

	require.NoError(t, uc.Delete(ctx, "u-3", v.ID))
	_, err = uc.GetByID(ctx, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "u-3", v.ID), domain.ErrNotFound)

	list, err = uc.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, 0, list.Page.Total)
}

func TestVendorUseCase_ActualizarInexistente(t *testing.T) {
	uc := usecase.NewVendorUseCase(newVendorRepo())
	_, err := uc.Update(context.Background(), "u-1", "nope", dto.UpdateVendorRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestMaterialUseCase_CreateYUpdate(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewMaterialUseCase(&materialRepo{byID: map[string]*entity.Material{}})

	m, err := uc.Create(ctx, "u-1", dto.CreateItemRequest{SKU: " HAR-01 ", Name: "Harina", Cost: decimal.RequireFromString("2.5")})
	require.NoError(t, err)
	assert.Equal(t, "HAR-01", m.SKU)
	assert.Equal(t, "UND", m.Unit)
	assert.Equal(t, entity.ItemTypeMaterial, m.ItemType)

	_, err = uc.Create(ctx, "u-1", dto.CreateItemRequest{SKU: "X", Name: "X", Cost: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := decimal.RequireFromString("-3")
	_, err = uc.Update(ctx, "u-1", m.ID, dto.UpdateItemRequest{Cost: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	upd, err := uc.Update(ctx, "u-2", m.ID, dto.UpdateItemRequest{Unit: strPtr("kg")})
	require.NoError(t, err)
	assert.Equal(t, "KG", upd.Unit)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_Create(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(&productRepo{byID: map[string]*entity.Product{}})

	p, err := uc.Create(ctx, "u-1", dto.CreateItemRequest{SKU: "PAN", Name: "Pan", Price: decimal.RequireFromString("1.5")})
	require.NoError(t, err)
	assert.Equal(t, entity.ItemTypeProduct, p.ItemType)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("1.5")))

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pan", got.Name)

	_, err = uc.Create(ctx, "u-1", dto.CreateItemRequest{SKU: "", Name: "Pan"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

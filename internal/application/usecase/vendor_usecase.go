package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/domain"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

// VendorUseCase casos de uso CRUD para proveedores. El borrado es lógico.
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// Create crea un proveedor. unique_id repetido devuelve domain.ErrDuplicate (lo detecta el repositorio).
func (uc *VendorUseCase) Create(ctx context.Context, userID string, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	uniqueID := strings.TrimSpace(in.UniqueID)
	if uniqueID == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.StatusActive
	}
	now := time.Now().UTC()
	v := &entity.Vendor{
		ID:           uuid.New().String(),
		UniqueID:     uniqueID,
		CompanyName:  in.CompanyName,
		SupplierName: in.SupplierName,
		ContactNo:    in.ContactNo,
		Address:      in.Address,
		Remarks:      in.Remarks,
		Status:       status,
		CreatedBy:    userID,
		UpdatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// GetByID obtiene un proveedor activo (no borrado).
func (uc *VendorUseCase) GetByID(ctx context.Context, id string) (*dto.VendorResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil || v.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	return toVendorResponse(v), nil
}

// Update actualiza los campos enviados.
func (uc *VendorUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil || v.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	if in.CompanyName != nil {
		v.CompanyName = *in.CompanyName
	}
	if in.SupplierName != nil {
		v.SupplierName = *in.SupplierName
	}
	if in.ContactNo != nil {
		v.ContactNo = *in.ContactNo
	}
	if in.Address != nil {
		v.Address = *in.Address
	}
	if in.Remarks != nil {
		v.Remarks = *in.Remarks
	}
	if in.Status != nil {
		v.Status = *in.Status
	}
	v.UpdatedBy = userID
	v.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// List lista proveedores no borrados con paginación y total.
func (uc *VendorUseCase) List(ctx context.Context, limit, offset int) (*dto.VendorListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVendorResponse(v))
	}
	return &dto.VendorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete borra lógicamente el proveedor registrando quién lo hizo.
func (uc *VendorUseCase) Delete(ctx context.Context, userID, id string) error {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil || v.DeletedAt != nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(ctx, id, userID)
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:           v.ID,
		UniqueID:     v.UniqueID,
		CompanyName:  v.CompanyName,
		SupplierName: v.SupplierName,
		ContactNo:    v.ContactNo,
		Address:      v.Address,
		Remarks:      v.Remarks,
		Status:       v.Status,
		CreatedBy:    v.CreatedBy,
		UpdatedBy:    v.UpdatedBy,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

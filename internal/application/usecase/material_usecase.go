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

const defaultUnit = "UND"

// MaterialUseCase casos de uso CRUD para materias primas.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create crea un material. Cost es el costo de referencia usado cuando el ledger no tiene saldo.
func (uc *MaterialUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.Name) == "" || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	unit := strings.ToUpper(strings.TrimSpace(in.Unit))
	if unit == "" {
		unit = defaultUnit
	}
	now := time.Now().UTC()
	m := &entity.Material{
		ID:        uuid.New().String(),
		SKU:       strings.TrimSpace(in.SKU),
		Name:      strings.TrimSpace(in.Name),
		Unit:      unit,
		Cost:      in.Cost,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: userID,
		UpdatedBy: userID,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// GetByID obtiene un material por ID.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(m), nil
}

// Update actualiza un material.
func (uc *MaterialUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Unit != nil {
		m.Unit = strings.ToUpper(strings.TrimSpace(*in.Unit))
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		m.Cost = *in.Cost
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	m.UpdatedAt = time.Now().UTC()
	m.UpdatedBy = userID
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// List lista materiales con paginación.
func (uc *MaterialUseCase) List(ctx context.Context, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toMaterialResponse(m *entity.Material) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        m.ID,
		ItemType:  entity.ItemTypeMaterial,
		SKU:       m.SKU,
		Name:      m.Name,
		Unit:      m.Unit,
		Cost:      m.Cost,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/domain"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
)

const (
	qtyPlaces        = 6
	valuePlaces      = 4
	unitCostPlaces   = 6
	defaultListLimit = 100
	maxListLimit     = 1000
)

// LedgerUseCase registra y consulta movimientos del ledger de stock.
// No recalcula resúmenes: la generación mensual es un paso aparte.
type LedgerUseCase struct {
	movRepo repository.StockMovementRepository
	clock   func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(movRepo repository.StockMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{movRepo: movRepo, clock: time.Now}
}

// RecordInput datos de un movimiento. Si Value es cero y UnitCost no, Value = Qty * UnitCost.
type RecordInput struct {
	ItemType     string
	FkID         string
	SKU          string
	VariantID    string
	MovementType string
	Qty          decimal.Decimal
	Value        decimal.Decimal
	UnitCost     decimal.Decimal
	Date         time.Time // cero = ahora
	Description  string
	Reference    string
	Status       string
	UserID       string
}

// Record valida y agrega un movimiento inmutable. Devuelve el movimiento persistido.
func (uc *LedgerUseCase) Record(ctx context.Context, in RecordInput) (*entity.StockMovement, error) {
	m, err := NewMovement(in, uc.clock())
	if err != nil {
		return nil, err
	}
	if err := uc.movRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// NewMovement valida la entrada y arma la entidad sin persistirla.
// También lo usa producción para crear movimientos dentro de su transacción.
func NewMovement(in RecordInput, now time.Time) (*entity.StockMovement, error) {
	in.ItemType = strings.ToUpper(strings.TrimSpace(in.ItemType))
	in.MovementType = strings.ToUpper(strings.TrimSpace(in.MovementType))

	if !entity.ValidItemType(in.ItemType) {
		return nil, domain.ErrInvalidItemType
	}
	if strings.TrimSpace(in.FkID) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.MovementType) {
		return nil, domain.ErrInvalidMovementType
	}
	if in.Qty.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Value.IsNegative() || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// escala de las columnas NUMERIC: lo que se responde es lo que queda guardado
	qty := in.Qty.Round(qtyPlaces)
	value, unitCost := in.Value.Round(valuePlaces), in.UnitCost.Round(unitCostPlaces)
	if value.IsZero() && !unitCost.IsZero() {
		value = qty.Mul(unitCost).Round(valuePlaces)
	}
	if unitCost.IsZero() && !value.IsZero() && qty.IsPositive() {
		unitCost = value.DivRound(qty, unitCostPlaces)
	}

	date := in.Date
	if date.IsZero() {
		date = now
	}
	status := in.Status
	if status == "" {
		status = entity.StatusActive
	}

	return &entity.StockMovement{
		ID:           uuid.New().String(),
		ItemType:     in.ItemType,
		FkID:         strings.TrimSpace(in.FkID),
		SKU:          in.SKU,
		VariantID:    in.VariantID,
		MovementType: in.MovementType,
		Qty:          qty,
		UnitCost:     unitCost,
		Value:        value,
		Date:         date.UTC(),
		Description:  in.Description,
		Reference:    in.Reference,
		Status:       status,
		CreatedAt:    now.UTC(),
		CreatedBy:    in.UserID,
	}, nil
}

// RecordFromRequest adapta el body HTTP de /stock/movements.
func (uc *LedgerUseCase) RecordFromRequest(ctx context.Context, userID string, in dto.RecordMovementRequest) (*dto.StockMovementResponse, error) {
	input := RecordInput{
		ItemType:     in.ItemType,
		FkID:         in.FkID,
		SKU:          in.SKU,
		VariantID:    in.VariantID,
		MovementType: in.MovementType,
		Qty:          in.Qty,
		Value:        in.Value,
		UnitCost:     in.UnitCost,
		Description:  in.Description,
		Reference:    in.Reference,
		Status:       in.Status,
		UserID:       userID,
	}
	if in.Date != "" {
		t, _, err := ParseDate(in.Date)
		if err != nil {
			return nil, err
		}
		input.Date = t
	}
	m, err := uc.Record(ctx, input)
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(m), nil
}

// AddStock adapta el contrato de /stock/add: product_id implica PRODUCT, IN por defecto y cost es costo unitario.
func (uc *LedgerUseCase) AddStock(ctx context.Context, userID string, in dto.AddStockRequest) (*dto.StockMovementResponse, error) {
	fkID, itemType := in.FkID, in.ItemType
	if in.ProductID != "" {
		fkID = in.ProductID
		if itemType == "" {
			itemType = entity.ItemTypeProduct
		}
	}
	if itemType == "" {
		itemType = entity.ItemTypeProduct
	}
	movementType := in.MovementType
	if movementType == "" {
		movementType = entity.MovementTypeIN
	}
	return uc.RecordFromRequest(ctx, userID, dto.RecordMovementRequest{
		ItemType:     itemType,
		FkID:         fkID,
		SKU:          in.SKU,
		VariantID:    in.VariantID,
		MovementType: movementType,
		Qty:          in.Qty,
		UnitCost:     in.Cost,
		Date:         in.Date,
		Description:  in.Description,
		Status:       in.Status,
	})
}

// ListMovements devuelve movimientos en [from, to) ordenados por fecha y orden de inserción.
// itemType y fkID son opcionales; si viene itemType debe ser válido.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, itemType, fkID string, from, to *time.Time, limit int) ([]dto.StockMovementResponse, error) {
	itemType = strings.ToUpper(strings.TrimSpace(itemType))
	if itemType != "" && !entity.ValidItemType(itemType) {
		return nil, domain.ErrInvalidItemType
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	list, err := uc.movRepo.List(ctx, repository.MovementFilter{
		ItemType: itemType,
		FkID:     fkID,
		From:     from,
		To:       to,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *ToMovementResponse(m))
	}
	return out, nil
}

// Delete borra lógicamente un movimiento; es la única mutación permitida sobre el ledger.
func (uc *LedgerUseCase) Delete(ctx context.Context, id, userID string) error {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil || m.DeletedAt != nil {
		return domain.ErrNotFound
	}
	return uc.movRepo.SoftDelete(ctx, id, userID, uc.clock().UTC())
}

// ToMovementResponse convierte la entidad a DTO.
func ToMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:           m.ID,
		ItemType:     m.ItemType,
		FkID:         m.FkID,
		SKU:          m.SKU,
		VariantID:    m.VariantID,
		MovementType: m.MovementType,
		Qty:          m.Qty,
		UnitCost:     m.UnitCost,
		Value:        m.Value,
		Date:         m.Date,
		Description:  m.Description,
		Reference:    m.Reference,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}

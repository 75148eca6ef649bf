package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/application/inventory"
	"github.com/IhsanMhd-mr/back-ims/internal/domain"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
	ledger "github.com/IhsanMhd-mr/back-ims/internal/domain/inventory"
	"github.com/IhsanMhd-mr/back-ims/internal/domain/repository"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

const (
	valuePlaces         = 4
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// UseCase plantillas de producción y conversión de materiales en productos.
type UseCase struct {
	tx        TxRunner
	prodRepo  repository.ProductionRepository
	movRepo   repository.StockMovementRepository
	materials repository.MaterialRepository
	products  repository.ProductRepository
	log       *logger.Logger
	clock     func() time.Time
}

// NewUseCase construye el caso de uso de producción.
func NewUseCase(
	tx TxRunner,
	prodRepo repository.ProductionRepository,
	movRepo repository.StockMovementRepository,
	materials repository.MaterialRepository,
	products repository.ProductRepository,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		tx:        tx,
		prodRepo:  prodRepo,
		movRepo:   movRepo,
		materials: materials,
		products:  products,
		log:       log,
		clock:     time.Now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Plantillas
// ──────────────────────────────────────────────────────────────────────────────

// CreateTemplate valida que el producto y los materiales existan y guarda la plantilla.
func (uc *UseCase) CreateTemplate(ctx context.Context, in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.ProductID == "" || len(in.Materials) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.OutputQty.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	seen := make(map[string]struct{}, len(in.Materials))
	lines := make([]entity.TemplateMaterial, 0, len(in.Materials))
	for _, tm := range in.Materials {
		if !tm.Qty.IsPositive() {
			return nil, domain.ErrInvalidQuantity
		}
		if _, dup := seen[tm.MaterialID]; dup {
			return nil, domain.ErrInvalidInput
		}
		seen[tm.MaterialID] = struct{}{}
		m, err := uc.materials.GetByID(ctx, tm.MaterialID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.ErrNotFound
		}
		lines = append(lines, entity.TemplateMaterial{MaterialID: tm.MaterialID, Qty: tm.Qty})
	}

	now := uc.clock().UTC()
	t := &entity.ProductionTemplate{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		ProductID:   in.ProductID,
		OutputQty:   in.OutputQty,
		Status:      entity.StatusActive,
		Materials:   lines,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.prodRepo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}
	return toTemplateResponse(t), nil
}

// GetTemplate devuelve una plantilla o domain.ErrNotFound.
func (uc *UseCase) GetTemplate(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	t, err := uc.prodRepo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTemplateResponse(t), nil
}

// ListTemplates lista todas las plantillas.
func (uc *UseCase) ListTemplates(ctx context.Context) ([]dto.TemplateResponse, error) {
	list, err := uc.prodRepo.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTemplateResponse(t))
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Cálculo y ejecución
// ──────────────────────────────────────────────────────────────────────────────

// Calculate evalúa la factibilidad de un plan contra el saldo actual del ledger. No escribe nada.
func (uc *UseCase) Calculate(ctx context.Context, plan []dto.PlanLine) (*dto.ProductionCalculation, error) {
	p, err := uc.plan(ctx, uc.movRepo, uc.prodRepo, plan, uc.clock().UTC())
	if err != nil {
		return nil, err
	}
	return &p.calc, nil
}

// Execute registra el plan: una salida por material, una entrada por producto y la corrida.
// La factibilidad se recalcula dentro de la transacción bajo el lock de producción;
// si falta stock devuelve domain.ErrInsufficientStock y no escribe nada.
func (uc *UseCase) Execute(ctx context.Context, userID string, in dto.ExecuteProductionRequest) (*dto.ProductionExecution, error) {
	now := uc.clock().UTC()
	ref := productionRef(now)

	var (
		result  *planResult
		created int
	)
	err := uc.tx.RunProduction(ctx, func(movRepo repository.StockMovementRepository, prodRepo repository.ProductionRepository) error {
		if err := prodRepo.LockProduction(ctx); err != nil {
			return err
		}
		p, err := uc.plan(ctx, movRepo, prodRepo, in.ProductionPlan, now)
		if err != nil {
			return err
		}
		if !p.calc.Feasible {
			return domain.ErrInsufficientStock
		}
		result = p
		created = 0

		desc := "Producción " + ref
		for _, m := range p.calc.Materials {
			mov, err := inventory.NewMovement(inventory.RecordInput{
				ItemType:     entity.ItemTypeMaterial,
				FkID:         m.MaterialID,
				SKU:          m.SKU,
				MovementType: entity.MovementTypeOUT,
				Qty:          m.Required,
				UnitCost:     m.UnitCost,
				Value:        m.Required.Mul(m.UnitCost).Round(valuePlaces),
				Date:         now,
				Description:  desc,
				Reference:    ref,
				UserID:       userID,
			}, now)
			if err != nil {
				return err
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
			created++
		}
		for _, out := range p.calc.Products {
			mov, err := inventory.NewMovement(inventory.RecordInput{
				ItemType:     entity.ItemTypeProduct,
				FkID:         out.ProductID,
				SKU:          out.SKU,
				MovementType: entity.MovementTypeIN,
				Qty:          out.Quantity,
				Value:        out.Value,
				Date:         now,
				Description:  desc,
				Reference:    ref,
				UserID:       userID,
			}, now)
			if err != nil {
				return err
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
			created++
		}

		run := &entity.ProductionRun{
			ID:            uuid.New().String(),
			ProductionRef: ref,
			Date:          now,
			Notes:         in.Notes,
			TotalCost:     p.calc.TotalCost,
			Items:         p.runItems,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		return prodRepo.CreateRun(ctx, run)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("production_ref", ref).
		Int("movements", created).
		Str("total_cost", result.calc.TotalCost.String()).
		Str("user_id", userID).
		Msg("producción ejecutada")

	return &dto.ProductionExecution{
		ProductionRef:     ref,
		Date:              now,
		MaterialsConsumed: result.calc.Materials,
		ProductsProduced:  result.calc.Products,
		MovementsCreated:  created,
		TotalCost:         result.calc.TotalCost,
	}, nil
}

// History devuelve las últimas corridas (más recientes primero) y el total registrado.
func (uc *UseCase) History(ctx context.Context, limit int) ([]dto.ProductionHistoryEntry, int, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	runs, err := uc.prodRepo.ListRuns(ctx, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.prodRepo.CountRuns(ctx)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ProductionHistoryEntry, 0, len(runs))
	for _, r := range runs {
		templates := make([]dto.HistoryTemplate, 0, len(r.Items))
		for _, it := range r.Items {
			templates = append(templates, dto.HistoryTemplate{
				TemplateID:   it.TemplateID,
				TemplateName: it.TemplateName,
				Quantity:     it.Quantity,
			})
		}
		out = append(out, dto.ProductionHistoryEntry{
			ProductionRef: r.ProductionRef,
			Date:          r.Date,
			Notes:         r.Notes,
			Templates:     templates,
			TotalCost:     r.TotalCost,
		})
	}
	return out, total, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Plan
// ──────────────────────────────────────────────────────────────────────────────

type planResult struct {
	calc     dto.ProductionCalculation
	runItems []entity.ProductionRunItem
}

type templateUse struct {
	t   *entity.ProductionTemplate
	qty decimal.Decimal
}

// plan agrega los requerimientos por material (en orden de aparición) y valúa cada material
// al costo promedio del ledger a la fecha now; sin saldo usa el costo de referencia del catálogo.
// Los movimientos con fecha posterior a now no cuentan como disponibles.
func (uc *UseCase) plan(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	prodRepo repository.ProductionRepository,
	lines []dto.PlanLine,
	now time.Time,
) (*planResult, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	uses := make([]templateUse, 0, len(lines))
	required := make(map[string]decimal.Decimal)
	var order []string
	for _, l := range lines {
		if !l.Quantity.IsPositive() {
			return nil, domain.ErrInvalidQuantity
		}
		t, err := prodRepo.GetTemplate(ctx, l.TemplateID)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, fmt.Errorf("plantilla %s: %w", l.TemplateID, domain.ErrNotFound)
		}
		uses = append(uses, templateUse{t: t, qty: l.Quantity})
		for _, tm := range t.Materials {
			if _, ok := required[tm.MaterialID]; !ok {
				order = append(order, tm.MaterialID)
			}
			required[tm.MaterialID] = required[tm.MaterialID].Add(tm.Qty.Mul(l.Quantity))
		}
	}

	res := &planResult{calc: dto.ProductionCalculation{
		Materials: make([]dto.MaterialRequirement, 0, len(order)),
		Products:  make([]dto.ProductOutput, 0, len(uses)),
		Feasible:  true,
	}}
	unitCost := make(map[string]decimal.Decimal, len(order))
	for _, id := range order {
		m, err := uc.materials.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("material %s: %w", id, domain.ErrNotFound)
		}
		bal, err := inventory.CurrentBalance(ctx, movRepo, entity.ItemKey{ItemType: entity.ItemTypeMaterial, FkID: id}, now)
		if err != nil {
			return nil, err
		}
		req := required[id]
		shortage := req.Sub(bal.Qty)
		if shortage.IsNegative() {
			shortage = decimal.Zero
		}
		cost := ledger.AverageUnitCost(bal, m.Cost)
		unitCost[id] = cost

		feasible := shortage.IsZero()
		if !feasible {
			res.calc.Feasible = false
		}
		res.calc.Materials = append(res.calc.Materials, dto.MaterialRequirement{
			MaterialID: id,
			SKU:        m.SKU,
			Name:       m.Name,
			Required:   req,
			Available:  bal.Qty,
			Feasible:   feasible,
			Shortage:   shortage,
			UnitCost:   cost,
		})
		res.calc.TotalCost = res.calc.TotalCost.Add(req.Mul(cost).Round(valuePlaces))
	}

	for _, u := range uses {
		p, err := uc.products.GetByID(ctx, u.t.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", u.t.ProductID, domain.ErrNotFound)
		}
		value := decimal.Zero
		for _, tm := range u.t.Materials {
			value = value.Add(tm.Qty.Mul(u.qty).Mul(unitCost[tm.MaterialID]))
		}
		res.calc.Products = append(res.calc.Products, dto.ProductOutput{
			ProductID:  p.ID,
			SKU:        p.SKU,
			Name:       p.Name,
			TemplateID: u.t.ID,
			Quantity:   u.t.OutputQty.Mul(u.qty),
			Value:      value.Round(valuePlaces),
		})
		res.runItems = append(res.runItems, entity.ProductionRunItem{
			TemplateID:   u.t.ID,
			TemplateName: u.t.Name,
			Quantity:     u.qty,
		})
	}
	return res, nil
}

// productionRef PRD-YYYYMMDD-XXXXXX.
func productionRef(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return "PRD-" + now.Format("20060102") + "-" + suffix
}

func toTemplateResponse(t *entity.ProductionTemplate) *dto.TemplateResponse {
	mats := make([]dto.TemplateMaterialDTO, 0, len(t.Materials))
	for _, m := range t.Materials {
		mats = append(mats, dto.TemplateMaterialDTO{MaterialID: m.MaterialID, Qty: m.Qty})
	}
	return &dto.TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		ProductID:   t.ProductID,
		OutputQty:   t.OutputQty,
		Status:      t.Status,
		Materials:   mats,
		CreatedAt:   t.CreatedAt,
	}
}

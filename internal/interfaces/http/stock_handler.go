package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/application/inventory"
	"github.com/IhsanMhd-mr/back-ims/internal/application/report"
	"github.com/IhsanMhd-mr/back-ims/internal/domain"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

// StockHandler endpoints del ledger de movimientos (protegido).
type StockHandler struct {
	ledger   *inventory.LedgerUseCase
	balances *inventory.BalanceResolver
	reports  *report.UseCase
	log      *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *inventory.LedgerUseCase, balances *inventory.BalanceResolver, reports *report.UseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{ledger: ledger, balances: balances, reports: reports, log: log}
}

// AddStock godoc
// @Summary      Registrar entrada de stock
// @Description  product_id implica item_type PRODUCT; movement_type por defecto IN; cost es costo unitario.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "Movimiento"
// @Success      201   {object}  dto.DataResponse{data=dto.StockMovementResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/add [post]
func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.ledger.AddStock(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, out)
}

// RecordMovement godoc
// @Summary      Registrar movimiento IN/OUT
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.DataResponse{data=dto.StockMovementResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.ledger.RecordFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_type   query  string  false  "MATERIAL o PRODUCT"
// @Param        fk_id       query  string  false  "ID del ítem"
// @Param        limit       query  int     false  "Límite"  default(100)
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        end_date    query  string  false  "Hasta (un día sin hora es inclusivo)"
// @Success      200  {object}  dto.DataResponse{data=[]dto.StockMovementResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/getAll [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	from, to, err := inventory.DateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, h.log, fmt.Errorf("%w: start_date/end_date", err))
	}
	out, err := h.ledger.ListMovements(c.UserContext(), c.Query("item_type"), c.Query("fk_id"), from, to, c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// Balance godoc
// @Summary      Saldo de un ítem a una fecha
// @Description  Suma los movimientos estrictamente anteriores a as_of (por defecto, ahora).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_type  query  string  true   "MATERIAL o PRODUCT"
// @Param        fk_id      query  string  true   "ID del ítem"
// @Param        as_of      query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200  {object}  dto.DataResponse{data=dto.BalanceResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/balance [get]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	asOf := time.Now().UTC()
	if s := c.Query("as_of"); s != "" {
		t, _, err := inventory.ParseDate(s)
		if err != nil {
			return respondError(c, h.log, fmt.Errorf("%w: as_of", err))
		}
		asOf = t
	}
	itemType := strings.ToUpper(strings.TrimSpace(c.Query("item_type")))
	b, err := h.balances.OpeningBalance(c.UserContext(), itemType, c.Query("fk_id"), asOf)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, dto.BalanceResponse{
		ItemType: itemType,
		FkID:     c.Query("fk_id"),
		AsOf:     asOf,
		Qty:      b.Qty,
		Value:    b.Value,
	})
}

// Delete godoc
// @Summary      Borrado lógico de un movimiento
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledger.Delete(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Message: "movimiento eliminado"})
}

// ExportMovements godoc
// @Summary      Exportar movimientos a Excel
// @Tags         stock
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        item_type   query  string  false  "MATERIAL o PRODUCT"
// @Param        fk_id       query  string  false  "ID del ítem"
// @Param        start_date  query  string  false  "Desde"
// @Param        end_date    query  string  false  "Hasta"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/export [get]
func (h *StockHandler) ExportMovements(c *fiber.Ctx) error {
	from, to, err := inventory.DateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, h.log, fmt.Errorf("%w: start_date/end_date", err))
	}
	f, err := h.reports.ExportMovements(c.UserContext(), c.Query("item_type"), c.Query("fk_id"), from, to)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendFile(c, f)
}

func sendFile(c *fiber.Ctx, f *report.File) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, f.Name))
	return c.Send(f.Data)
}

// queryPeriod lee year y month obligatorios del query string.
func queryPeriod(c *fiber.Ctx) (int, int, error) {
	year, month := c.QueryInt("year", 0), c.QueryInt("month", 0)
	if year == 0 || month == 0 {
		return 0, 0, fmt.Errorf("%w: year y month son requeridos", domain.ErrInvalidInput)
	}
	return year, month, nil
}

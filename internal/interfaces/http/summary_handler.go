package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/application/inventory"
	"github.com/IhsanMhd-mr/back-ims/internal/application/report"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

// SummaryHandler endpoints de resúmenes mensuales (protegido; la generación requiere admin o manager).
type SummaryHandler struct {
	generator *inventory.SummaryGenerator
	query     *inventory.SummaryQueryUseCase
	reports   *report.UseCase
	log       *logger.Logger
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(generator *inventory.SummaryGenerator, query *inventory.SummaryQueryUseCase, reports *report.UseCase, log *logger.Logger) *SummaryHandler {
	return &SummaryHandler{generator: generator, query: query, reports: reports, log: log}
}

// Generate godoc
// @Summary      Generar resúmenes del mes
// @Description  Recalcula los ítems con movimientos en el mes y los ya arrastrados del mes anterior.
// @Tags         monthly-summaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateSummaryRequest  true  "Periodo"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/monthly-summaries/generate [post]
func (h *SummaryHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateSummaryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	res, err := h.generator.Generate(c.UserContext(), in.Year, in.Month, false)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "count": res.Count, "data": res.Items})
}

// GenerateFromLastMonth godoc
// @Summary      Generar resúmenes arrastrando el mes anterior
// @Description  Incluye además los ítems con resumen en el mes anterior aunque no tengan movimientos.
// @Tags         monthly-summaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateSummaryRequest  true  "Periodo"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/monthly-summaries/generate-from-last-month [post]
func (h *SummaryHandler) GenerateFromLastMonth(c *fiber.Ctx) error {
	var in dto.GenerateSummaryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	res, err := h.generator.Generate(c.UserContext(), in.Year, in.Month, true)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   res.Count,
		"message": fmt.Sprintf("%d resúmenes generados para %04d-%02d", res.Count, res.Year, res.Month),
	})
}

// GenerateItem godoc
// @Summary      Generar el resumen de un ítem
// @Tags         monthly-summaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateItemSummaryRequest  true  "Periodo e ítem"
// @Success      200   {object}  dto.DataResponse{data=dto.MonthlySummaryResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/monthly-summaries/generate-item [post]
func (h *SummaryHandler) GenerateItem(c *fiber.Ctx) error {
	var in dto.GenerateItemSummaryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.generator.GenerateForItem(c.UserContext(), in.Year, in.Month, in.ItemType, in.FkID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// List godoc
// @Summary      Consultar resúmenes del mes
// @Tags         monthly-summaries
// @Security     Bearer
// @Produce      json
// @Param        year       query  int     true   "Año"
// @Param        month      query  int     true   "Mes 1-12"
// @Param        item_type  query  string  false  "MATERIAL o PRODUCT"
// @Param        fk_id      query  string  false  "ID del ítem"
// @Param        grouped    query  bool    false  "Agrupar en bloques MATERIAL/PRODUCT"
// @Success      200  {object}  dto.DataResponse{data=[]dto.MonthlySummaryResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/monthly-summaries [get]
func (h *SummaryHandler) List(c *fiber.Ctx) error {
	year, month, err := queryPeriod(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if c.QueryBool("grouped", false) {
		blocks, err := h.query.Grouped(c.UserContext(), year, month)
		if err != nil {
			return respondError(c, h.log, err)
		}
		return respondData(c, fiber.StatusOK, blocks)
	}
	out, err := h.query.Query(c.UserContext(), year, month, c.Query("item_type"), c.Query("fk_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// Export godoc
// @Summary      Exportar resúmenes del mes
// @Tags         monthly-summaries
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        year    query  int     true   "Año"
// @Param        month   query  int     true   "Mes 1-12"
// @Param        format  query  string  false  "xlsx o pdf"  default(xlsx)
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/monthly-summaries/export [get]
func (h *SummaryHandler) Export(c *fiber.Ctx) error {
	year, month, err := queryPeriod(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	f, err := h.reports.ExportSummary(c.UserContext(), year, month, c.Query("format"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendFile(c, f)
}

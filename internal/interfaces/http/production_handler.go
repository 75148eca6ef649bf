package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/application/production"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

// ProductionHandler plantillas, cálculo y ejecución de producción (protegido).
type ProductionHandler struct {
	uc  *production.UseCase
	log *logger.Logger
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.UseCase, log *logger.Logger) *ProductionHandler {
	return &ProductionHandler{uc: uc, log: log}
}

// ListTemplates godoc
// @Summary      Listar plantillas de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DataResponse{data=[]dto.TemplateResponse}
// @Router       /api/production/templates [get]
func (h *ProductionHandler) ListTemplates(c *fiber.Ctx) error {
	out, err := h.uc.ListTemplates(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// GetTemplate godoc
// @Summary      Obtener plantilla
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la plantilla"
// @Success      200  {object}  dto.DataResponse{data=dto.TemplateResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/templates/{id} [get]
func (h *ProductionHandler) GetTemplate(c *fiber.Ctx) error {
	out, err := h.uc.GetTemplate(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// CreateTemplate godoc
// @Summary      Crear plantilla de producción
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTemplateRequest  true  "Plantilla"
// @Success      201   {object}  dto.DataResponse{data=dto.TemplateResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/templates [post]
func (h *ProductionHandler) CreateTemplate(c *fiber.Ctx) error {
	var in dto.CreateTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.CreateTemplate(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, out)
}

// Calculate godoc
// @Summary      Calcular factibilidad de un plan
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateProductionRequest  true  "Plan"
// @Success      200   {object}  dto.DataResponse{data=dto.ProductionCalculation}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/calculate [post]
func (h *ProductionHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateProductionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Calculate(c.UserContext(), in.ProductionPlan)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// Execute godoc
// @Summary      Ejecutar un plan de producción
// @Description  Consume materiales (OUT) y produce productos (IN) en una sola transacción.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExecuteProductionRequest  true  "Plan y notas"
// @Success      201   {object}  dto.DataResponse{data=dto.ProductionExecution}
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/execute [post]
func (h *ProductionHandler) Execute(c *fiber.Ctx) error {
	var in dto.ExecuteProductionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Execute(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, out)
}

// History godoc
// @Summary      Historial de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/production/history [get]
func (h *ProductionHandler) History(c *fiber.Ctx) error {
	out, total, err := h.uc.History(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": out, "total": total})
}

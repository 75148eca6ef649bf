package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/application/printtemplate"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

// PrintTemplateHandler almacenamiento de plantillas de impresión (protegido).
type PrintTemplateHandler struct {
	uc  *printtemplate.UseCase
	log *logger.Logger
}

// NewPrintTemplateHandler construye el handler.
func NewPrintTemplateHandler(uc *printtemplate.UseCase, log *logger.Logger) *PrintTemplateHandler {
	return &PrintTemplateHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar nombres de plantillas de impresión
// @Tags         print-templates
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DataResponse{data=[]string}
// @Router       /api/print-templates [get]
func (h *PrintTemplateHandler) List(c *fiber.Ctx) error {
	names, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, names)
}

// Get godoc
// @Summary      Obtener plantilla de impresión
// @Tags         print-templates
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.DataResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/print-templates/{name} [get]
func (h *PrintTemplateHandler) Get(c *fiber.Ctx) error {
	doc, err := h.uc.Get(c.UserContext(), c.Params("name"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, doc)
}

// Save godoc
// @Summary      Crear o reemplazar plantilla de impresión
// @Tags         print-templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Param        body  body  object  true  "Documento JSON"
// @Success      200   {object}  dto.DataResponse
// @Success      201   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/print-templates/{name} [put]
func (h *PrintTemplateHandler) Save(c *fiber.Ctx) error {
	created, err := h.uc.Save(c.UserContext(), c.Params("name"), c.Body())
	if err != nil {
		return respondError(c, h.log, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.DataResponse{Success: true, Message: "plantilla guardada"})
}

// Delete godoc
// @Summary      Eliminar plantilla de impresión
// @Tags         print-templates
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.DataResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/print-templates/{name} [delete]
func (h *PrintTemplateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("name")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Message: "plantilla eliminada"})
}

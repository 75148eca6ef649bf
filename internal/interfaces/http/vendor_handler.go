package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/internal/application/usecase"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

// VendorHandler CRUD de proveedores (protegido).
type VendorHandler struct {
	uc  *usecase.VendorUseCase
	log *logger.Logger
}

// NewVendorHandler construye el handler.
func NewVendorHandler(uc *usecase.VendorUseCase, log *logger.Logger) *VendorHandler {
	return &VendorHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         vendors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVendorRequest  true  "Proveedor"
// @Success      201   {object}  dto.DataResponse{data=dto.VendorResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendors [post]
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVendorRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, out)
}

// GetByID godoc
// @Summary      Obtener proveedor
// @Tags         vendors
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.DataResponse{data=dto.VendorResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendors/{id} [get]
func (h *VendorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         vendors
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.DataResponse{data=dto.VendorListResponse}
// @Router       /api/vendors [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         vendors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del proveedor"
// @Param        body  body  dto.UpdateVendorRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.DataResponse{data=dto.VendorResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vendors/{id} [put]
func (h *VendorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVendorRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Borrado lógico de proveedor
// @Tags         vendors
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendors/{id} [delete]
func (h *VendorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Message: "proveedor eliminado"})
}

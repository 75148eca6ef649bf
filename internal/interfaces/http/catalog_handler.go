package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/IhsanMhd-mr/back-ims/internal/application/dto"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

// catalogService contrato común de *usecase.MaterialUseCase y *usecase.ProductUseCase.
type catalogService interface {
	Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ItemResponse, error)
	Update(ctx context.Context, userID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error)
	List(ctx context.Context, limit, offset int) (*dto.ItemListResponse, error)
}

// CatalogHandler CRUD de materiales o productos; el mismo handler sirve ambas rutas.
type CatalogHandler struct {
	svc catalogService
	log *logger.Logger
}

// NewCatalogHandler construye el handler para un catálogo.
func NewCatalogHandler(svc catalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

// Create godoc
// @Summary      Crear material o producto
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Ítem"
// @Success      201   {object}  dto.DataResponse{data=dto.ItemResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
// @Router       /api/products [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.svc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, out)
}

// GetByID godoc
// @Summary      Obtener material o producto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.DataResponse{data=dto.ItemResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// List godoc
// @Summary      Listar materiales o productos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.DataResponse{data=dto.ItemListResponse}
// @Router       /api/materials [get]
// @Router       /api/products [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.svc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar material o producto
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.DataResponse{data=dto.ItemResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [put]
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.svc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, out)
}

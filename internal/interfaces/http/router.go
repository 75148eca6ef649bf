package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IhsanMhd-mr/back-ims/internal/application/inventory"
	"github.com/IhsanMhd-mr/back-ims/internal/application/printtemplate"
	"github.com/IhsanMhd-mr/back-ims/internal/application/production"
	"github.com/IhsanMhd-mr/back-ims/internal/application/report"
	"github.com/IhsanMhd-mr/back-ims/internal/application/usecase"
	"github.com/IhsanMhd-mr/back-ims/pkg/jwt"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger          *inventory.LedgerUseCase
	Balances        *inventory.BalanceResolver
	Generator       *inventory.SummaryGenerator
	SummaryQuery    *inventory.SummaryQueryUseCase
	Reports         *report.UseCase
	Production      *production.UseCase
	VendorUC        *usecase.VendorUseCase
	MaterialUC      *usecase.MaterialUseCase
	ProductUC       *usecase.ProductUseCase
	PrintTemplateUC *printtemplate.UseCase
	JWTSecret       string
	Log             *logger.Logger
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	managers := RequireRole(jwt.RoleAdmin, jwt.RoleManager)

	// Ledger de stock
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.Balances, deps.Reports, deps.Log)
	stock.Post("/add", stockHandler.AddStock)
	stock.Post("/movements", stockHandler.RecordMovement)
	stock.Get("/movements/export", stockHandler.ExportMovements)
	stock.Delete("/movements/:id", managers, stockHandler.Delete)
	stock.Get("/getAll", stockHandler.List)
	stock.Get("/balance", stockHandler.Balance)

	// Resúmenes mensuales (generación sólo admin/manager)
	summaries := stock.Group("/monthly-summaries")
	summaryHandler := NewSummaryHandler(deps.Generator, deps.SummaryQuery, deps.Reports, deps.Log)
	summaries.Post("/generate", managers, summaryHandler.Generate)
	summaries.Post("/generate-from-last-month", managers, summaryHandler.GenerateFromLastMonth)
	summaries.Post("/generate-item", managers, summaryHandler.GenerateItem)
	summaries.Get("/export", summaryHandler.Export)
	summaries.Get("/", summaryHandler.List)

	// Producción (ejecución sólo admin/manager)
	prod := api.Group("/production")
	prodHandler := NewProductionHandler(deps.Production, deps.Log)
	prod.Get("/templates", prodHandler.ListTemplates)
	prod.Get("/templates/:id", prodHandler.GetTemplate)
	prod.Post("/templates", managers, prodHandler.CreateTemplate)
	prod.Post("/calculate", prodHandler.Calculate)
	prod.Post("/execute", managers, prodHandler.Execute)
	prod.Get("/history", prodHandler.History)

	// Proveedores
	vendors := api.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC, deps.Log)
	vendors.Post("/", vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Put("/:id", vendorHandler.Update)
	vendors.Delete("/:id", managers, vendorHandler.Delete)

	// Catálogo
	registerCatalog(api.Group("/materials"), NewCatalogHandler(deps.MaterialUC, deps.Log))
	registerCatalog(api.Group("/products"), NewCatalogHandler(deps.ProductUC, deps.Log))

	// Plantillas de impresión
	tpl := api.Group("/print-templates")
	tplHandler := NewPrintTemplateHandler(deps.PrintTemplateUC, deps.Log)
	tpl.Get("/", tplHandler.List)
	tpl.Get("/:name", tplHandler.Get)
	tpl.Put("/:name", tplHandler.Save)
	tpl.Post("/:name", tplHandler.Save)
	tpl.Delete("/:name", managers, tplHandler.Delete)
}

func registerCatalog(g fiber.Router, h *CatalogHandler) {
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
}

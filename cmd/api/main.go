package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/IhsanMhd-mr/back-ims/internal/application/inventory"
	"github.com/IhsanMhd-mr/back-ims/internal/application/printtemplate"
	"github.com/IhsanMhd-mr/back-ims/internal/application/production"
	"github.com/IhsanMhd-mr/back-ims/internal/application/report"
	"github.com/IhsanMhd-mr/back-ims/internal/application/usecase"
	"github.com/IhsanMhd-mr/back-ims/internal/infrastructure/excel"
	"github.com/IhsanMhd-mr/back-ims/internal/infrastructure/filestore"
	infrapdf "github.com/IhsanMhd-mr/back-ims/internal/infrastructure/pdf"
	"github.com/IhsanMhd-mr/back-ims/internal/infrastructure/postgres"
	httpRouter "github.com/IhsanMhd-mr/back-ims/internal/interfaces/http"
	"github.com/IhsanMhd-mr/back-ims/pkg/config"
	"github.com/IhsanMhd-mr/back-ims/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := migrateUp(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	movementRepo := postgres.NewStockMovementRepository(pool)
	summaryRepo := postgres.NewMonthlySummaryRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := inventory.NewLedgerUseCase(movementRepo)
	balances := inventory.NewBalanceResolver(movementRepo, summaryRepo)
	namer := inventory.NewCatalogNamer(materialRepo, productRepo)
	generator := inventory.NewSummaryGenerator(txRunner, namer, log)
	summaryQuery := inventory.NewSummaryQueryUseCase(summaryRepo)
	productionUC := production.NewUseCase(txRunner, productionRepo, movementRepo, materialRepo, productRepo, log)

	// Exportaciones: Excel con excelize, PDF con Maroto
	reportUC := report.NewUseCase(summaryQuery, ledgerUC, excel.NewWriter(), infrapdf.NewMarotoPDFGenerator())

	printTemplateUC := printtemplate.NewUseCase(filestore.NewPrintTemplateStore(cfg.PrintTemplates.Path))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "back-ims API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:          ledgerUC,
		Balances:        balances,
		Generator:       generator,
		SummaryQuery:    summaryQuery,
		Reports:         reportUC,
		Production:      productionUC,
		VendorUC:        usecase.NewVendorUseCase(vendorRepo),
		MaterialUC:      usecase.NewMaterialUseCase(materialRepo),
		ProductUC:       usecase.NewProductUseCase(productRepo),
		PrintTemplateUC: printTemplateUC,
		JWTSecret:       cfg.JWT.Secret,
		Log:             log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func migrateUp(dsn string, log *logger.Logger) error {
	mg, err := postgres.NewMigrator(dsn, log)
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}

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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/ventas-pos-api/internal/application/billing"
	"github.com/jhoicas/ventas-pos-api/internal/application/usecase"
	"github.com/jhoicas/ventas-pos-api/internal/infrastructure/backend"
	"github.com/jhoicas/ventas-pos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/ventas-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-pos-api/internal/infrastructure/redisstore"
	httpRouter "github.com/jhoicas/ventas-pos-api/internal/interfaces/http"
	"github.com/jhoicas/ventas-pos-api/pkg/config"
	"github.com/jhoicas/ventas-pos-api/pkg/logger"
	"github.com/jhoicas/ventas-pos-api/pkg/money"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("sales_api", cfg.Upstream.BaseURL).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb, err := redisstore.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	format, err := money.NewFormatter(cfg.Receipt.Locale, cfg.Receipt.Currency, "")
	if err != nil {
		log.Fatal().Err(err).Msg("formato de moneda")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New("ventas_pos", registry)

	// Catálogo (PostgreSQL)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	comboRepo := postgres.NewComboRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	registerRepo := postgres.NewCashRegisterRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sesión y caché (Redis)
	saleCache := redisstore.NewSaleCache(rdb, cfg.Redis.Prefix, cfg.Receipt.CacheTTL)
	cartStore := redisstore.NewCartStore(rdb, cfg.Redis.Prefix, cfg.Cart.TTL)
	branchStore := redisstore.NewBranchContextStore(rdb, cfg.Redis.Prefix)

	// Backend de ventas
	salesClient := backend.NewSalesClient(cfg.Upstream)

	receiptUC := billing.NewReceiptUseCase(salesClient, saleCache, format, m, log)
	pdfUC := billing.NewPDFUseCase(receiptUC, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))
	cartUC := usecase.NewCartUseCase(cartStore, productRepo, format)
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, m, log, cfg.Session.ResultTTL)
	comboUC := usecase.NewComboUseCase(txRunner, comboRepo, productRepo, m, cfg.Session.ResultTTL)
	branchUC := usecase.NewBranchUseCase(branchRepo, registerRepo, branchStore)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Upstream.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Ventas POS API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:    cfg.App.Name,
		ReceiptUC:      receiptUC,
		PDFUC:          pdfUC,
		CartUC:         cartUC,
		ProductUC:      productUC,
		SupplierUC:     supplierUC,
		ComboUC:        comboUC,
		BranchUC:       branchUC,
		JWTSecret:      cfg.JWT.Secret,
		RequestLogger:  log.Named("http").Middleware(),
		Metrics:        m.Middleware(),
		MetricsHandler: m.Handler(),
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

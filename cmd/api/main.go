package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/retailflow-api/docs"
	"github.com/jhoicas/retailflow-api/internal/application/auth"
	"github.com/jhoicas/retailflow-api/internal/application/ordering"
	"github.com/jhoicas/retailflow-api/internal/application/payroll"
	"github.com/jhoicas/retailflow-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/retailflow-api/internal/infrastructure/pdf"
	"github.com/jhoicas/retailflow-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/retailflow-api/internal/infrastructure/redis"
	"github.com/jhoicas/retailflow-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/retailflow-api/internal/interfaces/http"
	"github.com/jhoicas/retailflow-api/pkg/config"
	"github.com/jhoicas/retailflow-api/pkg/logger"
)

// @title                       RetailFlow API
// @version                     1.0
// @description                 Back office de una cadena de tiendas: catálogo, carrito, pedidos, sucursales y solicitudes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	requestRepo := postgres.NewProductRequestRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	files, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de uploads")
	}

	// Guardia de idempotencia de pedidos: solo con REDIS_URL configurado.
	var guard ordering.IdempotencyGuard
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		guard = infraredis.NewIdempotencyGuard(rdb, cfg.Redis.IdempotencyTTL)
		log.Info().Dur("ttl", cfg.Redis.IdempotencyTTL).Msg("guardia de idempotencia activa")
	}

	authUC := auth.NewAuthUseCase(userRepo, branchRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	branchUC := usecase.NewBranchUseCase(branchRepo, userRepo, productRepo, requestRepo, infrapdf.NewBranchReport(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true, // los valores de Params/FormValue sobreviven a la request
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1024*1024, // margen para los campos del multipart
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "RetailFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Static("/uploads", cfg.Upload.Dir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        usecase.NewProductUseCase(productRepo, branchRepo, files),
		BranchUC:         branchUC,
		CartUC:           usecase.NewCartUseCase(txRunner, cartRepo),
		OrderUC:          ordering.NewOrderUseCase(txRunner, orderRepo, productRepo, branchRepo, guard, log),
		DocumentUC:       usecase.NewDocumentUseCase(documentRepo, txRunner, files, log),
		EmployeeUC:       usecase.NewEmployeeUseCase(userRepo, branchRepo, branchUC),
		PayrollUC:        payroll.NewPayrollUseCase(txRunner, userRepo, log),
		ProductRequestUC: usecase.NewProductRequestUseCase(requestRepo, userRepo, branchRepo),
		JWTSecret:        cfg.JWT.Secret,
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

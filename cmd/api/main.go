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
	"github.com/s25922/Cwiczenia4/internal/application/fulfillment"
	"github.com/s25922/Cwiczenia4/internal/application/usecase"
	"github.com/s25922/Cwiczenia4/internal/infrastructure/postgres"
	httpRouter "github.com/s25922/Cwiczenia4/internal/interfaces/http"
	"github.com/s25922/Cwiczenia4/pkg/config"
	"github.com/s25922/Cwiczenia4/pkg/logger"

	_ "github.com/s25922/Cwiczenia4/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	placementRepo := postgres.NewPlacementRepository(pool)
	procedureRepo := postgres.NewProcedureRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	placementUC := usecase.NewPlacementUseCase(placementRepo)
	fulfillUC := fulfillment.NewFulfillUseCase(txRunner, procedureRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Warehouse API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC:    warehouseUC,
		PlacementUC:    placementUC,
		FulfillUC:      fulfillUC,
		FulfillTimeout: cfg.HTTP.FulfillTimeout,
		JWTSecret:      cfg.Auth.JWTSecret,
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

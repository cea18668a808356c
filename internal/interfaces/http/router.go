package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/s25922/Cwiczenia4/internal/application/fulfillment"
	"github.com/s25922/Cwiczenia4/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC    *usecase.WarehouseUseCase
	PlacementUC    *usecase.PlacementUseCase
	FulfillUC      *fulfillment.FulfillUseCase
	FulfillTimeout time.Duration
	// JWTSecret vacío deja la API abierta; con valor, /api exige Bearer Token.
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret))
	}

	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	placements := api.Group("/placements")
	placementHandler := NewPlacementHandler(deps.PlacementUC, deps.FulfillUC, deps.FulfillTimeout)
	placements.Get("/", placementHandler.List)
	placements.Post("/", placementHandler.Add)
	placements.Post("/procedure", placementHandler.AddViaProcedure)
}

package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/s25922/Cwiczenia4/internal/application/dto"
	"github.com/s25922/Cwiczenia4/internal/application/fulfillment"
	"github.com/s25922/Cwiczenia4/internal/application/usecase"
	"github.com/s25922/Cwiczenia4/internal/domain"
)

// PlacementHandler maneja las peticiones HTTP de registros producto-bodega:
// el listado y los dos caminos de fulfillment (directo y por rutina almacenada).
type PlacementHandler struct {
	readUC    *usecase.PlacementUseCase
	fulfillUC *fulfillment.FulfillUseCase
	timeout   time.Duration
}

// NewPlacementHandler construye el handler. timeout acota cada llamada de
// fulfillment (la transacción completa); cero desactiva el límite.
func NewPlacementHandler(readUC *usecase.PlacementUseCase, fulfillUC *fulfillment.FulfillUseCase, timeout time.Duration) *PlacementHandler {
	return &PlacementHandler{readUC: readUC, fulfillUC: fulfillUC, timeout: timeout}
}

// List godoc
// @Summary      Listar registros producto-bodega
// @Tags         placements
// @Produce      json
// @Success      200  {object}  dto.PlacementListResponse
// @Router       /api/placements [get]
func (h *PlacementHandler) List(c *fiber.Ctx) error {
	out, err := h.readUC.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Cumplir un pedido y registrarlo en bodega (camino directo)
// @Tags         placements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddPlacementRequest  true  "product_id, warehouse_id, amount, created_at"
// @Success      201   {object}  dto.AddPlacementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/placements [post]
func (h *PlacementHandler) Add(c *fiber.Ctx) error {
	return h.add(c, "direct", h.fulfillUC.Fulfill)
}

// AddViaProcedure godoc
// @Summary      Cumplir un pedido vía la rutina almacenada add_product_to_warehouse
// @Tags         placements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddPlacementRequest  true  "product_id, warehouse_id, amount, created_at"
// @Success      201   {object}  dto.AddPlacementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/placements/procedure [post]
func (h *PlacementHandler) AddViaProcedure(c *fiber.Ctx) error {
	return h.add(c, "procedure", h.fulfillUC.FulfillViaProcedure)
}

func (h *PlacementHandler) add(c *fiber.Ctx, path string, fulfill func(context.Context, fulfillment.FulfillInput) (int64, error)) error {
	var in dto.AddPlacementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// Contrato del caller: amount <= 0 se rechaza antes de invocar el núcleo.
	if in.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount debe ser mayor que cero"})
	}
	if in.ProductID <= 0 || in.WarehouseID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id deben ser enteros positivos"})
	}
	if in.CreatedAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "created_at es requerido"})
	}

	var ctx context.Context = c.Context()
	var cancel context.CancelFunc = func() {}
	if h.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
	}
	defer cancel()

	requestID := uuid.New().String()
	placementID, err := fulfill(ctx, fulfillment.FulfillInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Amount:      in.Amount,
		CreatedAt:   in.CreatedAt,
	})
	if err != nil {
		log.Warn().Err(err).
			Str("request_id", requestID).
			Str("path", path).
			Int64("product_id", in.ProductID).
			Int64("warehouse_id", in.WarehouseID).
			Int("amount", in.Amount).
			Msg("fulfillment rechazado")
		return h.mapError(c, path, err)
	}

	log.Info().
		Str("request_id", requestID).
		Str("path", path).
		Int64("placement_id", placementID).
		Msg("fulfillment completado")
	fulfillmentsTotal.WithLabelValues(path, "ok").Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.AddPlacementResponse{PlacementID: placementID})
}

// mapError traduce la taxonomía de errores del núcleo a respuestas HTTP:
// errores corregibles por el cliente (entidad inexistente, sin pedido
// elegible) en 4xx; integridad de datos y carreras perdidas en 409; fallos de
// acceso a datos y de la rutina almacenada en 500.
func (h *PlacementHandler) mapError(c *fiber.Ctx, path string, err error) error {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		fulfillmentsTotal.WithLabelValues(path, "not_found").Inc()
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrWarehouseNotFound):
		fulfillmentsTotal.WithLabelValues(path, "not_found").Inc()
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "WAREHOUSE_NOT_FOUND", Message: "bodega no encontrada"})
	case errors.Is(err, domain.ErrNoEligibleOrder):
		fulfillmentsTotal.WithLabelValues(path, "no_order").Inc()
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_ELIGIBLE_ORDER", Message: "no hay pedido elegible para cumplir"})
	case errors.Is(err, domain.ErrMissingPrice):
		fulfillmentsTotal.WithLabelValues(path, "missing_price").Inc()
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "MISSING_PRICE", Message: "el producto no tiene precio asignado"})
	case errors.Is(err, domain.ErrOrderAlreadyPlaced):
		fulfillmentsTotal.WithLabelValues(path, "conflict").Inc()
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDER_ALREADY_PLACED", Message: "el pedido ya fue registrado en bodega"})
	case errors.Is(err, domain.ErrProcedureFailed):
		fulfillmentsTotal.WithLabelValues(path, "error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PROCEDURE_FAILED", Message: "la rutina almacenada reportó fallo"})
	default:
		fulfillmentsTotal.WithLabelValues(path, "error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/s25922/Cwiczenia4/internal/application/dto"
	"github.com/s25922/Cwiczenia4/internal/application/usecase"
	"github.com/s25922/Cwiczenia4/internal/domain"
)

// WarehouseHandler maneja las peticiones HTTP de lectura de bodegas.
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Produce      json
// @Param        order_by  query  string  false  "Columna de orden ascendente: id | name | address"  default(name)
// @Success      200  {object}  dto.WarehouseListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	orderBy := c.Query("order_by")
	out, err := h.uc.List(c.Context(), orderBy)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_by debe ser id, name o address"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         warehouses
// @Produce      json
// @Param        id   path  int  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id debe ser un entero positivo"})
	}
	out, err := h.uc.GetByID(c.Context(), int64(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
	}
	return c.JSON(out)
}

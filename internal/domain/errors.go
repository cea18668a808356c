package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrWarehouseNotFound  = errors.New("bodega no encontrada")
	ErrNoEligibleOrder    = errors.New("no hay pedido elegible para cumplir")
	ErrMissingPrice       = errors.New("el producto no tiene precio asignado")
	ErrOrderAlreadyPlaced = errors.New("el pedido ya tiene un registro de bodega")
	ErrProcedureFailed    = errors.New("el procedimiento almacenado reportó fallo")
	ErrInvalidInput       = errors.New("entrada inválida")
)

package fulfillment

import (
	"context"
	"time"

	"github.com/s25922/Cwiczenia4/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Commit si fn devuelve nil, Rollback si no.
// Garantiza la atomicidad del núcleo de fulfillment.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		orderRepo repository.OrderRepository,
		placementRepo repository.PlacementRepository,
	) error) error
}

// ProcedureCaller invoca la rutina almacenada add_product_to_warehouse, que
// ejecuta del lado del servidor la misma secuencia de validación, cumplimiento
// e inserción. Devuelve el escalar retornado por la rutina (el nuevo ID).
type ProcedureCaller interface {
	AddProductToWarehouse(ctx context.Context, productID, warehouseID int64, amount int, createdAt time.Time) (int64, error)
}

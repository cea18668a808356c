package repository

import (
	"context"
	"time"

	"github.com/s25922/Cwiczenia4/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	// FindEligibleForUpdate busca un pedido elegible: mismo producto y cantidad,
	// creado antes de before y sin registro previo en product_warehouses.
	// Bloquea la fila seleccionada (SELECT FOR UPDATE). Devuelve nil si no hay.
	FindEligibleForUpdate(ctx context.Context, productID int64, amount int, before time.Time) (*entity.Order, error)
	// MarkFulfilled fija fulfilled_at del pedido. Error si no afecta filas
	// (el pedido desapareció o ya fue cumplido entre la búsqueda y el update).
	MarkFulfilled(ctx context.Context, orderID int64, at time.Time) error
}

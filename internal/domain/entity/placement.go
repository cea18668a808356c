package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placement vincula un pedido cumplido con la bodega y el producto que lo
// surtió. Price es un snapshot del precio del producto al momento de crear el
// registro: nunca se recalcula aunque el precio vivo cambie después.
// El ID lo asigna la base de datos al insertar.
type Placement struct {
	ID          int64
	ProductID   int64
	OrderID     int64
	WarehouseID int64
	Amount      int
	Price       decimal.Decimal
	CreatedAt   time.Time
}

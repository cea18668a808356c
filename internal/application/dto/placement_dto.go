package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddPlacementRequest entrada para cumplir un pedido y registrarlo en bodega.
// CreatedAt es el instante de la solicitud: solo pedidos creados estrictamente
// antes de él son elegibles, y queda como created_at del registro.
type AddPlacementRequest struct {
	ProductID   int64     `json:"product_id"`
	WarehouseID int64     `json:"warehouse_id"`
	Amount      int       `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// AddPlacementResponse salida con el ID del registro creado.
type AddPlacementResponse struct {
	PlacementID int64 `json:"placement_id"`
}

// PlacementResponse salida de un registro producto-bodega.
type PlacementResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	OrderID     int64           `json:"order_id"`
	WarehouseID int64           `json:"warehouse_id"`
	Amount      int             `json:"amount"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PlacementListResponse lista de registros producto-bodega.
type PlacementListResponse struct {
	Total int                 `json:"total"`
	Items []PlacementResponse `json:"items"`
}

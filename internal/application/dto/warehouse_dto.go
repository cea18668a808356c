package dto

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// WarehouseListResponse lista de bodegas.
type WarehouseListResponse struct {
	Total int                 `json:"total"`
	Items []WarehouseResponse `json:"items"`
}

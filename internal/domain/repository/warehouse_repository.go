package repository

import (
	"context"

	"github.com/s25922/Cwiczenia4/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// orderBy debe validarse contra la lista blanca de columnas antes de llegar
// al adaptador; nunca se interpola texto arbitrario del caller.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	List(ctx context.Context, orderBy string) ([]*entity.Warehouse, error)
}

package repository

import (
	"context"

	"github.com/s25922/Cwiczenia4/internal/domain/entity"
)

// PlacementRepository define el puerto de persistencia para Placement (DIP).
type PlacementRepository interface {
	// Create inserta el registro y devuelve el ID asignado por la base.
	Create(ctx context.Context, placement *entity.Placement) (int64, error)
	List(ctx context.Context) ([]*entity.Placement, error)
}

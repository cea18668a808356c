package usecase

import (
	"context"

	"github.com/s25922/Cwiczenia4/internal/application/dto"
	"github.com/s25922/Cwiczenia4/internal/domain/repository"
)

// PlacementUseCase casos de uso de lectura para registros producto-bodega.
type PlacementUseCase struct {
	repo repository.PlacementRepository
}

// NewPlacementUseCase construye el caso de uso.
func NewPlacementUseCase(repo repository.PlacementRepository) *PlacementUseCase {
	return &PlacementUseCase{repo: repo}
}

// List proyecta todos los registros producto-bodega. El adaptador de lectura
// es best effort: ante un fallo parcial entrega las filas acumuladas.
func (uc *PlacementUseCase) List(ctx context.Context) (*dto.PlacementListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlacementResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.PlacementResponse{
			ID:          p.ID,
			ProductID:   p.ProductID,
			OrderID:     p.OrderID,
			WarehouseID: p.WarehouseID,
			Amount:      p.Amount,
			Price:       p.Price,
			CreatedAt:   p.CreatedAt,
		})
	}
	return &dto.PlacementListResponse{Total: len(items), Items: items}, nil
}

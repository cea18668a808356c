package usecase

import (
	"context"

	"github.com/s25922/Cwiczenia4/internal/application/dto"
	"github.com/s25922/Cwiczenia4/internal/domain"
	"github.com/s25922/Cwiczenia4/internal/domain/entity"
	"github.com/s25922/Cwiczenia4/internal/domain/repository"
)

// Columnas permitidas para ordenar el listado de bodegas. El orderBy del
// caller jamás se interpola sin pasar por esta lista blanca.
var warehouseOrderColumns = map[string]bool{
	"id":      true,
	"name":    true,
	"address": true,
}

// DefaultWarehouseOrder columna de orden por defecto del listado.
const DefaultWarehouseOrder = "name"

// WarehouseUseCase casos de uso de lectura para bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// List lista todas las bodegas ordenadas ascendentemente por orderBy.
// orderBy vacío usa la columna por defecto; una columna desconocida devuelve
// domain.ErrInvalidInput. Sin filas devuelve lista vacía, no error.
func (uc *WarehouseUseCase) List(ctx context.Context, orderBy string) (*dto.WarehouseListResponse, error) {
	if orderBy == "" {
		orderBy = DefaultWarehouseOrder
	}
	if !warehouseOrderColumns[orderBy] {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, orderBy)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{Total: len(items), Items: items}, nil
}

// GetByID obtiene una bodega por ID. nil, nil si no existe.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	return toWarehouseResponse(warehouse), nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:      w.ID,
		Name:    w.Name,
		Address: w.Address,
	}
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/s25922/Cwiczenia4/internal/domain/entity"
	"github.com/s25922/Cwiczenia4/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// Columnas realmente interpolables en el ORDER BY del listado. Segunda línea
// de defensa: el caso de uso ya validó contra su propia lista blanca.
var warehouseSortable = map[string]bool{
	"id":      true,
	"name":    true,
	"address": true,
}

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL
// (usable con pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// GetByID obtiene una bodega por ID. nil, nil si no existe.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	query := `
		SELECT id, name, address
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.Name, &w.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// List lista todas las bodegas ordenadas ascendentemente por orderBy.
func (r *WarehouseRepo) List(ctx context.Context, orderBy string) ([]*entity.Warehouse, error) {
	if !warehouseSortable[orderBy] {
		return nil, fmt.Errorf("columna de orden no permitida: %q", orderBy)
	}
	query := fmt.Sprintf(`
		SELECT id, name, address
		FROM warehouses ORDER BY %s ASC`, orderBy)
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	return list, nil
}

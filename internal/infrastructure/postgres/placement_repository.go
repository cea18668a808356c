package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/s25922/Cwiczenia4/internal/domain"
	"github.com/s25922/Cwiczenia4/internal/domain/entity"
	"github.com/s25922/Cwiczenia4/internal/domain/repository"
)

var _ repository.PlacementRepository = (*PlacementRepo)(nil)

// PlacementRepo implementación del puerto PlacementRepository sobre PostgreSQL
// (usable con pool o tx).
type PlacementRepo struct {
	q Querier
}

// NewPlacementRepository construye el adaptador de persistencia para registros
// producto-bodega. Pasar pool o tx (Querier).
func NewPlacementRepository(q Querier) *PlacementRepo {
	return &PlacementRepo{q: q}
}

// Create inserta el registro y devuelve el ID asignado por la base.
// El constraint único sobre order_id es el respaldo a nivel de store de
// "un placement por pedido": si dispara, otro proceso ganó la carrera.
func (r *PlacementRepo) Create(ctx context.Context, placement *entity.Placement) (int64, error) {
	query := `
		INSERT INTO product_warehouses (product_id, order_id, warehouse_id, amount, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		placement.ProductID, placement.OrderID, placement.WarehouseID,
		placement.Amount, placement.Price, placement.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrOrderAlreadyPlaced
		}
		return 0, fmt.Errorf("insert placement: %w", err)
	}
	return id, nil
}

// List proyecta todos los registros producto-bodega. Lectura best effort:
// un fallo de scan a mitad de iteración se registra en el log y se devuelven
// las filas acumuladas hasta ese punto, no un error. Un fallo del query
// completo sí es error.
func (r *PlacementRepo) List(ctx context.Context) ([]*entity.Placement, error) {
	query := `
		SELECT id, product_id, order_id, warehouse_id, amount, price, created_at
		FROM product_warehouses ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list placements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Placement
	for rows.Next() {
		var p entity.Placement
		if err := rows.Scan(&p.ID, &p.ProductID, &p.OrderID, &p.WarehouseID, &p.Amount, &p.Price, &p.CreatedAt); err != nil {
			log.Warn().Err(err).Int("acumulados", len(list)).Msg("scan placement falló; se devuelve resultado parcial")
			return list, nil
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		log.Warn().Err(err).Int("acumulados", len(list)).Msg("lectura de placements interrumpida; se devuelve resultado parcial")
		return list, nil
	}
	return list, nil
}

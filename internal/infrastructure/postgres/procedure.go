package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/s25922/Cwiczenia4/internal/application/fulfillment"
	"github.com/s25922/Cwiczenia4/internal/domain"
)

var _ fulfillment.ProcedureCaller = (*ProcedureRepo)(nil)

// ProcedureRepo invoca la rutina almacenada add_product_to_warehouse, que
// ejecuta del lado del servidor toda la secuencia de validación, cumplimiento
// e inserción y devuelve el ID del placement (negativo = fallo).
type ProcedureRepo struct {
	q Querier
}

// NewProcedureRepository construye el adaptador de la rutina almacenada.
func NewProcedureRepository(q Querier) *ProcedureRepo {
	return &ProcedureRepo{q: q}
}

// AddProductToWarehouse ejecuta la rutina en un solo round trip. Cualquier
// fallo de transporte o ejecución se envuelve en domain.ErrProcedureFailed:
// este camino no tiene validación ni rollback local que aplicar.
func (r *ProcedureRepo) AddProductToWarehouse(ctx context.Context, productID, warehouseID int64, amount int, createdAt time.Time) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx,
		`SELECT add_product_to_warehouse($1, $2, $3, $4)`,
		productID, warehouseID, amount, createdAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrProcedureFailed, err)
	}
	return id, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/s25922/Cwiczenia4/internal/domain/entity"
	"github.com/s25922/Cwiczenia4/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL
// (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// FindEligibleForUpdate busca el primer pedido elegible y bloquea su fila
// (SELECT FOR UPDATE) dentro de la transacción en curso. Elegible: mismo
// producto y cantidad, creado estrictamente antes de before y sin registro
// previo en product_warehouses. ORDER BY id hace determinista el desempate.
// Devuelve nil, nil si no hay candidatos.
func (r *OrderRepo) FindEligibleForUpdate(ctx context.Context, productID int64, amount int, before time.Time) (*entity.Order, error) {
	query := `
		SELECT o.id, o.product_id, o.amount, o.created_at, o.fulfilled_at
		FROM orders o
		WHERE o.product_id = $1
		  AND o.amount = $2
		  AND o.created_at < $3
		  AND NOT EXISTS (
			SELECT 1 FROM product_warehouses pw WHERE pw.order_id = o.id
		  )
		ORDER BY o.id
		LIMIT 1
		FOR UPDATE OF o`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, productID, amount, before).Scan(
		&o.ID, &o.ProductID, &o.Amount, &o.CreatedAt, &o.FulfilledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find eligible order: %w", err)
	}
	return &o, nil
}

// MarkFulfilled fija fulfilled_at del pedido, solo si sigue sin cumplir.
// Cero filas afectadas = el pedido desapareció o ya fue cumplido por otra
// transacción entre la búsqueda y el update; se reporta como error.
func (r *OrderRepo) MarkFulfilled(ctx context.Context, orderID int64, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET fulfilled_at = $2 WHERE id = $1 AND fulfilled_at IS NULL`,
		orderID, at,
	)
	if err != nil {
		return fmt.Errorf("mark order fulfilled: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("mark order fulfilled: pedido %d ya no disponible", orderID)
	}
	return nil
}

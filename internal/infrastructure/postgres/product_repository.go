package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/s25922/Cwiczenia4/internal/domain/entity"
	"github.com/s25922/Cwiczenia4/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID. nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `
		SELECT id, name, price
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetPrice lee el precio vigente del producto. Valid en false = precio NULL.
func (r *ProductRepo) GetPrice(ctx context.Context, id int64) (decimal.NullDecimal, error) {
	var price decimal.NullDecimal
	err := r.q.QueryRow(ctx, `SELECT price FROM products WHERE id = $1`, id).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.NullDecimal{}, nil
		}
		return decimal.NullDecimal{}, fmt.Errorf("get product price: %w", err)
	}
	return price, nil
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/s25922/Cwiczenia4/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetPrice lee el precio vigente del producto. Valid en false = precio NULL.
	GetPrice(ctx context.Context, id int64) (decimal.NullDecimal, error)
}

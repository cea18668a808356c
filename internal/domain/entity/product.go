package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo. Solo lectura para este servicio:
// su ciclo de vida se administra fuera del núcleo de fulfillment.
// Price puede ser NULL en la base; un producto sin precio bloquea el fulfillment.
type Product struct {
	ID    int64
	Name  string
	Price decimal.NullDecimal
}

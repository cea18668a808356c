package entity

import "time"

// Order es un pedido pendiente de un producto. FulfilledAt en nil significa
// no cumplido; la transición a cumplido es de una sola vía y la realiza
// exactamente una vez el núcleo de fulfillment.
type Order struct {
	ID          int64
	ProductID   int64
	Amount      int
	CreatedAt   time.Time
	FulfilledAt *time.Time
}

// Fulfilled indica si el pedido ya fue cumplido.
func (o *Order) Fulfilled() bool {
	return o.FulfilledAt != nil
}
